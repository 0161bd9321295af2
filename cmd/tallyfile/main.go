package main

import (
	"flag"
	"os"

	"github.com/pelletier/go-toml/v2"

	"tally/pkg/config"
	"tally/pkg/sheets"
	"tally/pkg/tracker"

	log "github.com/sirupsen/logrus"
)

// batchFile is the TOML shape applied by the one-shot command:
//
//	[[update]]
//	name = "alice"
//	department = "engineering"
//	field = "kills"
//	amount = 2
type batchFile struct {
	Updates []fileUpdate `toml:"update"`
}

type fileUpdate struct {
	Name       string   `toml:"name"`
	Department string   `toml:"department"`
	Field      string   `toml:"field"`
	Amount     *float64 `toml:"amount"`
}

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	batchPath := flag.String("file", "", "Path to a TOML batch file (required)")
	configPath := flag.String("config", "", "Path to the config file (overrides TALLY_CONFIG)")

	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if *batchPath == "" {
		log.Error("You must specify a batch file with -file")
		flag.Usage()
		os.Exit(1)
	}

	envCfg, err := config.ParseEnv()
	if err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}
	if *configPath != "" {
		envCfg.ConfigPath = *configPath
	}

	store, err := config.NewDatastore(envCfg.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", envCfg.ConfigPath, err)
	}

	requests, err := readBatchFile(*batchPath, store.Aliases())
	if err != nil {
		log.Fatalf("Failed to read batch file %s: %v", *batchPath, err)
	}
	if len(requests) == 0 {
		log.Info("Batch file contains no updates")
		return
	}

	gateway, err := sheets.NewClient(envCfg.CredentialsPath)
	if err != nil {
		log.Fatalf("Failed to create sheets client: %v", err)
	}

	orchestrator := tracker.New(gateway, store.Departments())
	results := orchestrator.ApplyBatch(requests)

	failed := 0
	for _, res := range results {
		if res.Success {
			log.Infof("%s/%s/%s: %s -> %s (%s row %d)",
				res.Department, res.Name, res.Field,
				tracker.FormatNumber(*res.PreviousValue),
				tracker.FormatNumber(*res.NewValue),
				res.SheetName, res.Row)
			continue
		}
		failed++
		log.Errorf("%s/%s/%s: %s", res.Department, res.Name, res.Field, res.Message)
	}
	log.Infof("Applied %d/%d updates", len(results)-failed, len(results))
	if failed > 0 {
		os.Exit(1)
	}
}

func readBatchFile(path string, aliases map[string]string) ([]tracker.UpdateRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file batchFile
	if err := toml.Unmarshal(b, &file); err != nil {
		return nil, err
	}
	requests := make([]tracker.UpdateRequest, len(file.Updates))
	for i, u := range file.Updates {
		field := u.Field
		if full, ok := aliases[field]; ok {
			field = full
		}
		amount := 1.0
		if u.Amount != nil {
			amount = *u.Amount
		}
		requests[i] = tracker.UpdateRequest{
			Name:       u.Name,
			Department: u.Department,
			Field:      field,
			Amount:     amount,
		}
	}
	return requests, nil
}
