package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tally/pkg/api"
	"tally/pkg/config"
	"tally/pkg/notify"
	"tally/pkg/sheets"
	"tally/pkg/tracker"

	log "github.com/sirupsen/logrus"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configPath := flag.String("config", "", "Path to the config file (overrides TALLY_CONFIG)")

	flag.Parse()
	if *verbose {
		// Set the log level to debug
		log.SetLevel(log.DebugLevel)
	}
	// Set the log format to include a leading timestamp in ISO8601 format
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

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

	gateway, err := sheets.NewClient(envCfg.CredentialsPath)
	if err != nil {
		log.Fatalf("Failed to create sheets client: %v", err)
	}

	orchestrator := tracker.New(gateway, store.Departments())
	notifier := notify.New(envCfg.WebhookURL)
	server := api.NewServer(orchestrator, notifier, store.Aliases())

	router := api.GetRouter(server)
	if router != nil {
		go startServer(router, envCfg.ListenAddress)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

mainloop:
	// In all cases, just exit and let the container restart from scratch.
	// There's less to get wrong doing it this way.
	for {
		select {
		case <-signalChan:
			log.Info("Signalled, breaking main loop")
			break mainloop
		}
	}
}

func startServer(router http.Handler, listenAddress string) {
	server := http.Server{
		Addr:              listenAddress,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
	}
	log.Infof("listening for HTTP on: %s", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("ListenAndServeError", err)
	}
}
