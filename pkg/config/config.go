package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"tally/pkg/tracker"
)

// Department is one department's workbook binding. Leaving Sheet empty
// selects the all-sheets fallback search.
type Department struct {
	SpreadsheetID string `toml:"spreadsheet_id"`
	Sheet         string `toml:"sheet,omitempty"`
	NameColumn    string `toml:"name_column,omitempty"`
}

type configStore struct {
	Departments map[string]Department `toml:"departments"`
	// Aliases maps short field codes to full header text. Expanded at
	// the HTTP boundary before requests reach the orchestrator.
	Aliases map[string]string `toml:"aliases"`
}

type Config struct {
	Filename string
	Store    configStore
}

// Write the current config out to a toml file.
func (c *Config) Save() error {
	b, err := toml.Marshal(c.Store)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Filename, b, 0644)
}

// Load the current config from a toml file.
func (c *Config) Load() error {
	b, err := os.ReadFile(c.Filename)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, &c.Store)
}

func NewDatastore(filename string) (*Config, error) {
	c := &Config{
		Filename: filename,
	}
	if err := c.Load(); err != nil {
		if os.IsNotExist(err) {
			if err := c.Save(); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	// Set some defaults
	if c.Store.Departments == nil {
		c.Store.Departments = map[string]Department{}
	}
	if c.Store.Aliases == nil {
		c.Store.Aliases = map[string]string{}
	}
	for name, dept := range c.Store.Departments {
		if dept.NameColumn == "" {
			dept.NameColumn = "A"
			c.Store.Departments[name] = dept
		}
	}
	return c, nil
}

// Departments converts the stored mapping into the orchestrator's form.
func (c *Config) Departments() map[string]tracker.Department {
	depts := make(map[string]tracker.Department, len(c.Store.Departments))
	for name, d := range c.Store.Departments {
		depts[name] = tracker.Department{
			SpreadsheetID: d.SpreadsheetID,
			Sheet:         d.Sheet,
			NameColumn:    d.NameColumn,
		}
	}
	return depts
}

// Aliases returns the field alias table.
func (c *Config) Aliases() map[string]string {
	return c.Store.Aliases
}

// Env holds process-level settings taken from the environment.
type Env struct {
	ListenAddress   string `env:"TALLY_LISTEN" envDefault:":80"`
	ConfigPath      string `env:"TALLY_CONFIG" envDefault:"tally.toml"`
	CredentialsPath string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	WebhookURL      string `env:"TALLY_WEBHOOK_URL"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
