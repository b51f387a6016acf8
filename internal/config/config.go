package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level postbook.yaml configuration.
type Config struct {
	Business   BusinessConfig   `yaml:"business"`
	Ledger     LedgerConfig     `yaml:"ledger"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Server     ServerConfig     `yaml:"server"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// LedgerConfig locates the books.
type LedgerConfig struct {
	CashAccount int    `yaml:"cash_account"` // chart code of the bank account
	Database    string `yaml:"database"`     // sqlite path
}

// ThresholdsConfig controls auto-confirmation of classified postings.
type ThresholdsConfig struct {
	AutoConfirm float64 `yaml:"auto_confirm"`
	ReviewFlag  float64 `yaml:"review_flag"`
}

// ServerConfig controls the HTTP posting API.
type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // "debug" or "release"
}

// Load reads a postbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:     businessName,
			Currency: "ZAR",
		},
		Ledger: LedgerConfig{
			CashAccount: 1000,
			Database:    "postbook.db",
		},
		Thresholds: ThresholdsConfig{
			AutoConfirm: 0.95,
			ReviewFlag:  0.70,
		},
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
	}
}
