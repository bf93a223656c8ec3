package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration: where the database lives, how
// the server is exposed and where results pages come from. Engine tunables
// live in the podds package config, not here.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Source   SourceConfig   `yaml:"source"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// Pin is the shared secret checked on prediction requests; empty
	// disables the check
	Pin string `yaml:"pin"`
}

type SourceConfig struct {
	ResultsURL  string   `yaml:"results_url"`
	CacheDir    string   `yaml:"cache_dir"`
	Leagues     []int    `yaml:"leagues"`
	Season      string   `yaml:"season"`
	FormMatches int      `yaml:"form_matches"`
}

// Default returns a runnable local configuration
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "podds.db"},
		Server:   ServerConfig{Addr: ":8080"},
		Source: SourceConfig{
			CacheDir:    ".podds/cache",
			Leagues:     []int{47, 48, 108, 109},
			Season:      "2025/2026",
			FormMatches: 6,
		},
	}
}

// Load reads a YAML configuration file, applying defaults for anything
// the file leaves unset
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Source.FormMatches <= 0 {
		config.Source.FormMatches = 6
	}

	return config, nil
}
