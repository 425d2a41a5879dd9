package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Values from the YAML file are
// overridden by environment variables so deployments can keep secrets
// out of the file.
type Config struct {
	Listen      string `yaml:"listen"`
	DatabaseURL string `yaml:"database_url"`
}

// loadConfig reads an optional YAML config file and applies env
// overrides (LOOM_LISTEN, DATABASE_URL). A missing file is not an error;
// defaults apply.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{Listen: ":3000"}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("LOOM_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if cfg.Listen == "" {
		cfg.Listen = ":3000"
	}
	return cfg, nil
}
