package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the service settings.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`
	DataPath   string `yaml:"data_path"` // fixed-path permit CSV, sample fallback when missing
	OutputDir  string `yaml:"output_dir"`

	JurisdictionLimit int `yaml:"jurisdiction_limit"`
	TopAduLimit       int `yaml:"top_adu_limit"`
}

// Default returns the settings used when no config file is present.
func Default() Config {
	return Config{
		ListenAddr:        ":8080",
		DBPath:            "permits.db",
		DataPath:          "data/permits.csv",
		OutputDir:         "outputs",
		JurisdictionLimit: 15,
		TopAduLimit:       8,
	}
}

// Load reads a YAML config file, filling unset fields with defaults.
// A missing file is not an error; it just means all-defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = Default().ListenAddr
	}
	if cfg.JurisdictionLimit <= 0 {
		cfg.JurisdictionLimit = Default().JurisdictionLimit
	}
	if cfg.TopAduLimit <= 0 {
		cfg.TopAduLimit = Default().TopAduLimit
	}

	return cfg, nil
}
