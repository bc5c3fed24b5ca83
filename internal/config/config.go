package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ServerURL          string        `toml:"server_url"`
	Theme              string        `toml:"theme"`
	LogLevel           string        `toml:"log_level"`
	RefreshInterval    time.Duration `toml:"-"`
	RefreshIntervalStr string        `toml:"refresh_interval"`
}

func DefaultConfig() *Config {
	return &Config{
		ServerURL:          "http://localhost:8000",
		Theme:              "solarized-dark",
		LogLevel:           "info",
		RefreshInterval:    30 * time.Second,
		RefreshIntervalStr: "30s",
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.RefreshIntervalStr != "" {
		d, err := time.ParseDuration(cfg.RefreshIntervalStr)
		if err == nil {
			cfg.RefreshInterval = d
		}
	}
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	cfg.RefreshIntervalStr = cfg.RefreshInterval.String()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
