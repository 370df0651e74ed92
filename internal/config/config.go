package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all dashboard service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Sessions SessionsConfig `yaml:"sessions"`
	Feeds    FeedsConfig    `yaml:"feeds"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type StorageConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
	ExportDir  string `yaml:"export_dir"`
}

type FetchConfig struct {
	TimeoutSeconds  int `yaml:"timeout_seconds"`
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
}

type SessionsConfig struct {
	IdleTTLMinutes int `yaml:"idle_ttl_minutes"`
}

type FeedsConfig struct {
	QuakeHourURL string `yaml:"quake_hour_url"`
	QuakeDayURL  string `yaml:"quake_day_url"`
	SampleCSVURL string `yaml:"sample_csv_url"`
	CovidCSVURL  string `yaml:"covid_csv_url"`
}

type AnalysisConfig struct {
	StrongMagnitude float64 `yaml:"strong_magnitude"`
}

// Load reads a YAML config file at path and merges it with defaults.
// A missing file is not an error; defaults are used as-is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyFloors()
	return cfg, nil
}

// applyFloors backfills zero values left by a partial config file.
func (c *Config) applyFloors() {
	def := DefaultConfig()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = def.Storage.SQLitePath
	}
	if c.Storage.ExportDir == "" {
		c.Storage.ExportDir = def.Storage.ExportDir
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = def.Fetch.TimeoutSeconds
	}
	if c.Fetch.CacheTTLSeconds <= 0 {
		c.Fetch.CacheTTLSeconds = def.Fetch.CacheTTLSeconds
	}
	if c.Sessions.IdleTTLMinutes <= 0 {
		c.Sessions.IdleTTLMinutes = def.Sessions.IdleTTLMinutes
	}
	if c.Feeds.QuakeHourURL == "" {
		c.Feeds.QuakeHourURL = def.Feeds.QuakeHourURL
	}
	if c.Feeds.QuakeDayURL == "" {
		c.Feeds.QuakeDayURL = def.Feeds.QuakeDayURL
	}
	if c.Analysis.StrongMagnitude <= 0 {
		c.Analysis.StrongMagnitude = def.Analysis.StrongMagnitude
	}
}
