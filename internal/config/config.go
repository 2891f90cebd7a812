package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultWaitTime     = 5 * time.Second
	envPollInterval     = "SOFTKILL_POLL_INTERVAL"
	envWaitTime         = "SOFTKILL_WAIT_TIME"
)

// Config aggregates tunable defaults applied before command-line flags.
type Config struct {
	PollInterval time.Duration
	WaitTime     time.Duration
}

// Load builds a Config from an optional JSON file path plus environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{
		PollInterval: defaultPollInterval,
		WaitTime:     defaultWaitTime,
	}

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		if fileCfg.PollInterval != 0 {
			cfg.PollInterval = fileCfg.PollInterval
		}
		if fileCfg.WaitTime != 0 {
			cfg.WaitTime = fileCfg.WaitTime
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envPollInterval); v != "" {
		if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
			cfg.PollInterval = dur
		} else if err != nil {
			log.Printf("invalid %s value %q: %v", envPollInterval, v, err)
		}
	}

	if v := os.Getenv(envWaitTime); v != "" {
		if dur, err := time.ParseDuration(v); err == nil && dur >= 0 {
			cfg.WaitTime = dur
		} else if err != nil {
			log.Printf("invalid %s value %q: %v", envWaitTime, v, err)
		}
	}
}

type fileConfig struct {
	PollInterval string `json:"poll_interval"`
	WaitTime     string `json:"wait_time"`
}

func loadFromFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, err
	}

	if raw.PollInterval != "" {
		dur, err := time.ParseDuration(raw.PollInterval)
		if err != nil {
			return cfg, fmt.Errorf("parse poll_interval: %w", err)
		}
		if dur <= 0 {
			return cfg, errors.New("poll_interval must be > 0")
		}
		cfg.PollInterval = dur
	}
	if raw.WaitTime != "" {
		dur, err := time.ParseDuration(raw.WaitTime)
		if err != nil {
			return cfg, fmt.Errorf("parse wait_time: %w", err)
		}
		if dur < 0 {
			return cfg, errors.New("wait_time must be >= 0")
		}
		cfg.WaitTime = dur
	}

	return cfg, nil
}
