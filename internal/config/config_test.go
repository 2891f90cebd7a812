package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(envPollInterval, "")
	t.Setenv(envWaitTime, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PollInterval != defaultPollInterval || cfg.WaitTime != defaultWaitTime {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv(envPollInterval, "")
	t.Setenv(envWaitTime, "")

	path := filepath.Join(t.TempDir(), "softkill.json")
	if err := os.WriteFile(path, []byte(`{"poll_interval":"250ms","wait_time":"10s"}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PollInterval != 250*time.Millisecond || cfg.WaitTime != 10*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsBadDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "softkill.json")
	if err := os.WriteFile(path, []byte(`{"poll_interval":"soon"}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}

	if err := os.WriteFile(path, []byte(`{"poll_interval":"-1s"}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected range error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(envPollInterval, "50ms")
	t.Setenv(envWaitTime, "0s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PollInterval != 50*time.Millisecond {
		t.Fatalf("poll interval override not applied: %v", cfg.PollInterval)
	}
	if cfg.WaitTime != 0 {
		t.Fatalf("wait time override not applied: %v", cfg.WaitTime)
	}
}

func TestEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv(envPollInterval, "banana")
	t.Setenv(envWaitTime, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("invalid env value should keep default, got %v", cfg.PollInterval)
	}
}
