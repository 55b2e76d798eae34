package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvTimeout, "")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected %q, got %q", DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if cfg.HistoryPath == "" {
		t.Error("expected a history path")
	}
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://env:8000")
	t.Setenv(EnvTimeout, "5s")

	flagTimeout := 10 * time.Second
	cfg, err := Load("http://flag:8000", &flagTimeout)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://flag:8000" {
		t.Errorf("expected flag base URL, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.Timeout)
	}
}

func TestLoad_ExplicitZeroTimeoutDisablesDeadline(t *testing.T) {
	t.Setenv(EnvTimeout, "")

	zero := time.Duration(0)
	cfg, err := Load("", &zero)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Timeout != 0 {
		t.Errorf("expected 0 (no deadline), got %v", cfg.Timeout)
	}
}

func TestLoad_EnvTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "90s")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("expected 90s, got %v", cfg.Timeout)
	}
}

func TestLoad_InvalidEnvTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")

	if _, err := Load("", nil); err == nil {
		t.Fatal("expected error for unparseable timeout")
	}
}

func TestLoad_HistoryPathFromEnv(t *testing.T) {
	t.Setenv(EnvHistoryDB, "/tmp/custom-history.db")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HistoryPath != "/tmp/custom-history.db" {
		t.Errorf("expected env history path, got %q", cfg.HistoryPath)
	}
}
