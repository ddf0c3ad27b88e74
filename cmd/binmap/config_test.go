package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("output: json\nlog_level: debug\nstrict: true\n"), 0o600)
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := loadConfigFrom(path)
	if cfg.Output != "json" {
		t.Errorf("output: got %q", cfg.Output)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level: got %q", cfg.LogLevel)
	}
	if cfg.Strict == nil || !*cfg.Strict {
		t.Errorf("strict: got %v", cfg.Strict)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg := loadConfigFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg != (Config{}) {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if cfg := loadConfigFrom(path); cfg != (Config{}) {
		t.Fatalf("expected zero config for invalid yaml, got %+v", cfg)
	}
}
