package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Thresholds.Intent != 0.7 {
		t.Errorf("expected intent threshold 0.7, got %f", cfg.Thresholds.Intent)
	}
	if cfg.Thresholds.Lexical != 0.3 {
		t.Errorf("expected lexical threshold 0.3, got %f", cfg.Thresholds.Lexical)
	}
	if cfg.TopK != 5 {
		t.Errorf("expected top_k 5, got %d", cfg.TopK)
	}
	if cfg.TraceEnabled {
		t.Error("trace should be disabled by default")
	}
}

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TopK != 5 {
		t.Errorf("expected default top_k, got %d", cfg.TopK)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file should have been created: %v", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.TopK = 10
	cfg.Thresholds.Intent = 0.8
	cfg.TraceEnabled = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.TopK != 10 {
		t.Errorf("expected top_k 10, got %d", loaded.TopK)
	}
	if loaded.Thresholds.Intent != 0.8 {
		t.Errorf("expected intent threshold 0.8, got %f", loaded.Thresholds.Intent)
	}
	if !loaded.TraceEnabled {
		t.Error("expected trace enabled")
	}
}
