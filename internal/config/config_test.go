package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "fr" {
		t.Fatalf("expected fr default, got %q", cfg.Language)
	}
	if filepath.Base(cfg.Database.Path) != "facturier.db" {
		t.Fatalf("unexpected db path %s", cfg.Database.Path)
	}
	if cfg.Invoice.PrintCommand != "" {
		t.Fatalf("print command should be empty by default")
	}
}

func TestLoad_MergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("language: en\ninvoice:\n  print_command: lp -d office\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "en" {
		t.Fatalf("expected en, got %q", cfg.Language)
	}
	if cfg.Invoice.PrintCommand != "lp -d office" {
		t.Fatalf("unexpected print command %q", cfg.Invoice.PrintCommand)
	}
	if cfg.Invoice.OutputDir == "" || cfg.Log.Level != "info" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("language: [unterminated"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveAndEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Database.Path = filepath.Join(root, "db", "facturier.db")
	cfg.Invoice.OutputDir = filepath.Join(root, "out")
	cfg.Log.Path = filepath.Join(root, "logs", "facturier.log")

	path := filepath.Join(root, "conf", "config.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Invoice.OutputDir != cfg.Invoice.OutputDir {
		t.Fatalf("round trip lost output dir")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	for _, dir := range []string{"db", "out", "logs"} {
		if info, err := os.Stat(filepath.Join(root, dir)); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s", dir)
		}
	}
}
