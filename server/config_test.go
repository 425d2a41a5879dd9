package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Listen != ":3000" {
		t.Errorf("listen = %q, want :3000", cfg.Listen)
	}
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loom.yaml")
	data := []byte("listen: \":8080\"\ndatabase_url: \"postgres://file\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Listen != ":8080" || cfg.DatabaseURL != "postgres://file" {
		t.Errorf("file values not applied: %+v", cfg)
	}

	t.Setenv("DATABASE_URL", "postgres://env")
	cfg, err = loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DatabaseURL != "postgres://env" {
		t.Errorf("database_url = %q, want env override", cfg.DatabaseURL)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("loadConfig accepted a missing explicit path")
	}
}
