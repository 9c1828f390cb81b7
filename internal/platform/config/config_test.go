package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"studypro/internal/platform/config"
)

func TestNewUsesDefaultsWithoutConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Backend != config.BackendSQLite {
		t.Fatalf("expected sqlite backend, got %s", cfg.Backend)
	}
	if cfg.RecentLimit != 5 {
		t.Fatalf("expected recent limit 5, got %d", cfg.RecentLimit)
	}
	if cfg.DBPath != filepath.Join(dir, "studypro.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.DefaultSubject() != "Physics" {
		t.Fatalf("expected Physics default subject, got %s", cfg.DefaultSubject())
	}
}

func TestNewReadsYAMLOverrides(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	payload := "backend: file\nsubjects:\n  - History\n  - \"  \"\n  - Art\nrecent_limit: 10\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Backend != config.BackendFile {
		t.Fatalf("expected file backend, got %s", cfg.Backend)
	}
	if len(cfg.Subjects) != 2 || cfg.Subjects[0] != "History" || cfg.Subjects[1] != "Art" {
		t.Fatalf("unexpected subjects %v", cfg.Subjects)
	}
	if cfg.RecentLimit != 10 {
		t.Fatalf("expected recent limit 10, got %d", cfg.RecentLimit)
	}
}

func TestNewRejectsUnknownBackendAndEmptyDir(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty data dir should fail")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: redis\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatalf("unknown backend should fail")
	}
}
