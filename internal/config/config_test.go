package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QUIZDECK_DB", "")
	t.Setenv("QUIZDECK_EXPORT_DIR", "")

	cfg := Load()
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty", cfg.DBPath)
	}
	if cfg.ExportDir != "." {
		t.Errorf("ExportDir = %q, want %q", cfg.ExportDir, ".")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QUIZDECK_DB", "/tmp/quizdeck-test.db")
	t.Setenv("QUIZDECK_EXPORT_DIR", "/tmp/exports")

	cfg := Load()
	if cfg.DBPath != "/tmp/quizdeck-test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ExportDir != "/tmp/exports" {
		t.Errorf("ExportDir = %q", cfg.ExportDir)
	}
}
