// Package config resolves runtime settings from an optional .env file
// and environment variables.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime settings.
type Config struct {
	// DBPath overrides the default database location when non-empty.
	DBPath string

	// ExportDir is where export files are written.
	ExportDir string
}

// Load reads an optional .env file from the working directory, then
// the environment. A missing .env is fine.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:    os.Getenv("QUIZDECK_DB"),
		ExportDir: envOr("QUIZDECK_EXPORT_DIR", "."),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
