package config

import (
	"os"
	"strings"
)

// applyLocalDefaults fills in the docker-compose development values so the
// gateway starts with no env file at all.
func applyLocalDefaults(cfg *Config) {
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = strings.TrimSpace(os.Getenv("POSTGRES_URL"))
	}
	if cfg.Uploads.AccessKey == "" {
		cfg.Uploads.AccessKey = "atelier"
	}
	if cfg.Uploads.SecretKey == "" {
		cfg.Uploads.SecretKey = "atelier123"
	}
}
