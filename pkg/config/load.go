package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, optionally loading a .env
// file first. A missing .env file is not an error.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found, using system environment variables")
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		logger.Warn("Environment files not loaded", "paths", envFiles, "error", err)
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
