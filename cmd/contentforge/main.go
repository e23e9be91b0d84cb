package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"ContentForge/internal/app"
	"ContentForge/internal/config"
	"ContentForge/internal/logging"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	application := app.New(ctx, cfg, logger)
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
