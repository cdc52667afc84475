package main

import (
	"context"
	"flag"

	"github.com/dawitf/ece-backend/internal/bootstrap"
	"github.com/dawitf/ece-backend/internal/config"
	"github.com/dawitf/ece-backend/internal/pkg/logger"
	"github.com/dawitf/ece-backend/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	app, err := bootstrap.InitializeApplication(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}

	if err := server.Run(app); err != nil {
		logger.Fatal().Err(err).Msg("Server error")
	}
}
