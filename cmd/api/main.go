package main

import (
	"os"

	"github.com/veles/academia/internal/pkg/logger"
	"github.com/veles/academia/internal/server"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := defaultConfigPath
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
	}

	srv, err := server.NewServer(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
