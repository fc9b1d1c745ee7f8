package main

import (
	"os"

	"github.com/ferhatb/enrollio/internal/pkg/logger"
	"github.com/ferhatb/enrollio/internal/server"
)

// @title Enrollio API
// @version 1.0
// @description Student enrollment backend: registration, authentication and course enrollment

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// NewServer orchestrates LoadConfigAndSetupLogger, SetupDatabase,
	// BuildDependencies and SetupRouter
	srv, err := server.NewServer()
	if err != nil {
		// Use the default logger setup by the logger package's init
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
