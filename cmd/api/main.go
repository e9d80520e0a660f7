package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/questionmaster/api/internal/pkg/logger"
	"github.com/questionmaster/api/internal/server"
)

// @title QuestionMaster API
// @version 1.0
// @description Backend API for the QuestionMaster gamified exam preparation platform

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token, formatted as "Bearer {token}"

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Service API key for internal endpoints

func main() {
	// .env is optional; real deployments inject env vars directly
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
