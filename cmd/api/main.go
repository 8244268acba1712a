package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/tomwyatt/hillcrest/internal/pkg/logger"
	"github.com/tomwyatt/hillcrest/internal/server"
)

// @title Hillcrest School API
// @version 1.0
// @description Backend for the Hillcrest school website: accounts, subject and course catalogue, potential students and enrolments

// @contact.name API Support
// @contact.email webmaster@hillcrest.school

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
	// A missing .env file is fine, environment variables may be set elsewhere
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
