package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"textract-api/cmd"
	"textract-api/internal/config"
	"textract-api/internal/logger"
)

func main() {
	// Load environment variables (.env is only present in local dev)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load configuration: %v", err)
		// Use default logger config if main config fails
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	logger.WithComponent("main").Info().Msg("Starting textract-api")

	cmd.Execute()

	os.Exit(0)
}
