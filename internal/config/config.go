package config

import (
	"fmt"
	"os"
	"strconv"

	"textract-api/internal/logger"
)

type Config struct {
	// AWS Configuration
	AWSRegion string

	// OCR provider selection: textract, vision, tesseract
	OCRProvider string

	// Tesseract Configuration (offline development provider)
	TesseractLanguage string

	// Local HTTP server Configuration (serve mode)
	HTTPHost string
	HTTPPort int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		OCRProvider:       getEnv("OCR_PROVIDER", "textract"),
		TesseractLanguage: getEnv("TESSERACT_LANG", "eng"),
		HTTPHost:          getEnv("HTTP_HOST", "127.0.0.1"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:     getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:         getEnv("LOG_OUTPUT", "stdout"),
	}

	port, err := strconv.Atoi(getEnv("HTTP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: HTTP_PORT must be a number: %w", err)
	}
	config.HTTPPort = port

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.OCRProvider {
	case "textract", "vision", "tesseract":
	default:
		return fmt.Errorf("OCR_PROVIDER must be one of textract, vision, tesseract (got %q)", c.OCRProvider)
	}
	if c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required")
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535 (got %d)", c.HTTPPort)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
