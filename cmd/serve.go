package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"textract-api/internal/config"
	"textract-api/internal/handler"
	"textract-api/internal/logger"
	"textract-api/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local HTTP server in place of the API gateway",
	Long: `Serve the document text extraction endpoint over plain HTTP for local
development. The routes mirror the deployed gateway:

  POST    /process-image   {"s3_url": "https://<bucket>.s3.<region>.amazonaws.com/<key>"}
  OPTIONS /process-image   CORS preflight
  GET     /health`,
	Example: `  # Serve on the default address with Textract
  textract-api serve

  # Serve with the offline tesseract provider
  OCR_PROVIDER=tesseract textract-api serve

  # Custom port
  HTTP_PORT=9090 textract-api serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	service, err := createOCRService(ctx, cfg, log)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Host: cfg.HTTPHost,
		Port: cfg.HTTPPort,
	}, handler.New(service))

	log.Info().
		Str("provider", cfg.OCRProvider).
		Str("host", cfg.HTTPHost).
		Int("port", cfg.HTTPPort).
		Msg("Starting local server")

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}
