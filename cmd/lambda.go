package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"textract-api/internal/config"
	"textract-api/internal/handler"
	"textract-api/internal/logger"
	"textract-api/internal/ocr"
	"textract-api/internal/storage"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run the AWS Lambda runtime handler",
	Long: `Start the AWS Lambda runtime loop. This is the production entrypoint; the
root command falls through to it automatically inside a Lambda environment.

The OCR client handle is built once here and reused across invocations.`,
	RunE: runLambda,
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

func runLambda(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("lambda")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := context.Background()
	service, err := createOCRService(ctx, cfg, log)
	if err != nil {
		return err
	}

	log.Info().
		Str("provider", cfg.OCRProvider).
		Str("region", cfg.AWSRegion).
		Msg("Starting Lambda handler")

	lambda.Start(handler.New(service).Handle)
	return nil
}

// createOCRService builds the configured OCR provider. Construction
// failures are translated to actionable messages here; everything after
// this point reports errors through the uniform response shape.
func createOCRService(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ocr.Service, error) {
	switch cfg.OCRProvider {
	case "textract":
		service, err := ocr.NewTextractService(ctx, cfg.AWSRegion)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create Textract service")
			return nil, fmt.Errorf("failed to create Textract service. Check that the AWS "+
				"credential chain is configured and the execution role allows "+
				"textract:DetectDocumentText: %w", err)
		}
		return service, nil

	case "vision":
		fetcher, err := storage.NewS3Fetcher(ctx, cfg.AWSRegion)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create S3 fetcher")
			return nil, fmt.Errorf("failed to create S3 fetcher: %w", err)
		}
		service, err := ocr.NewVisionService(ctx, fetcher)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create Vision service")
			if errors.Is(err, ocr.ErrMissingCredentials) {
				return nil, fmt.Errorf("Google Cloud credentials not configured. Set "+
					"GOOGLE_APPLICATION_CREDENTIALS to a service account JSON file path "+
					"or GOOGLE_CREDENTIALS to inline JSON: %w", err)
			}
			return nil, fmt.Errorf("failed to create Vision service: %w", err)
		}
		return service, nil

	case "tesseract":
		fetcher, err := storage.NewS3Fetcher(ctx, cfg.AWSRegion)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create S3 fetcher")
			return nil, fmt.Errorf("failed to create S3 fetcher: %w", err)
		}
		return ocr.NewTesseractService(fetcher, cfg.TesseractLanguage), nil

	default:
		return nil, fmt.Errorf("%w: %q", ocr.ErrUnknownProvider, cfg.OCRProvider)
	}
}
