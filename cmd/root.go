package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"textract-api/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "textract-api",
	Short: "Document text extraction service backed by managed OCR",
	Long: `textract-api extracts text from stored document images.

In production it runs as an AWS Lambda function behind an API gateway; for
local development it runs the same handler behind a plain HTTP server. Text
detection is delegated to a configurable OCR provider (Amazon Textract by
default).`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The Lambda runtime invokes the binary with no arguments; go
		// straight to the handler loop there.
		if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
			return runLambda(cmd, args)
		}
		return cmd.Help()
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
