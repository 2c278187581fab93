// Package storage retrieves stored document bytes for OCR providers that
// cannot read from S3 themselves.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"textract-api/internal/ocr"
)

// MaxObjectSizeBytes caps how much of an object is read into memory. 10MB is
// the synchronous detection limit of the managed OCR services, so larger
// objects would be rejected downstream anyway.
const MaxObjectSizeBytes = 10 * 1024 * 1024

// S3Fetcher fetches object bytes with the AWS SDK. Safe for concurrent use.
type S3Fetcher struct {
	client *s3.Client
}

// NewS3Fetcher creates a fetcher using the default AWS credential chain.
func NewS3Fetcher(ctx context.Context, region string) (*S3Fetcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return &S3Fetcher{client: s3.NewFromConfig(cfg)}, nil
}

// NewS3FetcherWithClient creates a fetcher with an explicit client (for testing).
func NewS3FetcherWithClient(client *s3.Client) *S3Fetcher {
	return &S3Fetcher{client: client}
}

// Fetch implements ocr.Fetcher.
func (f *S3Fetcher) Fetch(ctx context.Context, loc ocr.DocumentLocator) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", loc.Bucket, loc.Key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, MaxObjectSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", loc.Bucket, loc.Key, err)
	}
	if len(data) > MaxObjectSizeBytes {
		return nil, fmt.Errorf("object s3://%s/%s exceeds the %d byte limit", loc.Bucket, loc.Key, MaxObjectSizeBytes)
	}
	return data, nil
}
