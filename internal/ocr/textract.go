package ocr

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// TextractService implements Service using Amazon Textract. Textract reads
// the document straight from S3, so no object bytes flow through this
// process.
type TextractService struct {
	client *textract.Client
}

// NewTextractService creates a Textract-backed service using the default
// AWS credential chain (environment, shared config, execution role).
func NewTextractService(ctx context.Context, region string) (*TextractService, error) {
	const op = "NewTextractService"

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to load AWS configuration")
	}

	return &TextractService{
		client: textract.NewFromConfig(cfg),
	}, nil
}

// NewTextractServiceWithClient creates a service with an explicit client (for testing).
func NewTextractServiceWithClient(client *textract.Client) *TextractService {
	return &TextractService{
		client: client,
	}
}

// DetectDocumentText runs synchronous text detection over the referenced
// S3 object.
func (t *TextractService) DetectDocumentText(ctx context.Context, loc DocumentLocator) ([]Fragment, error) {
	const op = "DetectDocumentText"

	out, err := t.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(loc.Bucket),
				Name:   aws.String(loc.Key),
			},
		},
	})
	if err != nil {
		return nil, WrapOCRError(op, ErrDetectionFailed, fmt.Sprintf("Textract call failed: %v", err))
	}

	return blocksToFragments(out.Blocks), nil
}

// blocksToFragments maps Textract blocks onto fragments, preserving the
// response order. PAGE blocks carry no text and map to empty-text fragments.
func blocksToFragments(blocks []types.Block) []Fragment {
	fragments := make([]Fragment, 0, len(blocks))
	for _, block := range blocks {
		fragments = append(fragments, Fragment{
			Category:   Category(block.BlockType),
			Text:       aws.ToString(block.Text),
			Confidence: aws.ToFloat32(block.Confidence),
		})
	}
	return fragments
}
