package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// VisionService implements Service using Google Cloud Vision document text
// detection. Vision cannot address S3 objects, so the bytes are pulled
// through a Fetcher first.
type VisionService struct {
	client  *vision.ImageAnnotatorClient
	fetcher Fetcher
}

// NewVisionService creates a Vision-backed service with credentials from the
// environment. It checks GOOGLE_CREDENTIALS (inline JSON) first, then
// GOOGLE_APPLICATION_CREDENTIALS (file path), then falls back to application
// default credentials.
func NewVisionService(ctx context.Context, fetcher Fetcher) (*VisionService, error) {
	const op = "NewVisionService"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &VisionService{
		client:  client,
		fetcher: fetcher,
	}, nil
}

// DetectDocumentText fetches the object bytes and runs Vision document text
// detection over them.
func (v *VisionService) DetectDocumentText(ctx context.Context, loc DocumentLocator) ([]Fragment, error) {
	const op = "DetectDocumentText"

	data, err := v.fetcher.Fetch(ctx, loc)
	if err != nil {
		return nil, WrapOCRError(op, err, fmt.Sprintf("failed to fetch s3://%s/%s", loc.Bucket, loc.Key))
	}

	annotation, err := v.client.DetectDocumentText(ctx, &visionpb.Image{Content: data}, nil)
	if err != nil {
		return nil, WrapOCRError(op, ErrDetectionFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if annotation == nil {
		return nil, WrapOCRError(op, ErrEmptyDocument, "Vision API returned no annotation")
	}

	return annotationToFragments(annotation), nil
}

// annotationToFragments flattens the Vision page/block/paragraph/word tree
// onto the Textract category scheme: one LINE fragment per paragraph
// followed by one WORD fragment per word.
func annotationToFragments(annotation *visionpb.TextAnnotation) []Fragment {
	var fragments []Fragment

	for _, page := range annotation.GetPages() {
		for _, block := range page.GetBlocks() {
			for _, paragraph := range block.GetParagraphs() {
				var words []Fragment
				var lineParts []string

				for _, word := range paragraph.GetWords() {
					var sb strings.Builder
					for _, symbol := range word.GetSymbols() {
						sb.WriteString(symbol.GetText())
					}
					text := sb.String()
					if text == "" {
						continue
					}
					lineParts = append(lineParts, text)
					words = append(words, Fragment{
						Category:   CategoryWord,
						Text:       text,
						Confidence: word.GetConfidence(),
					})
				}

				if len(lineParts) == 0 {
					continue
				}
				fragments = append(fragments, Fragment{
					Category:   CategoryLine,
					Text:       strings.Join(lineParts, " "),
					Confidence: paragraph.GetConfidence(),
				})
				fragments = append(fragments, words...)
			}
		}
	}

	return fragments
}

// Close closes the underlying Vision client.
func (v *VisionService) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}
