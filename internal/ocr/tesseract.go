package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractService implements Service with a local tesseract installation.
// It exists for offline development; recognized lines become LINE fragments
// and their fields become WORD fragments, matching the Textract scheme.
type TesseractService struct {
	fetcher  Fetcher
	language string
}

// NewTesseractService creates a tesseract-backed service. An empty language
// defaults to English.
func NewTesseractService(fetcher Fetcher, language string) *TesseractService {
	if language == "" {
		language = "eng"
	}
	return &TesseractService{
		fetcher:  fetcher,
		language: language,
	}
}

// DetectDocumentText fetches the object bytes and runs tesseract over them.
// The gosseract client is not safe for concurrent use, so one is created per
// call.
func (t *TesseractService) DetectDocumentText(ctx context.Context, loc DocumentLocator) ([]Fragment, error) {
	const op = "DetectDocumentText"

	data, err := t.fetcher.Fetch(ctx, loc)
	if err != nil {
		return nil, WrapOCRError(op, err, fmt.Sprintf("failed to fetch s3://%s/%s", loc.Bucket, loc.Key))
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return nil, WrapOCRError(op, ErrDetectionFailed, fmt.Sprintf("failed to set language %q: %v", t.language, err))
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, WrapOCRError(op, ErrDetectionFailed, fmt.Sprintf("failed to load image: %v", err))
	}

	text, err := client.Text()
	if err != nil {
		return nil, WrapOCRError(op, ErrDetectionFailed, fmt.Sprintf("tesseract recognition failed: %v", err))
	}

	return textToFragments(text), nil
}

// textToFragments synthesizes LINE and WORD fragments from plain recognized
// text, skipping blank lines.
func textToFragments(text string) []Fragment {
	var fragments []Fragment
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fragments = append(fragments, Fragment{Category: CategoryLine, Text: line})
		for _, word := range strings.Fields(line) {
			fragments = append(fragments, Fragment{Category: CategoryWord, Text: word})
		}
	}
	return fragments
}
