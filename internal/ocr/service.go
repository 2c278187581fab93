// Package ocr provides document text detection backed by managed OCR services.
//
// The default provider is Amazon Textract, which reads documents in place
// from S3 given a bucket and object key. Alternate providers (Google Cloud
// Vision, local tesseract) cannot address S3 objects directly and instead
// operate on object bytes pulled through a Fetcher; they exist for
// development and cross-checking detection quality.
//
// All providers emit fragments on the same category scheme (PAGE, LINE,
// WORD) in the order the backing service reports them. Callers decide which
// categories they care about.
//
// Provider handles are built once per process, are immutable after
// construction, and are safe for concurrent use.
package ocr

import "context"

// Category classifies a detected text fragment. Values mirror the Textract
// block types; alternate providers map their output onto the same scheme.
type Category string

const (
	CategoryPage Category = "PAGE"
	CategoryLine Category = "LINE"
	CategoryWord Category = "WORD"
)

// Fragment is one unit of detected text.
type Fragment struct {
	Category   Category
	Text       string
	Confidence float32
}

// DocumentLocator identifies a stored document by bucket and object key.
// Both values are passed through verbatim; no decoding or normalization
// happens here.
type DocumentLocator struct {
	Bucket string
	Key    string
}

// Service is the document text detection interface implemented by all
// providers.
type Service interface {
	// DetectDocumentText runs text detection over the referenced document
	// and returns the detected fragments in the order the backing service
	// reports them.
	DetectDocumentText(ctx context.Context, loc DocumentLocator) ([]Fragment, error)
}

// Fetcher retrieves raw object bytes for providers that cannot read from S3
// themselves.
type Fetcher interface {
	Fetch(ctx context.Context, loc DocumentLocator) ([]byte, error)
}
