package ocr

import (
	"errors"
	"fmt"
)

// Common detection errors
var (
	// ErrDetectionFailed is returned when the backing OCR service fails to
	// process the document (throttling, access denied, unsupported format,
	// transient unavailability).
	ErrDetectionFailed = errors.New("document text detection failed")

	// ErrMissingCredentials is returned by the vision provider when neither
	// GOOGLE_APPLICATION_CREDENTIALS nor GOOGLE_CREDENTIALS is configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrEmptyDocument is returned when the document yields no detection
	// result at all.
	ErrEmptyDocument = errors.New("document contains no readable text")

	// ErrUnknownProvider is returned when OCR_PROVIDER names a provider
	// this build does not know.
	ErrUnknownProvider = errors.New("unknown OCR provider")
)

// OCRError wraps errors with additional context about the detection failure.
type OCRError struct {
	// Op is the operation that failed (e.g., "DetectDocumentText").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *OCRError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *OCRError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *OCRError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewOCRError creates a new OCRError with the specified operation and underlying error.
func NewOCRError(op string, err error, details string) *OCRError {
	return &OCRError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapOCRError wraps an error as an OCRError if it isn't already one.
func WrapOCRError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var ocrErr *OCRError
	if errors.As(err, &ocrErr) {
		return err // Already wrapped
	}

	return NewOCRError(op, err, details)
}
