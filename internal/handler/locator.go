package handler

import (
	"errors"
	"regexp"

	"textract-api/internal/ocr"
)

// s3URLPattern extracts the bucket name and object key from a
// virtual-hosted-style S3 URL. The whole string must match; the key may be
// empty and may contain slashes.
var s3URLPattern = regexp.MustCompile(`^https://([^.]+)\.s3\.[^/]+\.amazonaws\.com/(.*)$`)

// ErrInvalidS3URL is surfaced verbatim in the error response body.
var ErrInvalidS3URL = errors.New("Invalid S3 URL format")

// ParseS3URL decomposes an S3 object URL into a document locator. The
// captured bucket and key are used verbatim: no decoding, no trimming, so
// any percent-encoding in the URL is preserved into the OCR request.
func ParseS3URL(rawURL string) (ocr.DocumentLocator, error) {
	m := s3URLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return ocr.DocumentLocator{}, ErrInvalidS3URL
	}
	return ocr.DocumentLocator{Bucket: m[1], Key: m[2]}, nil
}
