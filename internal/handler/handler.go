// Package handler implements the request/response core of the service: it
// accepts an API gateway proxy event carrying an S3 object URL, runs
// document text detection over the object, and shapes the JSON response.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/zerolog"

	"textract-api/internal/logger"
	"textract-api/internal/ocr"
)

// fallbackBody is returned when the error body itself cannot be serialized.
const fallbackBody = `{"error": "Internal server error"}`

// Request is the expected POST body.
type Request struct {
	S3URL string `json:"s3_url"`
}

type successBody struct {
	Text string `json:"text"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Handler processes document text extraction requests. The OCR service
// handle is built once at cold start and reused across invocations; it is
// immutable after construction, so concurrent invocations need no locking.
type Handler struct {
	service ocr.Service
	log     zerolog.Logger
}

// New creates a Handler backed by the given OCR service.
func New(service ocr.Service) *Handler {
	return &Handler{
		service: service,
		log:     logger.WithComponent("handler"),
	}
}

// Handle processes one API gateway proxy event. The error return is always
// nil: every failure, input or capability, is folded into a status 500
// response so the caller always receives valid JSON with either a text or an
// error field. The CORS header set is identical on every response.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := events.APIGatewayProxyResponse{Headers: ResponseHeaders()}

	log := h.log
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.With().Str("request_id", lc.AwsRequestID).Logger()
	}

	text, err := h.process(ctx, req.Body, log)
	if err != nil {
		log.Error().Err(err).Msg("Request processing failed")
		resp.StatusCode = http.StatusInternalServerError
		resp.Body = marshalOrFallback(errorBody{Error: err.Error()})
		return resp, nil
	}

	body, err := json.Marshal(successBody{Text: text})
	if err != nil {
		log.Error().Err(err).Msg("Failed to serialize response body")
		resp.StatusCode = http.StatusInternalServerError
		resp.Body = fallbackBody
		return resp, nil
	}

	log.Info().Int("text_length", len(text)).Msg("Document text extracted")
	resp.StatusCode = http.StatusOK
	resp.Body = string(body)
	return resp, nil
}

// process parses the body, decomposes the locator, invokes detection, and
// concatenates the LINE and WORD fragment text in encounter order, each
// followed by a newline. WORD fragments repeat text already present in their
// LINE; that double inclusion is the established response format.
func (h *Handler) process(ctx context.Context, body string, log zerolog.Logger) (string, error) {
	var req Request
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return "", fmt.Errorf("invalid request body: %w", err)
	}
	if req.S3URL == "" {
		return "", errors.New("missing s3_url field")
	}

	loc, err := ParseS3URL(req.S3URL)
	if err != nil {
		return "", err
	}

	log.Info().
		Str("bucket", loc.Bucket).
		Str("key", loc.Key).
		Msg("Detecting document text")

	fragments, err := h.service.DetectDocumentText(ctx, loc)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, f := range fragments {
		if f.Category == ocr.CategoryLine || f.Category == ocr.CategoryWord {
			text.WriteString(f.Text)
			text.WriteByte('\n')
		}
	}
	return text.String(), nil
}

// ResponseHeaders returns the fixed header set carried by every response,
// success or failure.
func ResponseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
	}
}

func marshalOrFallback(body errorBody) string {
	data, err := json.Marshal(body)
	if err != nil {
		return fallbackBody
	}
	return string(data)
}
