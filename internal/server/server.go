// Package server runs the extraction handler behind a plain HTTP listener
// for local development, standing in for the API gateway deployment.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"textract-api/internal/handler"
	"textract-api/internal/logger"
)

// Config holds the listen address.
type Config struct {
	Host string
	Port int
}

// Server adapts HTTP requests onto the Lambda handler.
type Server struct {
	cfg     Config
	handler *handler.Handler
	log     zerolog.Logger
}

// New creates a Server around the given handler.
func New(cfg Config, h *handler.Handler) *Server {
	return &Server{
		cfg:     cfg,
		handler: h,
		log:     logger.WithComponent("server"),
	}
}

// Routes returns the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/process-image", s.handleProcessImage)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info().Str("addr", addr).Msg("Local server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// handleProcessImage adapts the HTTP request onto the API gateway event
// shape and relays the handler's status, headers, and body untouched.
// OPTIONS answers the CORS preflight the way the deployed gateway stage
// does.
func (s *Server) handleProcessImage(w http.ResponseWriter, r *http.Request) {
	writeHeaders(w, handler.ResponseHeaders())

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprint(w, `{"error": "method not allowed"}`)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": "failed to read request body"}`)
		return
	}

	// Feed the request ID through the same context path the Lambda runtime
	// uses so handler logging stays uniform across both modes.
	requestID := uuid.NewString()
	ctx := lambdacontext.NewContext(r.Context(), &lambdacontext.LambdaContext{
		AwsRequestID: requestID,
	})

	event := events.APIGatewayProxyRequest{
		HTTPMethod: r.Method,
		Path:       r.URL.Path,
		Body:       string(body),
	}

	resp, err := s.handler.Handle(ctx, event)
	if err != nil {
		// The handler contract folds failures into the response; this only
		// fires on a programming error.
		logger.WithRequestID(requestID).Error().Err(err).Msg("Handler returned an error")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": "Internal server error"}`)
		return
	}

	writeHeaders(w, resp.Headers)
	w.WriteHeader(resp.StatusCode)
	fmt.Fprint(w, resp.Body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		s.log.Warn().Err(err).Msg("Failed to write health response")
	}
}

func writeHeaders(w http.ResponseWriter, headers map[string]string) {
	for k, v := range headers {
		w.Header().Set(k, v)
	}
}
