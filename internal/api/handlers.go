// Package api exposes the HTTP webhook endpoint for the NLU front end.
package api

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// Runner processes one raw webhook payload into a user-facing string.
type Runner interface {
	Run(ctx context.Context, payload []byte) string
}

// Handler coordinates webhook requests with the executor.
type Handler struct {
	executor Runner
	logger   *log.Logger
}

// Option configures the Handler.
type Option func(*Handler)

// WithLogger overrides the request logger.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler builds a Handler.
func NewHandler(executor Runner, opts ...Option) *Handler {
	h := &Handler{
		executor: executor,
		logger:   log.New(log.Writer(), "[webhook] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", h.webhook)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// FulfillmentResponse is the wire contract expected by the NLU front end.
type FulfillmentResponse struct {
	FulfillmentText string `json:"fulfillmentText"`
}

// webhook always answers 200 with a fulfillment body; the conversational
// front end needs text to show the user even when processing failed.
func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	requestID := uuid.NewString()
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Printf("[%s] failed reading request body: %v", requestID, err)
		payload = nil
	}
	h.logger.Printf("[%s] webhook request (%d bytes)", requestID, len(payload))

	res := h.executor.Run(r.Context(), payload)

	h.logger.Printf("[%s] responding with %d chars", requestID, len(res))
	writeJSON(w, http.StatusOK, FulfillmentResponse{FulfillmentText: res})
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
