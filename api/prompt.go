// Package api serves questions about the indexed chunks over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	// PromptPath is the route of the question endpoint
	PromptPath = "/api/prompt"

	// MaxRequestBody bounds the JSON body of a prompt request
	MaxRequestBody = 1 << 20

	DefaultContentSecurityPolicy = "default-src 'none'"
)

// Asker streams the answer to a question.
type Asker interface {
	AskStream(ctx context.Context, question string, fn func(delta string) error) error
}

// PromptRequest is the body of POST /api/prompt.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// PromptHandler answers POST /api/prompt with the model reply as a chunked
// plain text body, flushed as the model produces it.
type PromptHandler struct {
	asker  Asker
	logger *zap.Logger
}

func NewPromptHandler(asker Asker, logger *zap.Logger) *PromptHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromptHandler{
		asker:  asker,
		logger: logger,
	}
}

func (h *PromptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req PromptRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBody)).Decode(&req); err != nil {
		h.logger.Debug("invalid prompt request", zap.Error(err))
		http.Error(w, "Missing prompt in request body.", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "Missing prompt in request body.", http.StatusBadRequest)
		return
	}

	rc := http.NewResponseController(w)
	var written bool
	err := h.asker.AskStream(r.Context(), req.Prompt, func(delta string) error {
		if !written {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			written = true
		}
		if _, err := io.WriteString(w, delta); err != nil {
			return err
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return err
		}
		return nil
	})
	if err != nil {
		h.logger.Error("error during question processing", zap.String("prompt", req.Prompt), zap.Error(err))
		if !written {
			http.Error(w, "Internal server error.", http.StatusInternalServerError)
		}
		return
	}
	h.logger.Info("answered prompt", zap.String("prompt", req.Prompt))
}

// NewHandler routes the question endpoint and sets the content security
// policy on every response. An empty csp selects DefaultContentSecurityPolicy.
func NewHandler(asker Asker, logger *zap.Logger, csp string) http.Handler {
	if csp == "" {
		csp = DefaultContentSecurityPolicy
	}
	mux := http.NewServeMux()
	mux.Handle("POST "+PromptPath, NewPromptHandler(asker, logger))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", csp)
		mux.ServeHTTP(w, r)
	})
}
