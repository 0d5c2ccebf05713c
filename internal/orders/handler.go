package orders

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/sourcetag/pkg/handlers"
	"github.com/JaimeStill/sourcetag/pkg/routes"
	"github.com/JaimeStill/sourcetag/pkg/webhook"
)

// Handler provides the HTTP endpoints for order webhooks.
type Handler struct {
	sys      System
	verifier *webhook.Verifier
	maxBody  int64
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given system, signature verifier,
// body size limit, and logger.
func NewHandler(
	sys System,
	verifier *webhook.Verifier,
	maxBody int64,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		sys:      sys,
		verifier: verifier,
		maxBody:  maxBody,
		logger:   logger.With("handler", "orders"),
	}
}

// Routes returns the route group definition for order webhook endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/orders",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/create", Handler: h.Create},
			{Method: "GET", Pattern: "/create", Handler: h.Status},
		},
	}
}

// Create verifies, decodes, classifies, and tags an order creation webhook.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if err := h.verifier.Verify(body, r.Header.Get(h.verifier.Header())); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	order, err := DecodeOrder(body)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Tag(r.Context(), order)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Status reports that the webhook endpoint is reachable.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "order webhook ready",
	})
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	reader := io.Reader(r.Body)
	if h.maxBody > 0 {
		reader = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrBodyTooLarge
		}
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	return body, nil
}
