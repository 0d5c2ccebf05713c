package orders

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/sourcetag/pkg/webhook"
)

// Domain errors for order webhook handling.
var (
	ErrInvalidPayload = errors.New("invalid order payload")
	ErrMissingID      = errors.New("order id is required")
	ErrBodyTooLarge   = errors.New("request body too large")
	ErrUpstream       = errors.New("order update failed")
)

// MapHTTPStatus maps order domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrMissingID) ||
		errors.Is(err, ErrBodyTooLarge) {
		return http.StatusBadRequest
	}
	if errors.Is(err, webhook.ErrMissingSignature) ||
		errors.Is(err, webhook.ErrInvalidSignature) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
