package shopify

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrderID indicates an order identifier that cannot address an order resource.
	ErrInvalidOrderID = errors.New("invalid order id")
	// ErrCircuitOpen indicates the circuit breaker rejected the call without contacting the API.
	ErrCircuitOpen = errors.New("admin api circuit open")
)

// APIError is returned when the Admin API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("admin api status %d", e.StatusCode)
	}
	return fmt.Sprintf("admin api status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the status indicates a server-side or throttling failure.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
