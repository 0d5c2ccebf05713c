package orders

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/sourcetag/internal/attribution"
)

// DecodeOrder parses a webhook body into an Order. The body may be the order
// object itself or an envelope of the form {"order": {...}}.
func DecodeOrder(body []byte) (attribution.Order, error) {
	var order attribution.Order

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return order, fmt.Errorf("%w: empty body", ErrInvalidPayload)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return order, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if inner, ok := fields["order"]; ok && isObject(inner) {
		body = inner
	}

	if err := json.Unmarshal(body, &order); err != nil {
		return order, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if order.ID.Empty() {
		return order, ErrMissingID
	}

	return order, nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
