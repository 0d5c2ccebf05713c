// Package attribution decides whether an order came from paid advertising or
// organic traffic and maintains the classification tag on the order's tag list.
// Everything in this package is pure: no I/O, no shared state, and no input
// shape causes an error or panic.
package attribution

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Order is the subset of a platform order record the classifier reads.
type Order struct {
	ID            OrderID `json:"id"`
	SourceName    string  `json:"source_name,omitempty"`
	LandingSite   string  `json:"landing_site,omitempty"`
	ReferringSite string  `json:"referring_site,omitempty"`
	Tags          string  `json:"tags,omitempty"`
}

// OrderID is an opaque order identifier. Platforms send it as a JSON number,
// so it decodes from either a number or a string without losing precision.
type OrderID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (id *OrderID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	switch {
	case raw == "null":
		*id = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("order id: %w", err)
		}
		*id = OrderID(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("order id: %w", err)
		}
		*id = OrderID(n.String())
	}
	return nil
}

// String returns the identifier as text.
func (id OrderID) String() string {
	return string(id)
}

// Empty reports whether the identifier is missing.
func (id OrderID) Empty() bool {
	return strings.TrimSpace(string(id)) == ""
}
