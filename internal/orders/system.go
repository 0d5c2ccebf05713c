package orders

import (
	"context"

	"github.com/JaimeStill/sourcetag/internal/attribution"
)

// Updater writes an order's tag string back to the commerce platform.
type Updater interface {
	UpdateOrderTags(ctx context.Context, orderID, tags string) error
}

// System defines the public contract for order tagging operations.
type System interface {
	Handler() *Handler

	// Plan classifies an order and computes the tags it should carry without
	// side effects.
	Plan(order attribution.Order) Plan

	// Tag plans the order and, when the tags change, issues exactly one
	// update call. It never retries.
	Tag(ctx context.Context, order attribution.Order) (*Result, error)
}

// Options controls how verdicts become tag updates.
type Options struct {
	Style           attribution.TagStyle
	TagOrganic      bool
	IncludeEvidence bool
	SkipUnchanged   bool
	Classifier      attribution.Options
}

// DefaultOptions returns plain tags, Organic orders tagged, no evidence in
// responses, and unchanged redeliveries skipped.
func DefaultOptions() Options {
	return Options{
		Style:         attribution.StylePlain,
		TagOrganic:    true,
		SkipUnchanged: true,
	}
}

// Plan is the side-effect-free outcome of classifying one order.
type Plan struct {
	Order   attribution.Order   `json:"order"`
	Verdict attribution.Verdict `json:"verdict"`
	Tag     string              `json:"tag"`
	Tags    string              `json:"tags"`
	Update  bool                `json:"update"`
}

// Result is the webhook response body for a handled order.
type Result struct {
	Success       bool                  `json:"success"`
	OrderID       string                `json:"order_id"`
	TrafficSource attribution.Source    `json:"trafficSource"`
	Platform      *attribution.Platform `json:"platform"`
	Tag           string                `json:"tag"`
	Tags          string                `json:"tags"`
	Updated       bool                  `json:"updated"`
	Evidence      *attribution.Evidence `json:"evidence,omitempty"`
}
