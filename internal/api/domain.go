package api

import "github.com/JaimeStill/sourcetag/internal/orders"

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Orders orders.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Orders: orders.New(
			runtime.Shopify,
			runtime.Verifier,
			runtime.Tagging,
			runtime.MaxBodySize,
			runtime.Logger,
		),
	}
}
