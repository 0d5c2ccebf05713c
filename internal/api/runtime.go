package api

import (
	"github.com/JaimeStill/sourcetag/internal/config"
	"github.com/JaimeStill/sourcetag/internal/infrastructure"
	"github.com/JaimeStill/sourcetag/internal/orders"
)

// Runtime extends Infrastructure with webhook-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Tagging     orders.Options
	MaxBodySize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Shopify:   infra.Shopify,
			Verifier:  infra.Verifier,
		},
		Tagging:     cfg.Tagging.Options(),
		MaxBodySize: cfg.API.MaxBodySizeBytes(),
	}
}
