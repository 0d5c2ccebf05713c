// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (lifecycle, logging, the Admin API
// client, and webhook verification) that domain systems require.
package infrastructure

import (
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/sourcetag/internal/config"
	"github.com/JaimeStill/sourcetag/pkg/lifecycle"
	"github.com/JaimeStill/sourcetag/pkg/shopify"
	"github.com/JaimeStill/sourcetag/pkg/webhook"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Shopify   *shopify.Client
	Verifier  *webhook.Verifier
}

// New creates an Infrastructure from the application configuration, logging
// to stderr. It initializes all systems but does not start them; call Start
// separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with the log destination supplied by the caller.
func NewWithWriter(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Shopify:   shopify.New(&cfg.Shopify, logger),
		Verifier:  webhook.NewVerifier(&cfg.Webhook),
	}, nil
}

// Start registers infrastructure systems with the lifecycle coordinator and
// reports a disabled signature check.
func (i *Infrastructure) Start() error {
	if err := i.Shopify.Start(i.Lifecycle); err != nil {
		return err
	}

	if !i.Verifier.Enabled() {
		i.Logger.Warn(
			"webhook signature verification disabled; set SHOPIFY_WEBHOOK_SECRET",
			"system", "webhook",
		)
	}

	return nil
}
