// Package api assembles the webhook module with its domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/sourcetag/internal/config"
	"github.com/JaimeStill/sourcetag/internal/infrastructure"
	"github.com/JaimeStill/sourcetag/pkg/middleware"
	"github.com/JaimeStill/sourcetag/pkg/module"
)

// NewModule creates the webhook module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
