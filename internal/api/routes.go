package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/sourcetag/internal/config"
	"github.com/JaimeStill/sourcetag/pkg/openapi"
	"github.com/JaimeStill/sourcetag/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) error {
	serveSpec, err := openapi.Handler(NewSpec(cfg))
	if err != nil {
		return fmt.Errorf("build openapi spec: %w", err)
	}

	routes.Register(
		mux,
		domain.Orders.Handler().Routes(),
		routes.Group{
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/openapi.json", Handler: serveSpec},
			},
		},
	)
	return nil
}
