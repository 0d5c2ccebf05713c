package api

import (
	"github.com/JaimeStill/sourcetag/internal/attribution"
	"github.com/JaimeStill/sourcetag/internal/config"
	"github.com/JaimeStill/sourcetag/pkg/openapi"
)

// NewSpec describes the webhook endpoints mounted under the configured base path.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.OpenAPI.Description)
	spec.AddTag("orders", "Order webhooks delivered by the store")
	for _, url := range cfg.OpenAPI.Servers {
		spec.AddServer(url)
	}

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Order":       orderSchema(),
		"OrderResult": resultSchema(),
		"Status": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"status":  {Type: "string", Example: "ok"},
				"message": {Type: "string"},
			},
		},
	})

	spec.Paths[cfg.API.BasePath+"/orders/create"] = &openapi.PathItem{
		Summary: "Order creation webhook",
		Post: &openapi.Operation{
			OperationID: "tagOrder",
			Summary:     "Classify an order and write its traffic-source tag",
			Description: "Accepts a bare order or an {\"order\": {...}} envelope. " +
				"Unknown fields are ignored. The update call is made at most once and never retried.",
			Tags: []string{"orders"},
			Parameters: []*openapi.Parameter{
				openapi.HeaderParam(cfg.Webhook.Header, "Base64 HMAC-SHA256 of the raw body; required when a secret is configured", false),
			},
			RequestBody: openapi.RequestBodyJSON("Order", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Order classified", "OrderResult"),
				400: openapi.ResponseRef("BadRequest"),
				401: openapi.ResponseRef("Unauthorized"),
				500: openapi.ResponseRef("ServerError"),
			},
		},
		Get: &openapi.Operation{
			OperationID: "webhookStatus",
			Summary:     "Liveness check for the webhook endpoint",
			Tags:        []string{"orders"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Endpoint reachable", "Status"),
			},
		},
	}

	return spec
}

func orderSchema() *openapi.Schema {
	return &openapi.Schema{
		Type:     "object",
		Required: []string{"id"},
		Properties: map[string]*openapi.Schema{
			"id":             {Description: "Order id as a number or string"},
			"source_name":    {Type: "string", Example: "web"},
			"landing_site":   {Type: "string", Example: "/products/x?utm_source=facebook&utm_medium=cpc"},
			"referring_site": {Type: "string"},
			"tags":           {Type: "string", Description: "Comma-separated tag list", Example: "VIP, Wholesale"},
		},
	}
}

func resultSchema() *openapi.Schema {
	platforms := make([]any, 0, len(attribution.Platforms())+1)
	for _, p := range attribution.Platforms() {
		platforms = append(platforms, string(p))
	}
	platforms = append(platforms, string(attribution.PlatformUnknown))

	return &openapi.Schema{
		Type:     "object",
		Required: []string{"success", "order_id", "trafficSource", "tag", "tags", "updated"},
		Properties: map[string]*openapi.Schema{
			"success":       {Type: "boolean"},
			"order_id":      {Type: "string"},
			"trafficSource": {Type: "string", Enum: []any{string(attribution.SourcePaid), string(attribution.SourceOrganic)}},
			"platform":      {Type: "string", Description: "Null for Organic orders", Enum: platforms},
			"tag":           {Type: "string", Example: "Paid"},
			"tags":          {Type: "string", Example: "VIP, Paid"},
			"updated":       {Type: "boolean", Description: "False when no update call was made"},
			"evidence": {
				Type:        "object",
				Description: "Present when include_evidence is enabled",
				Properties: map[string]*openapi.Schema{
					"rule":  {Type: "string"},
					"field": {Type: "string"},
					"param": {Type: "string"},
					"value": {Type: "string"},
					"match": {Type: "string"},
				},
			},
		},
	}
}
