package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/JaimeStill/sourcetag/internal/api"
	"github.com/JaimeStill/sourcetag/internal/config"
	"github.com/JaimeStill/sourcetag/internal/infrastructure"
	"github.com/JaimeStill/sourcetag/pkg/middleware"
	"github.com/JaimeStill/sourcetag/pkg/module"
	"github.com/JaimeStill/sourcetag/pkg/shopify"
	"github.com/JaimeStill/sourcetag/pkg/webhook"
)

const testSecret = "whsec_api"

type adminStub struct {
	mu     sync.Mutex
	paths  []string
	bodies []string
	status int
}

func (s *adminStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.paths = append(s.paths, r.Method+" "+r.URL.Path)
	s.bodies = append(s.bodies, string(body))
	status := s.status
	s.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
}

func (s *adminStub) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

func validConfig(adminURL string) *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            10000,
			ReadTimeout:     "15s",
			WriteTimeout:    "30s",
			ShutdownTimeout: "15s",
		},
		API: config.APIConfig{
			BasePath:    "/webhook",
			MaxBodySize: "1MiB",
			CORS:        middleware.CORSConfig{Enabled: false},
		},
		Shopify: shopify.Config{
			Store:       "example.myshopify.com",
			AccessToken: "shpat_test",
			BaseURL:     adminURL,
		},
		Webhook:         webhook.Config{Secret: testSecret},
		LogLevel:        "error",
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
	if err := cfg.Shopify.Finalize(nil); err != nil {
		panic(err)
	}
	if err := cfg.Webhook.Finalize(nil); err != nil {
		panic(err)
	}
	if err := cfg.Tagging.Finalize(); err != nil {
		panic(err)
	}
	if err := cfg.OpenAPI.Finalize(nil); err != nil {
		panic(err)
	}
	return cfg
}

func setup(t *testing.T, stub *adminStub) http.Handler {
	t.Helper()

	admin := httptest.NewServer(stub)
	t.Cleanup(admin.Close)

	cfg := validConfig(admin.URL)
	infra, err := infrastructure.NewWithWriter(cfg, io.Discard)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)
	return router
}

func post(handler http.Handler, body string, signed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/webhook/orders/create", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signed {
		req.Header.Set(webhook.DefaultHeader, webhook.Sign(testSecret, []byte(body)))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestNewModule(t *testing.T) {
	infra, err := infrastructure.NewWithWriter(validConfig("http://127.0.0.1:1"), io.Discard)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}

	m, err := api.NewModule(validConfig("http://127.0.0.1:1"), infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	if m.Prefix() != "/webhook" {
		t.Errorf("prefix: got %s, want /webhook", m.Prefix())
	}
}

func TestWebhookTagsOrder(t *testing.T) {
	stub := &adminStub{}
	handler := setup(t, stub)

	rec := post(handler, `{"id": 1, "source_name": "facebook", "tags": "VIP"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("response should carry a request id")
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body["tags"] != "VIP, Paid" {
		t.Errorf("tags: got %v, want VIP, Paid", body["tags"])
	}

	calls := stub.calls()
	if len(calls) != 1 || calls[0] != "PUT /admin/api/2024-10/orders/1.json" {
		t.Fatalf("admin calls: got %v", calls)
	}
	if !strings.Contains(stub.bodies[0], `"tags":"VIP, Paid"`) {
		t.Errorf("admin body: got %s", stub.bodies[0])
	}
}

func TestWebhookRejectsUnsigned(t *testing.T) {
	stub := &adminStub{}
	handler := setup(t, stub)

	rec := post(handler, `{"id": 1, "source_name": "facebook"}`, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
	if len(stub.calls()) != 0 {
		t.Error("no admin call expected")
	}
}

func TestWebhookMissingID(t *testing.T) {
	stub := &adminStub{}
	handler := setup(t, stub)

	rec := post(handler, `{}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	if len(stub.calls()) != 0 {
		t.Error("no admin call expected")
	}
}

func TestWebhookUpstreamFailure(t *testing.T) {
	stub := &adminStub{status: http.StatusUnprocessableEntity}
	handler := setup(t, stub)

	rec := post(handler, `{"id": 2, "landing_site": "https://shop.com/?gclid=abc123"}`, true)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if len(stub.calls()) != 1 {
		t.Errorf("admin calls: got %d, want exactly 1", len(stub.calls()))
	}
}

func TestWebhookMethods(t *testing.T) {
	handler := setup(t, &adminStub{})

	tests := []struct {
		method string
		want   int
	}{
		{"GET", http.StatusOK},
		{"PUT", http.StatusMethodNotAllowed},
		{"DELETE", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, "/webhook/orders/create", nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestOpenAPISpec(t *testing.T) {
	handler := setup(t, &adminStub{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/webhook/openapi.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var spec struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	path, ok := spec.Paths["/webhook/orders/create"]
	if !ok {
		t.Fatalf("missing webhook path: %v", spec.Paths)
	}
	if _, ok := path["post"]; !ok {
		t.Error("missing post operation")
	}
}
