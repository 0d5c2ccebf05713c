package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/sourcetag/internal/config"
	"github.com/JaimeStill/sourcetag/internal/infrastructure"
	"github.com/JaimeStill/sourcetag/internal/orders"
	"github.com/JaimeStill/sourcetag/pkg/shopify"
	"github.com/JaimeStill/sourcetag/pkg/webhook"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		args       []string
		wantTag    string
		wantTags   string
		wantUpdate bool
	}{
		{
			name:       "paid source name",
			payload:    `{"id": 1, "source_name": "facebook", "tags": "VIP"}`,
			wantTag:    "Paid",
			wantTags:   "VIP, Paid",
			wantUpdate: true,
		},
		{
			name:       "detailed click id",
			payload:    `{"order": {"id": 2, "landing_site": "https://shop.com/?gclid=abc123"}}`,
			args:       []string{"--style", "detailed"},
			wantTag:    "Paid - Google Ad Order",
			wantTags:   "Paid - Google Ad Order",
			wantUpdate: true,
		},
		{
			name:       "organic already tagged",
			payload:    `{"id": 3, "tags": "Organic"}`,
			wantTag:    "Organic",
			wantTags:   "Organic",
			wantUpdate: false,
		},
		{
			name:       "site host matching",
			payload:    `{"id": 4, "referring_site": "https://l.instagram.com/"}`,
			args:       []string{"--match-site-hosts"},
			wantTag:    "Paid",
			wantTags:   "Paid",
			wantUpdate: true,
		},
		{
			name:       "organic tagging disabled",
			payload:    `{"id": 5, "tags": "VIP"}`,
			args:       []string{"--tag-organic=false"},
			wantTag:    "Organic",
			wantTags:   "VIP",
			wantUpdate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"classify"}, tt.args...)
			out, err := execute(t, tt.payload, args...)
			if err != nil {
				t.Fatalf("classify error = %v", err)
			}

			var plan orders.Plan
			if err := json.Unmarshal([]byte(out), &plan); err != nil {
				t.Fatalf("decode output: %v\n%s", err, out)
			}

			if plan.Tag != tt.wantTag {
				t.Errorf("tag: got %q, want %q", plan.Tag, tt.wantTag)
			}
			if plan.Tags != tt.wantTags {
				t.Errorf("tags: got %q, want %q", plan.Tags, tt.wantTags)
			}
			if plan.Update != tt.wantUpdate {
				t.Errorf("update: got %v, want %v", plan.Update, tt.wantUpdate)
			}
		})
	}
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		args    []string
	}{
		{"missing id", `{}`, nil},
		{"malformed", `{"id": 1,`, nil},
		{"unknown style", `{"id": 1}`, []string{"--style", "fancy"}},
		{"missing file", "", []string{"--order", "does-not-exist.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"classify"}, tt.args...)
			if _, err := execute(t, tt.payload, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSign(t *testing.T) {
	payload := `{"id": 1}`

	out, err := execute(t, payload, "sign", "--secret", "whsec_test")
	if err != nil {
		t.Fatalf("sign error = %v", err)
	}

	want := webhook.Sign("whsec_test", []byte(payload))
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("signature: got %q, want %q", got, want)
	}
}

func TestSignSecretFromEnv(t *testing.T) {
	t.Setenv(config.EnvShopifyWebhookSecret, "from_env")
	payload := `{"id": 2}`

	out, err := execute(t, payload, "sign")
	if err != nil {
		t.Fatalf("sign error = %v", err)
	}

	want := webhook.Sign("from_env", []byte(payload))
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("signature: got %q, want %q", got, want)
	}
}

func TestSignRequiresSecret(t *testing.T) {
	t.Setenv(config.EnvShopifyWebhookSecret, "")

	if _, err := execute(t, `{"id": 1}`, "sign"); err == nil {
		t.Error("expected error without a secret")
	}
}

func newTestInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()

	cfg := &config.Config{
		Shopify: shopify.Config{
			Store:       "example.myshopify.com",
			AccessToken: "shpat_test",
			APIVersion:  "2024-10",
			Timeout:     "10s",
		},
		LogLevel: "info",
	}

	infra, err := infrastructure.NewWithWriter(cfg, io.Discard)
	if err != nil {
		t.Fatalf("infrastructure error = %v", err)
	}
	return infra
}

func TestNativeRoutes(t *testing.T) {
	infra := newTestInfra(t)
	router := buildRouter(infra)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	root := get("/")
	if root.Code != http.StatusOK {
		t.Errorf("GET /: got %d, want 200", root.Code)
	}
	if !strings.Contains(root.Body.String(), "running") {
		t.Errorf("GET / body: %q", root.Body.String())
	}

	if rec := get("/healthz"); rec.Code != http.StatusOK {
		t.Errorf("GET /healthz: got %d, want 200", rec.Code)
	}

	if rec := get("/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /readyz before startup: got %d, want 503", rec.Code)
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()
	defer infra.Lifecycle.Shutdown(time.Second)

	if rec := get("/readyz"); rec.Code != http.StatusOK {
		t.Errorf("GET /readyz after startup: got %d, want 200", rec.Code)
	}

	if rec := get("/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /missing: got %d, want 404", rec.Code)
	}
}
