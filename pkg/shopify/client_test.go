package shopify_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/sourcetag/pkg/shopify"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, baseURL string, mutate func(*shopify.Config)) *shopify.Client {
	t.Helper()
	cfg := &shopify.Config{
		Store:       "example.myshopify.com",
		AccessToken: "shpat_test",
		BaseURL:     baseURL,
		Timeout:     "2s",
	}
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Finalize(nil))
	return shopify.New(cfg, discardLogger())
}

func TestUpdateOrderTags(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotToken  string
		gotType   string
		gotBody   map[string]map[string]any
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		gotType = r.Header.Get("Content-Type")

		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order":{}}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, nil)

	err := client.UpdateOrderTags(context.Background(), "450789469", "VIP, Paid")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/admin/api/2024-10/orders/450789469.json", gotPath)
	assert.Equal(t, "shpat_test", gotToken)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, json.Number("450789469"), gotBody["order"]["id"])
	assert.Equal(t, "VIP, Paid", gotBody["order"]["tags"])
}

func TestUpdateOrderTagsGlobalID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, func(c *shopify.Config) { c.APIVersion = "2025-01" })

	require.NoError(t, client.UpdateOrderTags(context.Background(), "gid://shopify/Order/99", "Paid"))
	assert.Equal(t, "/admin/api/2025-01/orders/99.json", gotPath)
}

func TestUpdateOrderTagsInvalidID(t *testing.T) {
	client := newClient(t, "http://127.0.0.1:1", nil)

	err := client.UpdateOrderTags(context.Background(), "  ", "Paid")
	assert.ErrorIs(t, err, shopify.ErrInvalidOrderID)
}

func TestUpdateOrderTagsNon2xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"tags":["is invalid"]}}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, nil)

	err := client.UpdateOrderTags(context.Background(), "1", "Paid")
	require.Error(t, err)

	var apiErr *shopify.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "is invalid")
	assert.False(t, apiErr.Temporary())
	assert.Equal(t, int32(1), calls.Load(), "must not retry")
}

func TestUpdateOrderTagsTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := newClient(t, srv.URL, func(c *shopify.Config) { c.Timeout = "50ms" })

	start := time.Now()
	err := client.UpdateOrderTags(context.Background(), "1", "Paid")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestCircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, func(c *shopify.Config) {
		c.Breaker = shopify.BreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      "1m",
		}
	})

	assert.True(t, client.Ready())

	for range 2 {
		var apiErr *shopify.APIError
		require.ErrorAs(t, client.UpdateOrderTags(context.Background(), "1", "Paid"), &apiErr)
	}

	err := client.UpdateOrderTags(context.Background(), "1", "Paid")
	assert.ErrorIs(t, err, shopify.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
	assert.False(t, client.Ready(), "open circuit reports not ready")
}

func TestCircuitBreakerIgnoresClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, func(c *shopify.Config) {
		c.Breaker = shopify.BreakerConfig{Enabled: true, FailureThreshold: 1}
	})

	for range 3 {
		var apiErr *shopify.APIError
		require.ErrorAs(t, client.UpdateOrderTags(context.Background(), "1", "Paid"), &apiErr)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestResourceID(t *testing.T) {
	assert.Equal(t, "123", shopify.ResourceID(" 123 "))
	assert.Equal(t, "450789469", shopify.ResourceID("gid://shopify/Order/450789469"))
	assert.Equal(t, "abc", shopify.ResourceID("abc"))
}
