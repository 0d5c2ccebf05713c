// Package shopify provides a minimal Admin API client for writing order tags.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/JaimeStill/sourcetag/pkg/lifecycle"
)

const (
	accessTokenHeader = "X-Shopify-Access-Token"
	maxErrorBody      = 4 << 10
)

// Client issues order updates against the Admin REST API. Each call is made
// exactly once; failures are returned to the caller and never retried.
type Client struct {
	http     *http.Client
	endpoint string
	version  string
	token    string
	timeout  time.Duration
	breaker  *gobreaker.CircuitBreaker[struct{}]
	logger   *slog.Logger
}

// New creates a Client from a finalized Config.
func New(cfg *Config, logger *slog.Logger) *Client {
	timeout := cfg.TimeoutDuration()

	c := &Client{
		http:     &http.Client{Timeout: timeout},
		endpoint: cfg.Endpoint(),
		version:  cfg.APIVersion,
		token:    cfg.AccessToken,
		timeout:  timeout,
		logger:   logger.With("system", "shopify"),
	}

	if cfg.Breaker.Enabled {
		c.breaker = newBreaker(&cfg.Breaker, c.logger)
	}

	return c
}

func newBreaker(cfg *BreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[struct{}] {
	threshold := uint32(cfg.FailureThreshold)

	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "shopify-admin",
		MaxRequests: uint32(cfg.MaxRequests),
		Timeout:     cfg.OpenTimeoutDuration(),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return !apiErr.Temporary()
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// Ready reports whether the client accepts calls. It is false only while the
// circuit breaker is open.
func (c *Client) Ready() bool {
	return c.breaker == nil || c.breaker.State() != gobreaker.StateOpen
}

// Start registers the client's readiness check and shutdown hook with the
// lifecycle coordinator.
func (c *Client) Start(lc *lifecycle.Coordinator) error {
	c.logger.Info("admin api client configured",
		"endpoint", c.endpoint,
		"version", c.version,
		"timeout", c.timeout,
		"breaker", c.breaker != nil,
	)

	lc.AddCheck("shopify", c)

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		c.http.CloseIdleConnections()
		c.logger.Info("admin api client closed")
	})

	return nil
}

// OrderURL returns the order resource URL for id.
func (c *Client) OrderURL(id string) string {
	return fmt.Sprintf(
		"%s/admin/api/%s/orders/%s.json",
		c.endpoint, c.version, url.PathEscape(id),
	)
}

// UpdateOrderTags replaces the tag string of an order. The call is bounded by
// the configured timeout in addition to ctx.
func (c *Client) UpdateOrderTags(ctx context.Context, orderID, tags string) error {
	id := ResourceID(orderID)
	if id == "" {
		return fmt.Errorf("%w: %q", ErrInvalidOrderID, orderID)
	}

	return c.execute(func() error {
		return c.putOrder(ctx, id, tags)
	})
}

func (c *Client) execute(fn func() error) error {
	if c.breaker == nil {
		return fn()
	}

	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	return err
}

type orderUpdate struct {
	Order orderTags `json:"order"`
}

type orderTags struct {
	ID   any    `json:"id"`
	Tags string `json:"tags"`
}

func (c *Client) putOrder(ctx context.Context, id, tags string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(orderUpdate{
		Order: orderTags{ID: jsonID(id), Tags: tags},
	})
	if err != nil {
		return fmt.Errorf("encode order update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.OrderURL(id), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build order update: %w", err)
	}
	req.Header.Set(accessTokenHeader, c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("update order %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}

// ResourceID extracts the numeric resource id from either a bare id or a
// global id such as "gid://shopify/Order/450789469".
func ResourceID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "gid://") {
		if i := strings.LastIndex(id, "/"); i >= 0 {
			id = id[i+1:]
		}
	}
	return id
}

// jsonID keeps numeric ids numeric in the request body.
func jsonID(id string) any {
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return json.Number(id)
	}
	return id
}
