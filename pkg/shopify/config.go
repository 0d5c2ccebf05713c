package shopify

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIVersion is the Admin API version used when none is configured.
const DefaultAPIVersion = "2024-10"

// Config holds Admin API connection parameters.
type Config struct {
	Store       string        `toml:"store"`
	AccessToken string        `toml:"access_token"`
	APIVersion  string        `toml:"api_version"`
	Timeout     string        `toml:"timeout"`
	BaseURL     string        `toml:"base_url"`
	Breaker     BreakerConfig `toml:"breaker"`
}

// BreakerConfig controls the optional circuit breaker around Admin API calls.
// The breaker never retries; it only fails fast while the API keeps failing.
type BreakerConfig struct {
	Enabled          bool   `toml:"enabled"`
	FailureThreshold int    `toml:"failure_threshold"`
	OpenTimeout      string `toml:"open_timeout"`
	MaxRequests      int    `toml:"max_requests"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Store          string
	AccessToken    string
	APIVersion     string
	Timeout        string
	BaseURL        string
	BreakerEnabled string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// OpenTimeoutDuration returns OpenTimeout as a time.Duration.
func (c *BreakerConfig) OpenTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.OpenTimeout)
	return d
}

// Endpoint returns the scheme and host requests are sent to. BaseURL wins
// over Store when both are set.
func (c *Config) Endpoint() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	store := strings.TrimPrefix(c.Store, "https://")
	store = strings.TrimPrefix(store, "http://")
	return "https://" + strings.TrimRight(store, "/")
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. The breaker's Enabled flag
// always applies.
func (c *Config) Merge(overlay *Config) {
	if overlay.Store != "" {
		c.Store = overlay.Store
	}
	if overlay.AccessToken != "" {
		c.AccessToken = overlay.AccessToken
	}
	if overlay.APIVersion != "" {
		c.APIVersion = overlay.APIVersion
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}

	c.Breaker.Enabled = overlay.Breaker.Enabled
	if overlay.Breaker.FailureThreshold != 0 {
		c.Breaker.FailureThreshold = overlay.Breaker.FailureThreshold
	}
	if overlay.Breaker.OpenTimeout != "" {
		c.Breaker.OpenTimeout = overlay.Breaker.OpenTimeout
	}
	if overlay.Breaker.MaxRequests != 0 {
		c.Breaker.MaxRequests = overlay.Breaker.MaxRequests
	}
}

func (c *Config) loadDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
	if c.Breaker.FailureThreshold <= 0 {
		c.Breaker.FailureThreshold = 5
	}
	if c.Breaker.OpenTimeout == "" {
		c.Breaker.OpenTimeout = "30s"
	}
	if c.Breaker.MaxRequests <= 0 {
		c.Breaker.MaxRequests = 1
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Store != "" {
		if v := os.Getenv(env.Store); v != "" {
			c.Store = v
		}
	}
	if env.AccessToken != "" {
		if v := os.Getenv(env.AccessToken); v != "" {
			c.AccessToken = v
		}
	}
	if env.APIVersion != "" {
		if v := os.Getenv(env.APIVersion); v != "" {
			c.APIVersion = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.BreakerEnabled != "" {
		if v := os.Getenv(env.BreakerEnabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Breaker.Enabled = enabled
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Store == "" && c.BaseURL == "" {
		return fmt.Errorf("store required")
	}
	if c.AccessToken == "" {
		return fmt.Errorf("access_token required")
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive: %s", c.Timeout)
	}
	if _, err := time.ParseDuration(c.Breaker.OpenTimeout); err != nil {
		return fmt.Errorf("invalid breaker open_timeout: %w", err)
	}
	return nil
}
