package webhook

import "os"

// DefaultHeader is the signature header sent by the commerce platform.
const DefaultHeader = "X-Shopify-Hmac-Sha256"

// Config holds webhook signature settings.
type Config struct {
	Secret string `toml:"secret"`
	Header string `toml:"header"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Secret string
	Header string
}

// Finalize applies defaults and environment variable overrides. An empty
// secret is valid and disables verification.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Header != "" {
		c.Header = overlay.Header
	}
}

func (c *Config) loadDefaults() {
	if c.Header == "" {
		c.Header = DefaultHeader
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
	if env.Header != "" {
		if v := os.Getenv(env.Header); v != "" {
			c.Header = v
		}
	}
}
