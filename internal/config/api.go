package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/JaimeStill/sourcetag/pkg/middleware"
)

const (
	EnvAPIBasePath    = "SOURCETAG_API_BASE_PATH"
	EnvAPIMaxBodySize = "SOURCETAG_API_MAX_BODY_SIZE"

	defaultMaxBodySize = 1 << 20
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SOURCETAG_CORS_ENABLED",
	Origins:          "SOURCETAG_CORS_ORIGINS",
	AllowedMethods:   "SOURCETAG_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SOURCETAG_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SOURCETAG_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SOURCETAG_CORS_MAX_AGE",
}

// APIConfig holds webhook routing, body limit, and CORS settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes, falling back to 1MiB when
// the value cannot be parsed. Both SI ("1MB") and IEC ("1MiB") units are
// accepted.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := humanize.ParseBytes(c.MaxBodySize)
	if err != nil || size == 0 || size > math.MaxInt64 {
		return defaultMaxBodySize
	}
	return int64(size)
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/webhook"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MiB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
}

// validate enforces the single-level prefix modules are mounted under.
func (c *APIConfig) validate() error {
	if c.BasePath == "/" || !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 {
		return fmt.Errorf("base_path must be a single-level path such as /webhook: %q", c.BasePath)
	}
	return nil
}
