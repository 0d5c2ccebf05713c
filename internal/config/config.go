// Package config loads service configuration from config.toml, an optional
// environment overlay, a .env file, and environment variables, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/sourcetag/pkg/openapi"
	"github.com/JaimeStill/sourcetag/pkg/shopify"
	"github.com/JaimeStill/sourcetag/pkg/webhook"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvSourcetagEnv             = "SOURCETAG_ENV"
	EnvSourcetagShutdownTimeout = "SOURCETAG_SHUTDOWN_TIMEOUT"
	EnvSourcetagVersion         = "SOURCETAG_VERSION"
	EnvSourcetagLogLevel        = "SOURCETAG_LOG_LEVEL"

	EnvShopifyWebhookSecret = "SHOPIFY_WEBHOOK_SECRET"
)

var shopifyEnv = &shopify.Env{
	Store:          "SHOPIFY_STORE",
	AccessToken:    "SHOPIFY_ACCESS_TOKEN",
	APIVersion:     "SHOPIFY_API_VERSION",
	Timeout:        "SHOPIFY_API_TIMEOUT",
	BaseURL:        "SHOPIFY_BASE_URL",
	BreakerEnabled: "SHOPIFY_BREAKER_ENABLED",
}

var webhookEnv = &webhook.Env{
	Secret: EnvShopifyWebhookSecret,
	Header: "SOURCETAG_WEBHOOK_HEADER",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "SOURCETAG_OPENAPI_TITLE",
	Description: "SOURCETAG_OPENAPI_DESCRIPTION",
	Servers:     "SOURCETAG_OPENAPI_SERVERS",
}

// Config is the root configuration for the sourcetag service.
type Config struct {
	Server          ServerConfig   `toml:"server"`
	API             APIConfig      `toml:"api"`
	Shopify         shopify.Config `toml:"shopify"`
	Webhook         webhook.Config `toml:"webhook"`
	Tagging         TaggingConfig  `toml:"tagging"`
	OpenAPI         openapi.Config `toml:"openapi"`
	LogLevel        string         `toml:"log_level"`
	ShutdownTimeout string         `toml:"shutdown_timeout"`
	Version         string         `toml:"version"`
}

// Env returns the SOURCETAG_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSourcetagEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Level returns LogLevel as a slog.Level. Unknown values fall back to Info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads configuration starting from BaseConfigFile in the working directory.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom reads the base config at path (if present), applies any
// environment overlay found next to it, loads .env, and finalizes all values.
// If no base file exists, defaults and environment variables provide all
// configuration.
func LoadFrom(path string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overlay := overlayPath(path); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Shopify.Merge(&overlay.Shopify)
	c.Webhook.Merge(&overlay.Webhook)
	c.Tagging.Merge(&overlay.Tagging)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Shopify.Finalize(shopifyEnv); err != nil {
		return fmt.Errorf("shopify: %w", err)
	}
	if err := c.Webhook.Finalize(webhookEnv); err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	if err := c.Tagging.Finalize(); err != nil {
		return fmt.Errorf("tagging: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvSourcetagLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvSourcetagShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvSourcetagVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// overlayPath derives config.<env>.toml from the base path, so an explicit
// base of conf/app.toml looks for conf/app.<env>.toml.
func overlayPath(base string) string {
	env := os.Getenv(EnvSourcetagEnv)
	if env == "" {
		return ""
	}

	path := fmt.Sprintf(OverlayConfigPattern, env)
	if base != BaseConfigFile {
		path = strings.TrimSuffix(base, ".toml") + "." + env + ".toml"
	}

	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
