package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost            = "SOURCETAG_SERVER_HOST"
	EnvServerPort            = "SOURCETAG_SERVER_PORT"
	EnvServerReadTimeout     = "SOURCETAG_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "SOURCETAG_SERVER_WRITE_TIMEOUT"
	EnvServerShutdownTimeout = "SOURCETAG_SERVER_SHUTDOWN_TIMEOUT"

	// EnvPort is the listen port injected by hosting platforms. It is
	// consulted before EnvServerPort, which wins when both are set.
	EnvPort = "PORT"

	DefaultPort = 10000
)

// ServerConfig holds the HTTP listener parameters. Timeouts are Go duration
// strings so they read naturally in TOML and env files.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ReadTimeoutDuration returns ReadTimeout as a time.Duration.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return validDuration(c.ReadTimeout)
}

// WriteTimeoutDuration returns WriteTimeout as a time.Duration.
func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return validDuration(c.WriteTimeout)
}

// ShutdownTimeoutDuration returns how long the listener may drain in-flight
// webhook deliveries.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return validDuration(c.ShutdownTimeout)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for _, d := range c.durations() {
		if v := *d.field(overlay); v != "" {
			*d.field(c) = v
		}
	}
}

type durationField struct {
	name  string
	env   string
	def   string
	field func(*ServerConfig) *string
}

func (c *ServerConfig) durations() []durationField {
	return []durationField{
		{"read_timeout", EnvServerReadTimeout, "15s", func(s *ServerConfig) *string { return &s.ReadTimeout }},
		{"write_timeout", EnvServerWriteTimeout, "30s", func(s *ServerConfig) *string { return &s.WriteTimeout }},
		{"shutdown_timeout", EnvServerShutdownTimeout, "15s", func(s *ServerConfig) *string { return &s.ShutdownTimeout }},
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	for _, d := range c.durations() {
		if f := d.field(c); *f == "" {
			*f = d.def
		}
	}
}

func (c *ServerConfig) loadEnv() error {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	for _, key := range []string{EnvPort, EnvServerPort} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %q", key, v)
		}
		c.Port = port
	}
	for _, d := range c.durations() {
		if v := os.Getenv(d.env); v != "" {
			*d.field(c) = v
		}
	}
	return nil
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for _, d := range c.durations() {
		v := *d.field(c)
		dur, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.name, err)
		}
		if dur <= 0 {
			return fmt.Errorf("invalid %s: must be positive, got %s", d.name, v)
		}
	}
	return nil
}

// validDuration parses a duration that validate has already accepted.
func validDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
