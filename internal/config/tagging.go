package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/sourcetag/internal/attribution"
	"github.com/JaimeStill/sourcetag/internal/orders"
)

const (
	EnvTagStyle        = "SOURCETAG_TAG_STYLE"
	EnvTagOrganic      = "SOURCETAG_TAG_ORGANIC"
	EnvIncludeEvidence = "SOURCETAG_INCLUDE_EVIDENCE"
	EnvSkipUnchanged   = "SOURCETAG_SKIP_UNCHANGED"
	EnvMatchSiteHosts  = "SOURCETAG_MATCH_SITE_HOSTS"
)

// TaggingConfig selects how verdicts are turned into order tags. Boolean
// fields are pointers so an overlay can switch a default-on flag off.
type TaggingConfig struct {
	Style           string `toml:"tag_style"`
	TagOrganic      *bool  `toml:"tag_organic"`
	IncludeEvidence *bool  `toml:"include_evidence"`
	SkipUnchanged   *bool  `toml:"skip_unchanged"`
	MatchSiteHosts  *bool  `toml:"match_site_hosts"`
}

// Options converts the finalized config into order tagging options.
func (c *TaggingConfig) Options() orders.Options {
	style, _ := attribution.ParseTagStyle(c.Style)
	return orders.Options{
		Style:           style,
		TagOrganic:      deref(c.TagOrganic),
		IncludeEvidence: deref(c.IncludeEvidence),
		SkipUnchanged:   deref(c.SkipUnchanged),
		Classifier: attribution.Options{
			MatchSiteHosts: deref(c.MatchSiteHosts),
		},
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *TaggingConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge overwrites fields that are set in overlay.
func (c *TaggingConfig) Merge(overlay *TaggingConfig) {
	if overlay.Style != "" {
		c.Style = overlay.Style
	}
	if overlay.TagOrganic != nil {
		c.TagOrganic = overlay.TagOrganic
	}
	if overlay.IncludeEvidence != nil {
		c.IncludeEvidence = overlay.IncludeEvidence
	}
	if overlay.SkipUnchanged != nil {
		c.SkipUnchanged = overlay.SkipUnchanged
	}
	if overlay.MatchSiteHosts != nil {
		c.MatchSiteHosts = overlay.MatchSiteHosts
	}
}

func (c *TaggingConfig) loadDefaults() {
	if c.Style == "" {
		c.Style = string(attribution.StylePlain)
	}
	if c.TagOrganic == nil {
		c.TagOrganic = ptr(true)
	}
	if c.IncludeEvidence == nil {
		c.IncludeEvidence = ptr(false)
	}
	if c.SkipUnchanged == nil {
		c.SkipUnchanged = ptr(true)
	}
	if c.MatchSiteHosts == nil {
		c.MatchSiteHosts = ptr(false)
	}
}

func (c *TaggingConfig) loadEnv() error {
	if v := os.Getenv(EnvTagStyle); v != "" {
		c.Style = v
	}

	flags := []struct {
		key string
		dst **bool
	}{
		{EnvTagOrganic, &c.TagOrganic},
		{EnvIncludeEvidence, &c.IncludeEvidence},
		{EnvSkipUnchanged, &c.SkipUnchanged},
		{EnvMatchSiteHosts, &c.MatchSiteHosts},
	}
	for _, f := range flags {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %q", f.key, v)
		}
		*f.dst = ptr(b)
	}
	return nil
}

func (c *TaggingConfig) validate() error {
	if _, err := attribution.ParseTagStyle(c.Style); err != nil {
		return err
	}
	return nil
}

func ptr(b bool) *bool {
	return &b
}

func deref(b *bool) bool {
	return b != nil && *b
}
