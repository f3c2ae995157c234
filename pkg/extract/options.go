// Package extract is the public entry point for carving per-region
// pricing pages out of a raw vendor HTML document.
package extract

import (
	"github.com/pricecarve/pricecarve/pkg/cleaner"
	"github.com/pricecarve/pricecarve/pkg/regions"
)

// Config holds all extraction configuration.
type Config struct {
	// Product keys the region rule lookup, e.g. "mysql".
	Product string

	// Title overrides the page-derived product name in output documents.
	Title string

	// KeepAttrs is the attribute whitelist applied after filtering.
	// Empty means cleaner.DefaultKeepAttrs.
	KeepAttrs []string

	// Validate runs structural checks on each cleaned document.
	Validate bool

	// Cleaner overrides the document cleaning configuration.
	Cleaner *cleaner.Config

	// Rules is the region exclusion rule set. Nil means no filtering.
	Rules *regions.RuleSet
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Product:  "mysql",
		Validate: true,
	}
}

// Option configures an Extractor.
type Option func(*Config)

// WithProduct sets the product key used for region rule lookups.
func WithProduct(product string) Option {
	return func(c *Config) {
		c.Product = product
	}
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithKeepAttrs sets the attribute whitelist.
func WithKeepAttrs(attrs []string) Option {
	return func(c *Config) {
		c.KeepAttrs = attrs
	}
}

// WithValidation toggles post-clean structural checks.
func WithValidation(enabled bool) Option {
	return func(c *Config) {
		c.Validate = enabled
	}
}

// WithCleanerConfig overrides the cleaning configuration.
func WithCleanerConfig(cfg *cleaner.Config) Option {
	return func(c *Config) {
		c.Cleaner = cfg
	}
}

// WithRules sets the region exclusion rule set.
func WithRules(rules *regions.RuleSet) Option {
	return func(c *Config) {
		c.Rules = rules
	}
}
