package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// SiteKey identifies a partner site in the configuration store.
type SiteKey string

// ModelCode identifies a product/vehicle configuration inside a partner URL.
type ModelCode string

// AssetRef is an opaque 3D asset reference, meaningful only to the viewer page.
type AssetRef string

// ============================================================================
// Site Rule
// ============================================================================

// SiteRule maps a partner domain (and optional path prefix) to a SiteKey,
// and carries the model-code patterns used on that site.
type SiteRule struct {
	Name       string
	Domain     string
	PathPrefix string
	Key        SiteKey

	// Codes are literal model codes matched by substring, in order.
	Codes []string
	// Patterns are evaluated after Codes; the first non-empty capture group wins.
	Patterns []*regexp.Regexp
}

// NewSiteRule validates and compiles a site rule.
func NewSiteRule(name, domain, pathPrefix, key string, codes, patterns []string) (SiteRule, error) {
	if domain == "" {
		return SiteRule{}, fmt.Errorf("site %q: domain is required", name)
	}
	if key == "" {
		key = domain + pathPrefix
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return SiteRule{}, fmt.Errorf("site %q: compile pattern %q: %w", name, p, err)
		}
		compiled = append(compiled, re)
	}

	return SiteRule{
		Name:       name,
		Domain:     domain,
		PathPrefix: pathPrefix,
		Key:        SiteKey(key),
		Codes:      codes,
		Patterns:   compiled,
	}, nil
}

// ============================================================================
// Site Config
// ============================================================================

// SiteConfig is the per-site document held by the configuration store.
type SiteConfig struct {
	Models  map[ModelCode]AssetRef `json:"models"`
	Default string                 `json:"default"`
}

// ParseSiteConfig decodes a store document. Only the presence of a models
// mapping and a default URL is checked.
func ParseSiteConfig(raw []byte) (*SiteConfig, error) {
	var cfg SiteConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSiteConfig, err)
	}
	if cfg.Models == nil {
		return nil, fmt.Errorf("%w: models mapping is required", ErrInvalidSiteConfig)
	}
	if cfg.Default == "" {
		return nil, fmt.Errorf("%w: default url is required", ErrInvalidSiteConfig)
	}
	return &cfg, nil
}

// Lookup returns the asset stored for code.
func (c *SiteConfig) Lookup(code ModelCode) (AssetRef, bool) {
	if code == "" {
		return "", false
	}
	asset, ok := c.Models[code]
	return asset, ok
}
