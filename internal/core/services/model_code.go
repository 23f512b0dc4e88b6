package services

import (
	"strings"

	"model-resolution-router/internal/core/domain"
)

// ModelCodeExtractor finds a model code in a partner URL using the patterns of
// the matched site. It never consults the site configuration.
type ModelCodeExtractor struct{}

// Extract returns the first literal code contained in target, else the first
// non-empty capture group of the first matching pattern. An empty result means
// no specific model was requested.
func (ModelCodeExtractor) Extract(rule domain.SiteRule, target string) domain.ModelCode {
	for _, code := range rule.Codes {
		if code != "" && strings.Contains(target, code) {
			return domain.ModelCode(code)
		}
	}

	for _, re := range rule.Patterns {
		m := re.FindStringSubmatch(target)
		if m == nil {
			continue
		}
		for _, group := range m[1:] {
			if group != "" {
				return domain.ModelCode(group)
			}
		}
		if len(m) == 1 && m[0] != "" {
			return domain.ModelCode(m[0])
		}
	}
	return ""
}
