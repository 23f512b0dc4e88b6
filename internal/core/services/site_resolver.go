package services

import (
	"net/url"
	"strings"

	"model-resolution-router/internal/core/domain"
)

// SiteResolver maps partner URLs to site rules using a static ordered table.
type SiteResolver struct {
	rules []domain.SiteRule
}

func NewSiteResolver(rules []domain.SiteRule) *SiteResolver {
	return &SiteResolver{rules: rules}
}

// Rules returns the configured table in evaluation order.
func (r *SiteResolver) Rules() []domain.SiteRule {
	return r.rules
}

// Resolve returns the first rule whose domain is contained in the normalized
// host of target and whose path prefix (if any) matches.
func (r *SiteResolver) Resolve(target string) (domain.SiteRule, bool) {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return domain.SiteRule{}, false
	}

	host := normalizeHost(u.Hostname())
	for _, rule := range r.rules {
		if !strings.Contains(host, normalizeHost(rule.Domain)) {
			continue
		}
		if rule.PathPrefix != "" && !strings.HasPrefix(u.Path, rule.PathPrefix) {
			continue
		}
		return rule, true
	}
	return domain.SiteRule{}, false
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	return strings.TrimPrefix(host, "www.")
}
