package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"model-resolution-router/internal/core/domain"
)

func TestModelCodeExtractor_Extract(t *testing.T) {
	rules := testRules(t)
	audi, worten := rules[0], rules[1]

	tests := []struct {
		name   string
		rule   domain.SiteRule
		target string
		want   domain.ModelCode
	}{
		{name: "audi literal", rule: audi, target: audiTarget, want: "30A"},
		{name: "audi literal order", rule: audi, target: "https://configurador.audi.pt/x/50B/20A/", want: "20A"},
		{name: "audi pattern", rule: audi, target: "https://configurador.audi.pt/cc-pt/A/auv/B45?x=1", want: "B45"},
		{name: "audi pattern trailing slash", rule: audi, target: "https://configurador.audi.pt/cc-pt/A/auv/61B/", want: "61B"},
		{name: "audi none", rule: audi, target: "https://configurador.audi.pt/cc-pt/", want: ""},
		{name: "worten slash id", rule: worten, target: "https://www.worten.pt/produtos/tv/8110317", want: "8110317"},
		{name: "worten dash id", rule: worten, target: "https://www.worten.pt/produtos/tv-samsung-55-8110317?o=1", want: "8110317"},
		{name: "worten short number", rule: worten, target: "https://www.worten.pt/produtos/tv-55", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ModelCodeExtractor{}.Extract(tt.rule, tt.target)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModelCodeExtractor_LiteralsBeforePatterns(t *testing.T) {
	rule, err := domain.NewSiteRule("s", "example.com", "", "", []string{"XYZ"}, []string{`/(\d+)/`})
	assert.NoError(t, err)

	got := ModelCodeExtractor{}.Extract(rule, "https://example.com/123/XYZ")
	assert.Equal(t, domain.ModelCode("XYZ"), got)
}

func TestModelCodeExtractor_PatternWithoutGroup(t *testing.T) {
	rule, err := domain.NewSiteRule("s", "example.com", "", "", nil, []string{`SKU-\d+`})
	assert.NoError(t, err)

	got := ModelCodeExtractor{}.Extract(rule, "https://example.com/p/SKU-42")
	assert.Equal(t, domain.ModelCode("SKU-42"), got)
}
