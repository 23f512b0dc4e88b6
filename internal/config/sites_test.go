package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-resolution-router/internal/core/domain"
)

func writeSitesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sites.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSites_Defaults(t *testing.T) {
	rules, err := LoadSites("")
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "audi", rules[0].Name)
	assert.Equal(t, domain.SiteKey("configurador.audi.pt"), rules[0].Key)
	assert.Equal(t, []string{"20A", "30A", "40A", "50B"}, rules[0].Codes)

	assert.Equal(t, "worten", rules[1].Name)
	assert.Equal(t, domain.SiteKey("worten.pt/produtos"), rules[1].Key)
	require.Len(t, rules[1].Patterns, 1)
	assert.Equal(t, []string{"/8110317", "8110317"},
		rules[1].Patterns[0].FindStringSubmatch("https://www.worten.pt/produtos/tv/8110317"))
}

func TestLoadSites_FromHCL(t *testing.T) {
	path := writeSitesFile(t, `
site "shop" {
  domain      = "shop.example"
  path_prefix = "/p"
  key         = "shop"
  codes       = ["X1"]
  patterns    = ["/sku-(\\d+)"]
}

site "other" {
  domain = "other.example"
}
`)

	rules, err := LoadSites(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "shop", rules[0].Name)
	assert.Equal(t, domain.SiteKey("shop"), rules[0].Key)
	assert.Equal(t, "/p", rules[0].PathPrefix)
	assert.Equal(t, []string{"X1"}, rules[0].Codes)
	assert.Equal(t, `/sku-(\d+)`, rules[0].Patterns[0].String())

	assert.Equal(t, domain.SiteKey("other.example"), rules[1].Key)
	assert.Empty(t, rules[1].Patterns)
}

func TestLoadSites_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "syntax error",
			content: `site "a" {`,
		},
		{
			name:    "missing domain",
			content: `site "a" {}`,
		},
		{
			name: "invalid pattern",
			content: `
site "a" {
  domain   = "a.example"
  patterns = ["("]
}
`,
		},
		{
			name: "duplicate key",
			content: `
site "a" { domain = "a.example" }
site "b" {
  domain = "b.example"
  key    = "a.example"
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSites(writeSitesFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadSites_MissingFile(t *testing.T) {
	_, err := LoadSites(filepath.Join(t.TempDir(), "absent.hcl"))
	assert.Error(t, err)
}
