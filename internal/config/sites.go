package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"model-resolution-router/internal/core/domain"
)

// SitesFile is the HCL schema of a site table file:
//
//	site "worten" {
//	  domain      = "worten.pt"
//	  path_prefix = "/produtos"
//	  patterns    = ["[/-](\\d{5,})(?:[/?#]|$)"]
//	}
type SitesFile struct {
	Sites []SiteBlock `hcl:"site,block"`
}

type SiteBlock struct {
	Name       string   `hcl:"name,label"`
	Domain     string   `hcl:"domain"`
	PathPrefix string   `hcl:"path_prefix,optional"`
	Key        string   `hcl:"key,optional"`
	Codes      []string `hcl:"codes,optional"`
	Patterns   []string `hcl:"patterns,optional"`
}

// DefaultSites is the built-in site table used when no sites file is set.
var DefaultSites = []SiteBlock{
	{
		Name:     "audi",
		Domain:   "configurador.audi.pt",
		Codes:    []string{"20A", "30A", "40A", "50B"},
		Patterns: []string{`/([A-B]?\d{2}[A-B]?)(?:/|\?)`},
	},
	{
		Name:       "worten",
		Domain:     "worten.pt",
		PathPrefix: "/produtos",
		Patterns:   []string{`[/-](\d{5,})(?:[/?#]|$)`},
	},
}

// LoadSites returns the compiled site table, from path when set or from
// DefaultSites otherwise. Table order is evaluation order.
func LoadSites(path string) ([]domain.SiteRule, error) {
	blocks := DefaultSites
	if path != "" {
		file, err := DecodeSitesFile(path)
		if err != nil {
			return nil, err
		}
		blocks = file.Sites
	}
	return CompileSites(blocks)
}

// DecodeSitesFile parses and decodes a single HCL site table file.
func DecodeSitesFile(path string) (*SitesFile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}

	var sites SitesFile
	diags = gohcl.DecodeBody(file.Body, nil, &sites)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %s", path, diags.Error())
	}
	return &sites, nil
}

// CompileSites validates blocks and compiles their patterns.
func CompileSites(blocks []SiteBlock) ([]domain.SiteRule, error) {
	rules := make([]domain.SiteRule, 0, len(blocks))
	seen := make(map[domain.SiteKey]string, len(blocks))
	for _, b := range blocks {
		rule, err := domain.NewSiteRule(b.Name, b.Domain, b.PathPrefix, b.Key, b.Codes, b.Patterns)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[rule.Key]; dup {
			return nil, fmt.Errorf("site %q: key %q already used by site %q", b.Name, rule.Key, other)
		}
		seen[rule.Key] = b.Name
		rules = append(rules, rule)
	}
	return rules, nil
}
