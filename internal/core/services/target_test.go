package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-resolution-router/internal/core/domain"
)

const audiTarget = "https://configurador.audi.pt/cc-pt/pt_PT_AUDI23/A/auv/30A?trim=advanced"

// ============================================================================
// Query Convention
// ============================================================================

func TestTargetExtractor_Query(t *testing.T) {
	e := NewTargetExtractor(ConventionQuery, "")

	target, err := e.Extract("/?url=" + url.QueryEscape(audiTarget))
	require.NoError(t, err)
	assert.Equal(t, audiTarget, target)
}

func TestTargetExtractor_QueryCustomParam(t *testing.T) {
	e := NewTargetExtractor(ConventionQuery, "page")

	target, err := e.Extract("/resolve?page=" + url.QueryEscape("https://www.worten.pt/produtos/1"))
	require.NoError(t, err)
	assert.Equal(t, "https://www.worten.pt/produtos/1", target)
}

func TestTargetExtractor_QueryInvalid(t *testing.T) {
	e := NewTargetExtractor(ConventionQuery, "url")

	tests := []struct {
		name string
		uri  string
	}{
		{name: "missing", uri: "/"},
		{name: "empty", uri: "/?url="},
		{name: "relative", uri: "/?url=" + url.QueryEscape("/produtos/1")},
		{name: "other scheme", uri: "/?url=" + url.QueryEscape("ftp://worten.pt/produtos/1")},
		{name: "wrong param", uri: "/?target=" + url.QueryEscape(audiTarget)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(tt.uri)
			assert.ErrorIs(t, err, domain.ErrInvalidTarget)
		})
	}
}

func TestTargetExtractor_QueryIgnoresFragment(t *testing.T) {
	e := NewTargetExtractor(ConventionQuery, "url")

	_, err := e.Extract("/#!" + audiTarget)
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)
}

func TestTargetExtractor_SchemeCaseInsensitive(t *testing.T) {
	e := NewTargetExtractor(ConventionQuery, "url")

	target, err := e.Extract("/?url=" + url.QueryEscape("HTTPS://worten.pt/produtos/1"))
	require.NoError(t, err)
	assert.Equal(t, "HTTPS://worten.pt/produtos/1", target)
}

// ============================================================================
// Fragment Convention
// ============================================================================

func TestTargetExtractor_Fragment(t *testing.T) {
	e := NewTargetExtractor(ConventionFragment, "")

	target, err := e.Extract("/#!" + audiTarget)
	require.NoError(t, err)
	assert.Equal(t, audiTarget, target)
}

func TestTargetExtractor_FragmentPercentEncoded(t *testing.T) {
	e := NewTargetExtractor(ConventionFragment, "")

	target, err := e.Extract("/#!" + url.QueryEscape(audiTarget))
	require.NoError(t, err)
	assert.Equal(t, audiTarget, target)
}

func TestTargetExtractor_FragmentEncodedMarker(t *testing.T) {
	e := NewTargetExtractor(ConventionFragment, "")

	target, err := e.Extract("/%23!" + url.QueryEscape(audiTarget))
	require.NoError(t, err)
	assert.Equal(t, audiTarget, target)
}

func TestTargetExtractor_FragmentKeepsPlus(t *testing.T) {
	e := NewTargetExtractor(ConventionFragment, "")

	target, err := e.Extract("/#!https://worten.pt/produtos/tv+55/8110317")
	require.NoError(t, err)
	assert.Equal(t, "https://worten.pt/produtos/tv+55/8110317", target)
}

func TestTargetExtractor_FragmentInvalid(t *testing.T) {
	e := NewTargetExtractor(ConventionFragment, "")

	tests := []struct {
		name string
		uri  string
	}{
		{name: "no marker", uri: "/?url=" + url.QueryEscape(audiTarget)},
		{name: "plain hash", uri: "/#" + audiTarget},
		{name: "empty after marker", uri: "/#!"},
		{name: "bad escape", uri: "/#!https://worten.pt/%zz"},
		{name: "not http", uri: "/#!mailto:someone@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(tt.uri)
			assert.ErrorIs(t, err, domain.ErrInvalidTarget)
		})
	}
}

func TestParseTargetConvention(t *testing.T) {
	c, err := ParseTargetConvention("Fragment")
	require.NoError(t, err)
	assert.Equal(t, ConventionFragment, c)

	c, err = ParseTargetConvention("query")
	require.NoError(t, err)
	assert.Equal(t, ConventionQuery, c)

	_, err = ParseTargetConvention("header")
	assert.Error(t, err)
}
