package services

import (
	"fmt"
	"net/url"
	"strings"

	"model-resolution-router/internal/core/domain"
)

// TargetConvention selects how the partner URL is carried by the request.
type TargetConvention string

const (
	// ConventionQuery reads the partner URL from a query parameter.
	ConventionQuery TargetConvention = "query"
	// ConventionFragment reads the partner URL appended after a "#!" marker.
	ConventionFragment TargetConvention = "fragment"
)

const (
	fragmentMarker        = "#!"
	encodedFragmentMarker = "%23!"
	defaultTargetParam    = "url"
)

// ParseTargetConvention validates a configured convention.
func ParseTargetConvention(s string) (TargetConvention, error) {
	switch c := TargetConvention(strings.ToLower(s)); c {
	case ConventionQuery, ConventionFragment:
		return c, nil
	default:
		return "", fmt.Errorf("unknown target convention %q", s)
	}
}

// TargetExtractor pulls the original partner-site URL out of a request URI.
type TargetExtractor struct {
	convention TargetConvention
	param      string
}

func NewTargetExtractor(convention TargetConvention, param string) *TargetExtractor {
	if param == "" {
		param = defaultTargetParam
	}
	return &TargetExtractor{convention: convention, param: param}
}

// Convention returns the active convention.
func (e *TargetExtractor) Convention() TargetConvention {
	return e.convention
}

// Extract returns the partner URL carried by requestURI, or
// domain.ErrInvalidTarget when it is missing or not an http(s) URL.
func (e *TargetExtractor) Extract(requestURI string) (string, error) {
	var (
		target string
		err    error
	)
	switch e.convention {
	case ConventionFragment:
		target, err = fromFragment(requestURI)
	default:
		target, err = e.fromQuery(requestURI)
	}
	if err != nil {
		return "", err
	}

	target = strings.TrimSpace(target)
	if !hasHTTPScheme(target) {
		return "", domain.ErrInvalidTarget
	}
	return target, nil
}

func (e *TargetExtractor) fromQuery(requestURI string) (string, error) {
	u, err := url.Parse(requestURI)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidTarget, err)
	}
	return u.Query().Get(e.param), nil
}

func fromFragment(requestURI string) (string, error) {
	var rest string
	if i := strings.Index(requestURI, fragmentMarker); i >= 0 {
		rest = requestURI[i+len(fragmentMarker):]
	} else if i := strings.Index(requestURI, encodedFragmentMarker); i >= 0 {
		rest = requestURI[i+len(encodedFragmentMarker):]
	} else {
		return "", domain.ErrInvalidTarget
	}

	// PathUnescape keeps '+' literal, which partner query strings rely on.
	decoded, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidTarget, err)
	}
	return decoded, nil
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
