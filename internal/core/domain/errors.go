package domain

import "errors"

// ============================================================================
// Request Errors
// ============================================================================

var (
	ErrInvalidTarget       = errors.New("target url is missing or is not an absolute http(s) url")
	ErrMethodNotAllowed    = errors.New("method not allowed")
	ErrUnknownResponseMode = errors.New("unknown response mode")
)

// ============================================================================
// Resolution Errors
// ============================================================================

var (
	ErrSiteUnsupported = errors.New("site is not supported")
	ErrConfigMissing   = errors.New("site configuration is missing")
)

// ============================================================================
// Collaborator Errors
// ============================================================================

// Store errors
var (
	ErrSiteConfigNotFound = errors.New("site configuration not found")
	ErrStoreUnavailable   = errors.New("site configuration store unavailable")
	ErrInvalidSiteConfig  = errors.New("invalid site configuration document")
)

// Asset errors
var (
	ErrAssetNotFound            = errors.New("asset not found")
	ErrUpstreamAssetUnavailable = errors.New("upstream asset unavailable")
)
