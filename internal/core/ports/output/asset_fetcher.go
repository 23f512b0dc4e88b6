package ports

import "context"

// Asset is a static page or script fetched by reference.
type Asset struct {
	Name        string
	Body        []byte
	ContentType string
}

// AssetFetcher defines the contract for fetching static viewer assets
// (viewer.html, webxr.html, default.html, webxr.js).
type AssetFetcher interface {
	// Fetch returns the named asset. It returns domain.ErrAssetNotFound when
	// the upstream has no such asset.
	Fetch(ctx context.Context, page string) (*Asset, error)
}
