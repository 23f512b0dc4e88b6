package ports

import "context"

// ConfigStore defines the contract for the external site configuration store.
type ConfigStore interface {
	// Get returns the raw JSON document stored for siteKey.
	// It returns domain.ErrSiteConfigNotFound when no document exists; any
	// other error is treated as a transient backend failure.
	Get(ctx context.Context, siteKey string) ([]byte, error)
}
