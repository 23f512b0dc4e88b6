package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"model-resolution-router/internal/core/domain"
	ports "model-resolution-router/internal/core/ports/output"
)

// ResolutionEngine turns a site key and an optional model code into a
// ResolutionResult. Failures degrade to the next broader fallback:
// model → site default → config missing → site unsupported.
type ResolutionEngine struct {
	store   ports.ConfigStore
	timeout time.Duration
}

// NewResolutionEngine creates a new resolution engine. A zero timeout leaves
// the store call bounded only by the caller's context.
func NewResolutionEngine(store ports.ConfigStore, timeout time.Duration) *ResolutionEngine {
	return &ResolutionEngine{store: store, timeout: timeout}
}

// Resolve decides what to serve. Empty siteKey or code mean absent.
func (e *ResolutionEngine) Resolve(ctx context.Context, siteKey domain.SiteKey, code domain.ModelCode) domain.ResolutionResult {
	if siteKey == "" {
		return domain.SiteUnsupported()
	}

	cfg, err := e.fetchConfig(ctx, siteKey)
	if err != nil {
		return domain.ConfigMissing(siteKey, err)
	}

	if asset, ok := cfg.Lookup(code); ok {
		return domain.Found(siteKey, code, asset)
	}
	return domain.ModelUnmatched(siteKey, code, cfg.Default)
}

func (e *ResolutionEngine) fetchConfig(ctx context.Context, siteKey domain.SiteKey) (*domain.SiteConfig, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	raw, err := e.store.Get(ctx, string(siteKey))
	if err != nil {
		if errors.Is(err, domain.ErrSiteConfigNotFound) {
			return nil, domain.ErrSiteConfigNotFound
		}
		if errors.Is(err, domain.ErrInvalidSiteConfig) {
			log.WithError(err).WithField("site_key", siteKey).Warn("site configuration document rejected")
			return nil, err
		}
		log.WithError(err).WithField("site_key", siteKey).Warn("site configuration store lookup failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	cfg, err := domain.ParseSiteConfig(raw)
	if err != nil {
		log.WithError(err).WithField("site_key", siteKey).Warn("site configuration document rejected")
		return nil, err
	}
	return cfg, nil
}
