package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"model-resolution-router/internal/core/domain"
)

// Router composes site resolution, model-code extraction and the resolution
// engine into a single (target URL → decision) call.
type Router struct {
	sites  *SiteResolver
	codes  ModelCodeExtractor
	engine *ResolutionEngine
}

func NewRouter(sites *SiteResolver, engine *ResolutionEngine) *Router {
	return &Router{sites: sites, engine: engine}
}

// Route resolves the partner URL target.
func (r *Router) Route(ctx context.Context, target string) domain.ResolutionResult {
	rule, ok := r.sites.Resolve(target)
	if !ok {
		return r.engine.Resolve(ctx, "", "")
	}

	code := r.codes.Extract(rule, target)
	result := r.engine.Resolve(ctx, rule.Key, code)

	log.WithFields(log.Fields{
		"site":       rule.Name,
		"site_key":   rule.Key,
		"model_code": code,
		"outcome":    result.Outcome,
	}).Debug("target resolved")

	return result
}
