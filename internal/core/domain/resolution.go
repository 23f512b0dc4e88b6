package domain

// Outcome tags a ResolutionResult.
type Outcome string

const (
	OutcomeFound           Outcome = "found"
	OutcomeSiteUnsupported Outcome = "site_unsupported"
	OutcomeConfigMissing   Outcome = "config_missing"
	OutcomeModelUnmatched  Outcome = "model_unmatched"
)

// ResolutionResult is the decision handed from the resolution engine to the
// response builder.
type ResolutionResult struct {
	Outcome    Outcome
	SiteKey    SiteKey
	ModelCode  ModelCode
	AssetRef   AssetRef
	DefaultURL string

	// Cause records why a ConfigMissing result was produced (absent document,
	// invalid document or store failure). It never changes the outcome.
	Cause error
}

// Found builds a Found result.
func Found(site SiteKey, code ModelCode, asset AssetRef) ResolutionResult {
	return ResolutionResult{Outcome: OutcomeFound, SiteKey: site, ModelCode: code, AssetRef: asset}
}

// SiteUnsupported builds a SiteUnsupported result.
func SiteUnsupported() ResolutionResult {
	return ResolutionResult{Outcome: OutcomeSiteUnsupported}
}

// ConfigMissing builds a ConfigMissing result for site.
func ConfigMissing(site SiteKey, cause error) ResolutionResult {
	return ResolutionResult{Outcome: OutcomeConfigMissing, SiteKey: site, Cause: cause}
}

// ModelUnmatched builds a ModelUnmatched result carrying the site default.
func ModelUnmatched(site SiteKey, code ModelCode, defaultURL string) ResolutionResult {
	return ResolutionResult{Outcome: OutcomeModelUnmatched, SiteKey: site, ModelCode: code, DefaultURL: defaultURL}
}

// Err returns the error class of an unresolved result, or nil.
func (r ResolutionResult) Err() error {
	switch r.Outcome {
	case OutcomeSiteUnsupported:
		return ErrSiteUnsupported
	case OutcomeConfigMissing:
		return ErrConfigMissing
	default:
		return nil
	}
}

// ============================================================================
// Response
// ============================================================================

// ResponseMode selects how a ResolutionResult is rendered.
type ResponseMode string

const (
	ModeRedirect ResponseMode = "redirect"
	ModeTemplate ResponseMode = "template"
	ModeJSON     ResponseMode = "json"
)

// ParseResponseMode validates a configured mode.
func ParseResponseMode(s string) (ResponseMode, error) {
	switch m := ResponseMode(s); m {
	case ModeRedirect, ModeTemplate, ModeJSON:
		return m, nil
	default:
		return "", ErrUnknownResponseMode
	}
}

// Response is a rendered, transport-neutral HTTP answer.
type Response struct {
	Status      int
	ContentType string
	Location    string
	Body        []byte
}
