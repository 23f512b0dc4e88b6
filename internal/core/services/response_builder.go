package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"model-resolution-router/internal/core/domain"
	ports "model-resolution-router/internal/core/ports/output"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// ViewerConfig locates the viewer pages served by the static asset host.
type ViewerConfig struct {
	BaseURL     string
	ViewerPage  string
	WebXRPage   string
	DefaultPage string
}

// RenderOptions carries per-request presentation switches.
type RenderOptions struct {
	// WebXR selects the WebXR page in template mode.
	WebXR bool
	// QRCode adds a qrCodeUrl to JSON responses.
	QRCode bool
}

// ModelLinkResponse is the JSON-mode body.
type ModelLinkResponse struct {
	ModelLink string `json:"modelLink"`
	QRCodeURL string `json:"qrCodeUrl,omitempty"`
}

// ErrorResponse identifies the failure class of an unresolved request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// ResponseBuilder renders a ResolutionResult as a redirect, an HTML template
// with injected parameters, or a JSON descriptor. All three presenters share
// the same outcome-to-link mapping.
type ResponseBuilder struct {
	viewer  ViewerConfig
	assets  ports.AssetFetcher
	qr      QRCodeBuilder
	timeout time.Duration
}

func NewResponseBuilder(viewer ViewerConfig, assets ports.AssetFetcher, qr QRCodeBuilder, timeout time.Duration) *ResponseBuilder {
	return &ResponseBuilder{
		viewer:  viewer,
		assets:  assets,
		qr:      qr,
		timeout: timeout,
	}
}

// ViewerURL returns <viewer-base>/<viewer-page>?modelCode=<code>&file=<asset>.
func (b *ResponseBuilder) ViewerURL(code domain.ModelCode, asset domain.AssetRef) string {
	return joinURL(b.viewer.BaseURL, b.viewer.ViewerPage) +
		"?modelCode=" + url.QueryEscape(string(code)) +
		"&file=" + url.QueryEscape(string(asset))
}

// link maps an outcome to the URL it should lead to. ok is false for
// SiteUnsupported and ConfigMissing.
func (b *ResponseBuilder) link(result domain.ResolutionResult) (string, bool) {
	switch result.Outcome {
	case domain.OutcomeFound:
		return b.ViewerURL(result.ModelCode, result.AssetRef), true
	case domain.OutcomeModelUnmatched:
		return result.DefaultURL, true
	default:
		return "", false
	}
}

// Build renders result in the given mode.
func (b *ResponseBuilder) Build(ctx context.Context, result domain.ResolutionResult, mode domain.ResponseMode, opts RenderOptions) (*domain.Response, error) {
	switch mode {
	case domain.ModeRedirect:
		return b.renderRedirect(result), nil
	case domain.ModeJSON:
		return b.renderJSON(result, opts)
	case domain.ModeTemplate:
		return b.renderTemplate(ctx, result, opts)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownResponseMode, mode)
	}
}

func (b *ResponseBuilder) renderRedirect(result domain.ResolutionResult) *domain.Response {
	target, ok := b.link(result)
	if !ok {
		return &domain.Response{
			Status:      http.StatusNotFound,
			ContentType: contentTypeText,
			Body:        []byte(unresolvedReason(result)),
		}
	}
	return &domain.Response{
		Status:   http.StatusFound,
		Location: target,
	}
}

func (b *ResponseBuilder) renderJSON(result domain.ResolutionResult, opts RenderOptions) (*domain.Response, error) {
	target, ok := b.link(result)
	if !ok {
		body, err := encodeJSON(ErrorResponse{
			Error:  result.Err().Error(),
			Reason: unresolvedReason(result),
		})
		if err != nil {
			return nil, err
		}
		return &domain.Response{Status: http.StatusNotFound, ContentType: contentTypeJSON, Body: body}, nil
	}

	resp := ModelLinkResponse{ModelLink: target}
	if opts.QRCode {
		resp.QRCodeURL = b.qr.URL(target)
	}
	body, err := encodeJSON(resp)
	if err != nil {
		return nil, err
	}
	return &domain.Response{Status: http.StatusOK, ContentType: contentTypeJSON, Body: body}, nil
}

func (b *ResponseBuilder) renderTemplate(ctx context.Context, result domain.ResolutionResult, opts RenderOptions) (*domain.Response, error) {
	params, ok := templateParams(result)
	if !ok {
		page, err := b.fetch(ctx, b.viewer.DefaultPage)
		if err != nil {
			return nil, err
		}
		return &domain.Response{Status: http.StatusOK, ContentType: htmlContentType(page), Body: page.Body}, nil
	}

	name := b.viewer.ViewerPage
	if opts.WebXR {
		name = b.viewer.WebXRPage
	}
	page, err := b.fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	body, err := injectParams(page.Body, params)
	if err != nil {
		return nil, err
	}
	return &domain.Response{Status: http.StatusOK, ContentType: htmlContentType(page), Body: body}, nil
}

// Asset fetches a static asset by name for verbatim re-serving.
func (b *ResponseBuilder) Asset(ctx context.Context, name string) (*ports.Asset, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()
	return b.assets.Fetch(ctx, name)
}

func (b *ResponseBuilder) fetch(ctx context.Context, name string) (*ports.Asset, error) {
	page, err := b.Asset(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUpstreamAssetUnavailable, name, err)
	}
	return page, nil
}

func (b *ResponseBuilder) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout > 0 {
		return context.WithTimeout(ctx, b.timeout)
	}
	return context.WithCancel(ctx)
}

func templateParams(result domain.ResolutionResult) (map[string]string, bool) {
	switch result.Outcome {
	case domain.OutcomeFound:
		return map[string]string{
			"modelCode": string(result.ModelCode),
			"file":      string(result.AssetRef),
		}, true
	case domain.OutcomeModelUnmatched:
		params := map[string]string{"default": result.DefaultURL}
		if result.ModelCode != "" {
			params["modelCode"] = string(result.ModelCode)
		}
		return params, true
	default:
		return nil, false
	}
}

const paramsScript = `<script>
window.modelParams = %s;
(function (p) {
  var u = new URL(window.location.href);
  Object.keys(p).forEach(function (k) { u.searchParams.set(k, p[k]); });
  window.history.replaceState(null, "", u.toString());
})(window.modelParams);
</script>
`

// injectParams places the parameter script immediately before the last
// closing body tag, or appends it when the page has none.
func injectParams(page []byte, params map[string]string) ([]byte, error) {
	// json.Marshal escapes <, > and &, so the values cannot close the script.
	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode template params: %w", err)
	}
	script := fmt.Sprintf(paramsScript, data)

	at := lastIndexFold(page, "</body>")
	if at < 0 {
		at = len(page)
	}

	var buf bytes.Buffer
	buf.Grow(len(page) + len(script))
	buf.Write(page[:at])
	buf.WriteString(script)
	buf.Write(page[at:])
	return buf.Bytes(), nil
}

// lastIndexFold is bytes.LastIndex with ASCII case folding.
func lastIndexFold(s []byte, sub string) int {
	for i := len(s) - len(sub); i >= 0; i-- {
		if strings.EqualFold(string(s[i:i+len(sub)]), sub) {
			return i
		}
	}
	return -1
}

func unresolvedReason(result domain.ResolutionResult) string {
	switch result.Outcome {
	case domain.OutcomeSiteUnsupported:
		return "no supported site matches the target url"
	case domain.OutcomeConfigMissing:
		return fmt.Sprintf("no usable configuration for site %q", result.SiteKey)
	default:
		return ""
	}
}

func htmlContentType(asset *ports.Asset) string {
	if asset.ContentType != "" {
		return asset.ContentType
	}
	return contentTypeHTML
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func joinURL(base, page string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(page, "/")
}
