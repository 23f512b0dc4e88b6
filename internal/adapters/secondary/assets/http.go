package assets

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"model-resolution-router/internal/core/domain"
	ports "model-resolution-router/internal/core/ports/output"
)

// maxAssetSize caps a fetched page or script.
const maxAssetSize = 8 << 20

// HTTPFetcher fetches static assets with GET <base>/<page>.
type HTTPFetcher struct {
	httpClient *http.Client
	baseURL    string
}

var _ ports.AssetFetcher = (*HTTPFetcher)(nil)

func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Fetch retrieves page from the upstream asset host.
func (c *HTTPFetcher) Fetch(ctx context.Context, page string) (*ports.Asset, error) {
	name, err := cleanName(page)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/%s", c.baseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create upstream request: %w", err)
	}

	log.WithFields(log.Fields{
		"method": http.MethodGet,
		"url":    url,
	}).Debug("fetching asset from upstream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, name)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream status %d for %s", resp.StatusCode, name)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = ContentTypeFor(name)
	}
	return &ports.Asset{Name: name, Body: body, ContentType: ct}, nil
}

// ContentTypeFor guesses a content type from the asset name's extension.
func ContentTypeFor(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func cleanName(page string) (string, error) {
	name := strings.TrimLeft(page, "/")
	if name == "" || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", domain.ErrAssetNotFound, page)
	}
	return name, nil
}
