package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"

	"model-resolution-router/internal/core/domain"
	ports "model-resolution-router/internal/core/ports/output"
)

// GCSFetcher reads static assets from a Cloud Storage bucket, under an
// optional object prefix.
type GCSFetcher struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ ports.AssetFetcher = (*GCSFetcher)(nil)

// NewGCSFetcher creates a storage client using application default credentials.
func NewGCSFetcher(ctx context.Context, bucket, prefix string) (*GCSFetcher, error) {
	if bucket == "" {
		return nil, errors.New("asset bucket is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSFetcher{client: client, bucket: bucket, prefix: prefix}, nil
}

// ObjectName returns the object path for page.
func (f *GCSFetcher) ObjectName(page string) (string, error) {
	name, err := cleanName(page)
	if err != nil {
		return "", err
	}
	if f.prefix == "" {
		return name, nil
	}
	return path.Join(f.prefix, name), nil
}

func (f *GCSFetcher) Fetch(ctx context.Context, page string) (*ports.Asset, error) {
	object, err := f.ObjectName(page)
	if err != nil {
		return nil, err
	}

	r, err := f.client.Bucket(f.bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, object)
		}
		return nil, fmt.Errorf("open gs://%s/%s: %w", f.bucket, object, err)
	}
	defer r.Close()

	body, err := io.ReadAll(io.LimitReader(r, maxAssetSize))
	if err != nil {
		return nil, fmt.Errorf("read gs://%s/%s: %w", f.bucket, object, err)
	}

	ct := r.Attrs.ContentType
	if ct == "" {
		ct = ContentTypeFor(object)
	}
	return &ports.Asset{Name: path.Base(object), Body: body, ContentType: ct}, nil
}

// Close releases the underlying client.
func (f *GCSFetcher) Close() error {
	return f.client.Close()
}
