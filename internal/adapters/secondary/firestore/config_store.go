package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"model-resolution-router/internal/config"
	"model-resolution-router/internal/core/domain"
	ports "model-resolution-router/internal/core/ports/output"
)

const documentField = "document"

// ConfigStore reads site configurations from one Firestore collection. Each
// site is a document whose "document" field holds the JSON configuration,
// either as a string or as a native map.
type ConfigStore struct {
	client     *firestore.Client
	collection string
}

var _ ports.ConfigStore = (*ConfigStore)(nil)

// NewConfigStore creates a Firestore client for cfg.ProjectID.
func NewConfigStore(ctx context.Context, cfg *config.FirestoreConfig) (*ConfigStore, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firestore project id is required")
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &ConfigStore{client: client, collection: cfg.Collection}, nil
}

// DocID maps a site key to a document id; '/' separates path segments in
// Firestore, so it is replaced by "__".
func DocID(siteKey string) string {
	return strings.ReplaceAll(siteKey, "/", "__")
}

func (s *ConfigStore) Get(ctx context.Context, siteKey string) ([]byte, error) {
	snap, err := s.client.Collection(s.collection).Doc(DocID(siteKey)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrSiteConfigNotFound
		}
		return nil, fmt.Errorf("get firestore document %s: %w", DocID(siteKey), err)
	}

	value, err := snap.DataAt(documentField)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSiteConfig, err)
	}

	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case map[string]interface{}:
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("%w: field %q has type %T", domain.ErrInvalidSiteConfig, documentField, value)
	}
}

// Close releases the underlying client.
func (s *ConfigStore) Close() error {
	return s.client.Close()
}
