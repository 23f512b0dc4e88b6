package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"model-resolution-router/internal/core/domain"
	ports "model-resolution-router/internal/core/ports/output"
)

// ConfigStore is a read-only, map-backed site configuration store.
type ConfigStore struct {
	docs map[string][]byte
}

// NewConfigStore creates a store holding a copy of docs (site key → JSON document).
func NewConfigStore(docs map[string]string) *ConfigStore {
	s := &ConfigStore{docs: make(map[string][]byte, len(docs))}
	for k, v := range docs {
		s.docs[k] = []byte(v)
	}
	return s
}

// LoadConfigStore reads a JSON object of site key → document from path.
func LoadConfigStore(path string) (*ConfigStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var docs map[string]json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode store file %s: %w", path, err)
	}

	s := &ConfigStore{docs: make(map[string][]byte, len(docs))}
	for k, v := range docs {
		s.docs[k] = []byte(v)
	}
	return s, nil
}

var _ ports.ConfigStore = (*ConfigStore)(nil)

func (s *ConfigStore) Get(ctx context.Context, siteKey string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, ok := s.docs[siteKey]
	if !ok {
		return nil, domain.ErrSiteConfigNotFound
	}
	return doc, nil
}

// Len returns the number of stored documents.
func (s *ConfigStore) Len() int {
	return len(s.docs)
}
