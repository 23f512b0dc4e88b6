package firestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"model-resolution-router/internal/config"
)

func TestDocID(t *testing.T) {
	assert.Equal(t, "worten.pt__produtos", DocID("worten.pt/produtos"))
	assert.Equal(t, "configurador.audi.pt", DocID("configurador.audi.pt"))
}

func TestNewConfigStore_RequiresProject(t *testing.T) {
	_, err := NewConfigStore(context.Background(), &config.FirestoreConfig{Collection: "site_configs"})
	assert.Error(t, err)
}
