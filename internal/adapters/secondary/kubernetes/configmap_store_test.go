package kubernetes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	dynamicfake "k8s.io/client-go/dynamic/fake"

	"model-resolution-router/internal/core/domain"
	"model-resolution-router/internal/testutil"
)

func siteConfigMap(namespace, name string, data map[string]interface{}) *unstructured.Unstructured {
	return &unstructured.Unstructured{
		Object: map[string]interface{}{
			"apiVersion": "v1",
			"kind":       "ConfigMap",
			"metadata": map[string]interface{}{
				"namespace": namespace,
				"name":      name,
			},
			"data": data,
		},
	}
}

func TestDataKey(t *testing.T) {
	assert.Equal(t, "worten.pt__produtos", DataKey(testutil.WortenSiteKey))
	assert.Equal(t, "configurador.audi.pt", DataKey(testutil.AudiSiteKey))
}

func TestConfigMapStore_Get(t *testing.T) {
	client := dynamicfake.NewSimpleDynamicClient(runtime.NewScheme(),
		siteConfigMap("router", "site-configs", map[string]interface{}{
			DataKey(testutil.WortenSiteKey): testutil.WortenConfig,
		}),
	)
	store := NewConfigMapStoreWithClient(client, "router", "site-configs")

	doc, err := store.Get(context.Background(), testutil.WortenSiteKey)
	require.NoError(t, err)
	assert.JSONEq(t, testutil.WortenConfig, string(doc))

	_, err = store.Get(context.Background(), testutil.AudiSiteKey)
	assert.ErrorIs(t, err, domain.ErrSiteConfigNotFound)
}

func TestConfigMapStore_MissingConfigMap(t *testing.T) {
	client := dynamicfake.NewSimpleDynamicClient(runtime.NewScheme())
	store := NewConfigMapStoreWithClient(client, "", "site-configs")

	_, err := store.Get(context.Background(), testutil.WortenSiteKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSiteConfigNotFound)
}
