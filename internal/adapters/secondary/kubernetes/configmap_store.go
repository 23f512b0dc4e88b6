package kubernetes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"model-resolution-router/internal/config"
	"model-resolution-router/internal/core/domain"
	ports "model-resolution-router/internal/core/ports/output"
)

var configMapGVR = schema.GroupVersionResource{
	Group:    "",
	Version:  "v1",
	Resource: "configmaps",
}

const defaultNamespace = "default"

type configMapStore struct {
	client    dynamic.Interface
	namespace string
	name      string
}

// NewConfigMapStore creates a site configuration store backed by one
// ConfigMap, reached through the dynamic client.
func NewConfigMapStore(cfg *config.KubernetesConfig) (ports.ConfigStore, error) {
	var restCfg *rest.Config
	var err error

	if cfg.InCluster {
		restCfg, err = rest.InClusterConfig()
	} else if cfg.KubeConfigPath != "" {
		restCfg, err = clientcmd.BuildConfigFromFlags("", cfg.KubeConfigPath)
	} else {
		// Try default kubeconfig location
		home, _ := os.UserHomeDir()
		kubeconfig := filepath.Join(home, ".kube", "config")
		restCfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	client, err := dynamic.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("create dynamic client: %w", err)
	}

	return NewConfigMapStoreWithClient(client, cfg.Namespace, cfg.ConfigMapName), nil
}

// NewConfigMapStoreWithClient wraps an existing dynamic client.
func NewConfigMapStoreWithClient(client dynamic.Interface, namespace, name string) ports.ConfigStore {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &configMapStore{
		client:    client,
		namespace: namespace,
		name:      name,
	}
}

// DataKey maps a site key to a valid ConfigMap data key. ConfigMap keys may
// not contain '/', so it is replaced by "__".
func DataKey(siteKey string) string {
	return strings.ReplaceAll(siteKey, "/", "__")
}

func (c *configMapStore) Get(ctx context.Context, siteKey string) ([]byte, error) {
	obj, err := c.client.Resource(configMapGVR).
		Namespace(c.namespace).
		Get(ctx, c.name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("configmap %s/%s does not exist: %w", c.namespace, c.name, err)
		}
		return nil, fmt.Errorf("get configmap %s/%s: %w", c.namespace, c.name, err)
	}

	data, _, err := unstructured.NestedStringMap(obj.Object, "data")
	if err != nil {
		return nil, fmt.Errorf("read configmap data: %w", err)
	}

	doc, ok := data[DataKey(siteKey)]
	if !ok {
		return nil, domain.ErrSiteConfigNotFound
	}
	return []byte(doc), nil
}
