package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Router     RouterConfig
	Viewer     ViewerConfig
	Assets     AssetConfig
	QRCode     QRCodeConfig
	Store      StoreConfig
	Database   DatabaseConfig
	SQLite     SQLiteConfig
	Kubernetes KubernetesConfig
	Firestore  FirestoreConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type RouterConfig struct {
	TargetConvention string
	TargetParam      string
	ResponseMode     string
	Methods          []string
	SitesFile        string
}

type ViewerConfig struct {
	BaseURL     string
	ViewerPage  string
	WebXRPage   string
	DefaultPage string
}

type AssetConfig struct {
	Backend string // http | gcs
	BaseURL string
	Bucket  string
	Prefix  string
	Timeout time.Duration
}

type QRCodeConfig struct {
	Enabled bool
	BaseURL string
	Size    string
}

type StoreConfig struct {
	Backend string // memory | postgres | sqlite | kubernetes | firestore
	File    string
	Timeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type SQLiteConfig struct {
	Path string
}

type KubernetesConfig struct {
	InCluster      bool
	KubeConfigPath string
	Namespace      string
	ConfigMapName  string
}

type FirestoreConfig struct {
	ProjectID  string
	Collection string
}

type LoggerConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)

	v.SetDefault("ROUTER_TARGET_CONVENTION", "query")
	v.SetDefault("ROUTER_TARGET_PARAM", "url")
	v.SetDefault("ROUTER_RESPONSE_MODE", "json")
	v.SetDefault("ROUTER_METHODS", "GET,POST")
	v.SetDefault("SITES_FILE", "")

	v.SetDefault("VIEWER_BASE_URL", "https://3dmodels-7c1.pages.dev")
	v.SetDefault("VIEWER_PAGE", "viewer.html")
	v.SetDefault("WEBXR_PAGE", "webxr.html")
	v.SetDefault("DEFAULT_PAGE", "default.html")

	v.SetDefault("ASSET_BACKEND", "http")
	v.SetDefault("ASSET_BASE_URL", "https://3dmodels-7c1.pages.dev")
	v.SetDefault("ASSET_BUCKET", "")
	v.SetDefault("ASSET_PREFIX", "")
	v.SetDefault("ASSET_TIMEOUT", "10s")

	v.SetDefault("QR_ENABLED", false)
	v.SetDefault("QR_BASE_URL", "https://api.qrserver.com/v1/create-qr-code/")
	v.SetDefault("QR_SIZE", "150x150")

	v.SetDefault("STORE_BACKEND", "memory")
	v.SetDefault("STORE_FILE", "")
	v.SetDefault("STORE_TIMEOUT", "5s")

	v.SetDefault("DATABASE_URL", "postgres://localhost:5432/model_router?sslmode=disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	v.SetDefault("SQLITE_PATH", "sites.db")

	v.SetDefault("KUBERNETES_IN_CLUSTER", false)
	v.SetDefault("KUBERNETES_KUBECONFIG", "")
	v.SetDefault("KUBERNETES_NAMESPACE", "default")
	v.SetDefault("KUBERNETES_CONFIGMAP", "site-configs")

	v.SetDefault("FIRESTORE_PROJECT_ID", "")
	v.SetDefault("FIRESTORE_COLLECTION", "site_configs")

	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Router: RouterConfig{
			TargetConvention: v.GetString("ROUTER_TARGET_CONVENTION"),
			TargetParam:      v.GetString("ROUTER_TARGET_PARAM"),
			ResponseMode:     v.GetString("ROUTER_RESPONSE_MODE"),
			Methods:          parseMethods(v.GetString("ROUTER_METHODS")),
			SitesFile:        v.GetString("SITES_FILE"),
		},
		Viewer: ViewerConfig{
			BaseURL:     v.GetString("VIEWER_BASE_URL"),
			ViewerPage:  v.GetString("VIEWER_PAGE"),
			WebXRPage:   v.GetString("WEBXR_PAGE"),
			DefaultPage: v.GetString("DEFAULT_PAGE"),
		},
		Assets: AssetConfig{
			Backend: v.GetString("ASSET_BACKEND"),
			BaseURL: v.GetString("ASSET_BASE_URL"),
			Bucket:  v.GetString("ASSET_BUCKET"),
			Prefix:  v.GetString("ASSET_PREFIX"),
			Timeout: duration(v, "ASSET_TIMEOUT", 10*time.Second),
		},
		QRCode: QRCodeConfig{
			Enabled: v.GetBool("QR_ENABLED"),
			BaseURL: v.GetString("QR_BASE_URL"),
			Size:    v.GetString("QR_SIZE"),
		},
		Store: StoreConfig{
			Backend: v.GetString("STORE_BACKEND"),
			File:    v.GetString("STORE_FILE"),
			Timeout: duration(v, "STORE_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: duration(v, "DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("SQLITE_PATH"),
		},
		Kubernetes: KubernetesConfig{
			InCluster:      v.GetBool("KUBERNETES_IN_CLUSTER"),
			KubeConfigPath: v.GetString("KUBERNETES_KUBECONFIG"),
			Namespace:      v.GetString("KUBERNETES_NAMESPACE"),
			ConfigMapName:  v.GetString("KUBERNETES_CONFIGMAP"),
		},
		Firestore: FirestoreConfig{
			ProjectID:  v.GetString("FIRESTORE_PROJECT_ID"),
			Collection: v.GetString("FIRESTORE_COLLECTION"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}

func duration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}

func parseMethods(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
