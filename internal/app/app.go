package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"model-resolution-router/internal/adapters/primary/http/handlers"
	"model-resolution-router/internal/adapters/primary/http/middleware"
	"model-resolution-router/internal/adapters/secondary/assets"
	"model-resolution-router/internal/adapters/secondary/firestore"
	"model-resolution-router/internal/adapters/secondary/kubernetes"
	"model-resolution-router/internal/adapters/secondary/memory"
	"model-resolution-router/internal/adapters/secondary/postgres"
	"model-resolution-router/internal/adapters/secondary/sqlite"
	"model-resolution-router/internal/config"
	"model-resolution-router/internal/core/domain"
	ports "model-resolution-router/internal/core/ports/output"
	"model-resolution-router/internal/core/services"
)

// App is a fully wired router: the HTTP engine plus the resources to release
// on shutdown.
type App struct {
	Engine  *gin.Engine
	closers []func() error
}

// New wires the configured store and asset backends into an HTTP engine.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	store, err := a.newConfigStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	fetcher, err := a.newAssetFetcher(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	engine, err := NewEngine(cfg, store, fetcher)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Engine = engine
	return a, nil
}

// Close releases store and asset clients.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewEngine builds the gin engine over the given collaborators.
func NewEngine(cfg *config.Config, store ports.ConfigStore, fetcher ports.AssetFetcher) (*gin.Engine, error) {
	convention, err := services.ParseTargetConvention(cfg.Router.TargetConvention)
	if err != nil {
		return nil, err
	}
	mode, err := domain.ParseResponseMode(cfg.Router.ResponseMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, cfg.Router.ResponseMode)
	}
	rules, err := config.LoadSites(cfg.Router.SitesFile)
	if err != nil {
		return nil, fmt.Errorf("load sites: %w", err)
	}

	targets := services.NewTargetExtractor(convention, cfg.Router.TargetParam)
	resolver := services.NewResolutionEngine(store, cfg.Store.Timeout)
	router := services.NewRouter(services.NewSiteResolver(rules), resolver)
	builder := services.NewResponseBuilder(
		services.ViewerConfig{
			BaseURL:     cfg.Viewer.BaseURL,
			ViewerPage:  cfg.Viewer.ViewerPage,
			WebXRPage:   cfg.Viewer.WebXRPage,
			DefaultPage: cfg.Viewer.DefaultPage,
		},
		fetcher,
		services.NewQRCodeBuilder(cfg.QRCode.BaseURL, cfg.QRCode.Size),
		cfg.Assets.Timeout,
	)

	h := handlers.New(targets, router, builder, mode, cfg.Router.Methods, cfg.QRCode.Enabled)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(), middleware.CORS(cfg.Router.Methods), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	h.RegisterRoutes(r)

	log.WithFields(log.Fields{
		"convention": convention,
		"mode":       mode,
		"sites":      len(rules),
		"methods":    cfg.Router.Methods,
	}).Info("router configured")

	return r, nil
}

func (a *App) newConfigStore(ctx context.Context, cfg *config.Config) (ports.ConfigStore, error) {
	switch cfg.Store.Backend {
	case "memory":
		if cfg.Store.File == "" {
			log.Warn("STORE_FILE not set, site configuration store is empty")
			return memory.NewConfigStore(nil), nil
		}
		return memory.LoadConfigStore(cfg.Store.File)

	case "postgres":
		pool, err := postgres.NewPool(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		if err := postgres.Migrate(ctx, pool); err != nil {
			return nil, err
		}
		log.Info("database connection established")
		return postgres.NewSiteConfigRepository(pool), nil

	case "sqlite":
		store, err := sqlite.New(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite storage: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil

	case "kubernetes":
		store, err := kubernetes.NewConfigMapStore(&cfg.Kubernetes)
		if err != nil {
			return nil, err
		}
		log.Info("kubernetes configmap store initialized")
		return store, nil

	case "firestore":
		store, err := firestore.NewConfigStore(ctx, &cfg.Firestore)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func (a *App) newAssetFetcher(ctx context.Context, cfg *config.Config) (ports.AssetFetcher, error) {
	switch cfg.Assets.Backend {
	case "http":
		return assets.NewHTTPFetcher(cfg.Assets.BaseURL, cfg.Assets.Timeout), nil

	case "gcs":
		fetcher, err := assets.NewGCSFetcher(ctx, cfg.Assets.Bucket, cfg.Assets.Prefix)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, fetcher.Close)
		return fetcher, nil

	default:
		return nil, fmt.Errorf("unknown asset backend %q", cfg.Assets.Backend)
	}
}

// InitLogger applies the configured level and format to the global logger.
func InitLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
