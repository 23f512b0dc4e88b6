// Package handler is the serverless edge-function entrypoint. The platform
// invokes Handler once per request; the router is built on cold start.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"model-resolution-router/internal/app"
	"model-resolution-router/internal/config"
)

var (
	engine  http.Handler
	initErr error
)

func init() {
	// Background work is not possible between invocations, so nothing here
	// may start goroutines.
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	app.InitLogger(cfg)

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		initErr = err
		return
	}
	engine = a.Engine
}

// Handler routes every request through the model resolution router.
func Handler(w http.ResponseWriter, r *http.Request) {
	if initErr != nil {
		log.WithError(initErr).Error("router initialization failed")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	engine.ServeHTTP(w, r)
}
