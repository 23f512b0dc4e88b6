package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"model-resolution-router/internal/core/domain"
	"model-resolution-router/internal/core/services"
)

type Handler struct {
	targets *services.TargetExtractor
	router  *services.Router
	builder *services.ResponseBuilder
	mode    domain.ResponseMode
	methods []string
	qrCode  bool
}

func New(
	targets *services.TargetExtractor,
	router *services.Router,
	builder *services.ResponseBuilder,
	mode domain.ResponseMode,
	methods []string,
	qrCode bool,
) *Handler {
	if len(methods) == 0 {
		methods = []string{http.MethodGet}
	}
	return &Handler{
		targets: targets,
		router:  router,
		builder: builder,
		mode:    mode,
		methods: methods,
		qrCode:  qrCode,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// Resolution (method checked in the handler so mismatches get a 405 body)
	r.Any("/", h.Resolve)
	r.Any("/resolve", h.Resolve)

	// Static assets, re-served verbatim
	r.GET("/static/:page", h.ServeAsset)

	// With the fragment convention the marker can end up in the path.
	if h.targets.Convention() == services.ConventionFragment {
		r.NoRoute(h.resolveFragmentPath)
	}
}

func (h *Handler) methodAllowed(method string) bool {
	for _, m := range h.methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
