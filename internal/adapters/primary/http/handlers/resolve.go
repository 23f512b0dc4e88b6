package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"model-resolution-router/internal/adapters/primary/http/middleware"
	"model-resolution-router/internal/core/domain"
	"model-resolution-router/internal/core/services"
)

// Resolve extracts the partner URL, resolves it and renders the decision in
// the configured response mode.
func (h *Handler) Resolve(c *gin.Context) {
	if !h.methodAllowed(c.Request.Method) {
		h.mapDomainError(c, domain.ErrMethodNotAllowed)
		return
	}

	target, err := h.targets.Extract(requestURI(c.Request))
	if err != nil {
		h.mapDomainError(c, err)
		return
	}

	ctx := c.Request.Context()
	result := h.router.Route(ctx, target)
	c.Set(middleware.OutcomeKey, string(result.Outcome))

	resp, err := h.builder.Build(ctx, result, h.mode, h.renderOptions(c))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"outcome":  result.Outcome,
			"site_key": result.SiteKey,
		}).Error("build response failed")
		h.mapDomainError(c, err)
		return
	}

	writeResponse(c, resp)
}

func (h *Handler) resolveFragmentPath(c *gin.Context) {
	uri := requestURI(c.Request)
	if !strings.Contains(uri, "#!") && !strings.Contains(uri, "%23!") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.Resolve(c)
}

func (h *Handler) renderOptions(c *gin.Context) services.RenderOptions {
	opts := services.RenderOptions{
		QRCode: h.qrCode,
		WebXR:  strings.EqualFold(c.Query("view"), "webxr"),
	}
	if v := c.Query("qr"); v != "" {
		if qr, err := strconv.ParseBool(v); err == nil {
			opts.QRCode = qr
		}
	}
	return opts
}

// requestURI returns the raw request target, falling back to the parsed URL
// for requests built in-process.
func requestURI(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.String()
}

func writeResponse(c *gin.Context, resp *domain.Response) {
	if resp.Location != "" {
		c.Redirect(resp.Status, resp.Location)
		return
	}
	c.Data(resp.Status, resp.ContentType, resp.Body)
}
