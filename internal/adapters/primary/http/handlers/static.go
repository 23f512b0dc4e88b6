package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"model-resolution-router/internal/core/domain"
)

// ServeAsset re-serves a static viewer asset (page or script) verbatim.
func (h *Handler) ServeAsset(c *gin.Context) {
	page := c.Param("page")

	asset, err := h.builder.Asset(c.Request.Context(), page)
	if err != nil {
		if !errors.Is(err, domain.ErrAssetNotFound) {
			log.WithError(err).WithField("page", page).Error("fetch static asset failed")
			err = fmt.Errorf("%w: %v", domain.ErrUpstreamAssetUnavailable, err)
		}
		h.mapDomainError(c, err)
		return
	}

	contentType := asset.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, asset.Body)
}
