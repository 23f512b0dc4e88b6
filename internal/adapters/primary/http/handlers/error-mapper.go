package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"model-resolution-router/internal/core/domain"
)

// mapDomainError writes the failure class of err; wrapped details stay in
// the logs.
func (h *Handler) mapDomainError(c *gin.Context, err error) {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrInvalidTarget):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidTarget.Error()})

	// Not found errors
	case errors.Is(err, domain.ErrSiteUnsupported):
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrSiteUnsupported.Error()})
	case errors.Is(err, domain.ErrConfigMissing):
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrConfigMissing.Error()})
	case errors.Is(err, domain.ErrAssetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrAssetNotFound.Error()})

	// Method errors
	case errors.Is(err, domain.ErrMethodNotAllowed):
		c.Header("Allow", strings.Join(append([]string{http.MethodOptions}, h.methods...), ", "))
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": domain.ErrMethodNotAllowed.Error()})

	// Upstream errors
	case errors.Is(err, domain.ErrUpstreamAssetUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.ErrUpstreamAssetUnavailable.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
