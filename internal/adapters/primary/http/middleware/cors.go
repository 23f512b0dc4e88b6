package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	headerAllowOrigin  = "Access-Control-Allow-Origin"
	headerAllowMethods = "Access-Control-Allow-Methods"
	headerAllowHeaders = "Access-Control-Allow-Headers"
)

// CORS sets the allow-origin header on every response and answers OPTIONS
// preflights on any path with 204 and no body.
func CORS(methods []string) gin.HandlerFunc {
	allowed := make([]string, 0, len(methods)+1)
	allowed = append(allowed, methods...)
	allowed = append(allowed, http.MethodOptions)
	allowMethods := strings.Join(allowed, ", ")

	return func(c *gin.Context) {
		c.Header(headerAllowOrigin, "*")

		if c.Request.Method == http.MethodOptions {
			c.Header(headerAllowMethods, allowMethods)
			c.Header(headerAllowHeaders, "Content-Type")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
