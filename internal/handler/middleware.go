package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TSCosta20/housing-project/internal/config"
)

// APIKeyMiddleware guards mutating API routes with a static bearer key.
// Reads stay open so dashboards work without credentials; health endpoints
// are always open.
func APIKeyMiddleware(cfg config.APIConfig) gin.HandlerFunc {
	key := strings.TrimSpace(cfg.APIKey)
	if !cfg.AuthEnabled || key == "" {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}
		if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}
		auth := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")) != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}
		c.Next()
	}
}
