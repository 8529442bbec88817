package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CacheControl marks GET responses as cacheable for maxAgeSeconds.
// Catalog data changes only when a term is refreshed.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	value := fmt.Sprintf("public, max-age=%d", maxAgeSeconds)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Header("Cache-Control", value)
		}
		c.Next()
	}
}
