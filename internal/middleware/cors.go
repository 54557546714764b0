// Package middleware provides HTTP middleware for the Gharwa backend.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigin is the single frontend origin permitted to call the API.
	AllowedOrigin string
}

// CORS returns middleware that attaches the configured CORS headers to every
// response and short-circuits OPTIONS preflight requests with no body.
func CORS(config CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", config.AllowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
