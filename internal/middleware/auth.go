package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/satishydv/gharwa-backend/internal/service"
)

// ClaimsKey is the gin context key the verified token claims are stored
// under.
const ClaimsKey = "claims"

// RequireAuth returns middleware that enforces a valid bearer token on the
// request. Missing, malformed, tampered and expired tokens are all rejected
// with a generic 401.
func RequireAuth(jwtService service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ExtractToken pulls the bearer token out of the Authorization header.
// Returns "" when the header is absent or not of the form "Bearer <token>".
func ExtractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// ClaimsFromContext returns the claims stored by RequireAuth.
func ClaimsFromContext(c *gin.Context) (*service.Claims, bool) {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*service.Claims)
	return claims, ok
}
