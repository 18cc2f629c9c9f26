package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ArowuTest/numbers-lottery-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Context keys set by JWTAuthMiddleware
const (
	ContextSubject = "subject"
	ContextRole    = "role"
)

// JWTAuthMiddleware creates a gin middleware that admits bearer tokens issued
// by tokens for the given role.
func JWTAuthMiddleware(tokens *jwt.TokenService, role string, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const bearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			abortUnauthorized(c, "Authorization header must start with Bearer ")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(authHeader[len(bearerSchema):]))
		if err != nil {
			log.WithError(err).WithField("path", c.FullPath()).Warn("Token validation failed")
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortUnauthorized(c, "Token has expired")
			} else {
				abortUnauthorized(c, "Invalid token")
			}
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Insufficient role"})
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": msg})
}
