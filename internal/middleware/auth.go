package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moneyapp/internal/service"
	"github.com/moneyapp/pkg/response"
)

const (
	// ContextKeyClaims is the key for verified token claims in gin context
	ContextKeyClaims = "claims"

	// unauthorizedMessage is the only detail a client ever sees for a rejected token
	unauthorizedMessage = "could not validate credentials"
)

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, unauthorizedMessage)
			c.Abort()
			return
		}

		// Check Bearer prefix
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, unauthorizedMessage)
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			LogDebug("token rejected | path=%s | reason=%v", c.FullPath(), err)
			response.Unauthorized(c, unauthorizedMessage)
			c.Abort()
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims gets the verified claims from the gin context
func GetClaims(c *gin.Context) *service.Claims {
	value, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, _ := value.(*service.Claims)
	return claims
}
