package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/simak-gateway/internal/service"
	appErrors "github.com/noah-isme/simak-gateway/pkg/errors"
	"github.com/noah-isme/simak-gateway/pkg/response"
)

const (
	// ContextUserKey is the gin context key storing JWT claims.
	ContextUserKey = "currentUser"
	// ContextTokenKey stores the raw bearer token for upstream relay.
	ContextTokenKey = "bearerToken"
)

// JWT protects routes by requiring a valid access token. The validated raw
// token is kept on the context so handlers can relay it to the academic
// service.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Set(ContextTokenKey, parts[1])
		c.Next()
	}
}
