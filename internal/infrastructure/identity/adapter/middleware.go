package adapter

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-drafty/internal/infrastructure/identity/port"
)

const principalKey = "identity.principal"

// Middleware resolves the Bearer token (or a ?token= fallback for websocket
// clients that cannot set headers) and stores the Principal in the request
// context. Requests without a valid credential are rejected before any
// handler runs.
func Middleware(resolver port.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := c.GetHeader("Authorization")
		if credential == "" {
			credential = c.Query("token")
		}
		credential = strings.TrimPrefix(credential, "Bearer ")

		principal, err := resolver.Resolve(c.Request.Context(), credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the resolved caller identity stored by Middleware.
func PrincipalFrom(c *gin.Context) (port.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return port.Principal{}, false
	}
	p, ok := v.(port.Principal)
	return p, ok
}
