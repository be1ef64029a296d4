// README: Bearer-token auth middleware backed by a TokenVerifier.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ecoroute/internal/infra"
)

const (
	ctxUID      = "auth.uid"
	ctxRole     = "auth.role"
	ctxIdentity = "auth.identity"
)

// Auth rejects requests without a valid "Bearer <token>" header and stores
// the caller identity on the context.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			abort(c, http.StatusUnauthorized, "missing bearer token", "Unauthenticated")
			return
		}

		id, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil || id == nil || id.UID == "" {
			abort(c, http.StatusUnauthorized, "invalid token", "Unauthenticated")
			return
		}

		c.Set(ctxIdentity, id)
		c.Set(ctxUID, id.UID)
		if role, ok := id.Claims["role"].(string); ok {
			c.Set(ctxRole, role)
		}
		c.Next()
	}
}

// CallerUID returns the authenticated user id, or "" outside Auth.
func CallerUID(c *gin.Context) string {
	return c.GetString(ctxUID)
}

func CallerRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

func CallerIdentity(c *gin.Context) *infra.Identity {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*infra.Identity)
	return id
}

func abort(c *gin.Context, status int, msg, kind string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "kind": kind})
}
