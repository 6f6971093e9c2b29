// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the bearer-token check protecting the cache
// maintenance endpoints. The token is a single shared operator secret from
// configuration, not a user-auth mechanism: when no secret is configured
// the check is disabled entirely, which keeps local development and test
// setups friction-free.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireToken returns a Gin middleware that enforces
// "Authorization: Bearer <secret>" on the guarded routes. An empty secret
// disables the check (the middleware becomes a no-op). Failures abort with
// a 401 in the standard envelope.
func RequireToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":    false,
				"error":      "unauthorized",
				"request_id": c.Writer.Header().Get("X-Request-ID"),
			})
			return
		}
		c.Next()
	}
}
