package middleware

import (
	"net/http"

	"company-finance-backend/internal/policy"
	"company-finance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RequireCapability gates a route on the capability table. The role
// comes from the JWT claims set by AuthMiddleware; services re-check
// finer-grained rules (e.g. department scoping) against fresh data.
func RequireCapability(cap policy.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if !policy.Allows(role.(string), cap) {
			utils.ErrorResponse(c, http.StatusForbidden, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}
