package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/table-reservations/internal/domain/access"
	"github.com/BruksfildServices01/table-reservations/internal/httperr"
)

// RequireAction rejects requests whose role may not perform action.
// Must run after AuthMiddleware.
func RequireAction(action access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !access.Authorize(Role(c), action) {
			httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
			c.Abort()
			return
		}
		c.Next()
	}
}
