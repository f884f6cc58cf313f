package middleware

import (
	"net/http"
	"slices"

	"stayfinder/models"
	"stayfinder/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only for the given roles. It must run
// after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, Role(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				Message: "Access denied. Insufficient role.",
			})
			return
		}
		c.Next()
	}
}
