package middleware

import (
	"Sabzee/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRole ensures the caller holds one of the given roles.
func CheckRole(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		response.Fail(c, response.Forbidden, "access denied for this role")
		c.Abort()
	}
}
