package middleware

import (
	"net/http"
	"slices"

	"github.com/engrsakib/qa-with-go/models"
	"github.com/gin-gonic/gin"
)

// RoleMiddleware lets through only callers whose token carries one of roles.
// It must run after AuthMiddleware.
func RoleMiddleware(roles ...models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, exists := c.Get(UserTypeKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !slices.Contains(roles, models.UserType(userType.(string))) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		c.Next()
	}
}
