package middleware

import (
	"net/http"
	"strings"

	"github.com/engrsakib/qa-with-go/utils"
	"github.com/gin-gonic/gin"
)

const (
	UsernameKey = "username"
	UserTypeKey = "userType"
)

// AuthMiddleware rejects requests without a valid Bearer token and stores
// the caller's username and user type on the context.
func AuthMiddleware(tokens *utils.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (Missing Bearer)"})
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil || claims.UserType == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UsernameKey, claims.Username)
		c.Set(UserTypeKey, claims.UserType)
		c.Next()
	}
}

// OptionalAuth stores the caller like AuthMiddleware when a valid access token
// is sent, and lets the request through either way.
func OptionalAuth(tokens *utils.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if found {
			if claims, err := tokens.ValidateToken(tokenString); err == nil && claims.UserType != "" {
				c.Set(UsernameKey, claims.Username)
				c.Set(UserTypeKey, claims.UserType)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the username AuthMiddleware stored, or "" on public routes.
func CurrentUser(c *gin.Context) string {
	return c.GetString(UsernameKey)
}
