package middleware

import (
	"net/http"
	"strings"

	"bookmart-be/internal/user"
	"bookmart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired rejects requests without a valid bearer token and injects
// the authenticated user into the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx := utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Username)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AuthOptional injects the user when a valid bearer token is present but
// lets anonymous requests through untouched.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if claims, err := user.ParseJWT(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
				ctx := utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Username)
				c.Request = c.Request.WithContext(ctx)
			}
		}

		c.Next()
	}
}
