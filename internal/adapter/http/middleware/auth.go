package middleware

import (
	"net/http"

	"freework/internal/infrastructure/auth"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the session cookie and stores the caller's
// identity in the request context.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("token")
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing session cookie"})
			return
		}

		claims, err := auth.ParseJWT(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", string(claims.Role))
		c.Next()
	}
}
