package middleware

import (
	"context"
	"strings"

	"storefront/internal/utils"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthRequired middleware validates JWT token and sets user context
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.UnauthorizedResponse(c, "Bearer token required")
			return
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid token")
			return
		}
		if claims.UserID == "" {
			utils.UnauthorizedResponse(c, "Invalid token claims")
			return
		}

		// Set user context
		c.Set("user_id", claims.UserID)
		c.Set("user_type", claims.UserType)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID))

		c.Next()
	}
}

// AdminRequired middleware ensures user is an admin
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, exists := c.Get("user_type")
		if !exists {
			utils.UnauthorizedResponse(c, "User type not found")
			return
		}

		userTypeStr, ok := userType.(string)
		if !ok || userTypeStr != utils.UserTypeAdmin {
			utils.ForbiddenResponse(c)
			return
		}

		c.Next()
	}
}
