package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Amaan112005/mindmate/internal/auth"
)

// Context keys under which AuthMiddleware stores the verified claims.
const (
	ContextKeyUserID      = "user_id"
	ContextKeyEmail       = "email"
	ContextKeyIsTherapist = "is_therapist"
)

// AuthMiddleware validates the Bearer token and stores the claims in the
// request context. Invalid or missing tokens abort with 401 before any
// handler runs.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format, expected: Bearer <token>",
			})
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyIsTherapist, claims.IsTherapist)

		c.Next()
	}
}

// TherapistOnly gates routes that only therapist accounts may call. It must
// run after AuthMiddleware.
func TherapistOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetIsTherapist(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "therapist account required",
			})
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return ""
	}
	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}

func GetEmail(c *gin.Context) string {
	val, exists := c.Get(ContextKeyEmail)
	if !exists {
		return ""
	}
	email, ok := val.(string)
	if !ok {
		return ""
	}
	return email
}

func GetIsTherapist(c *gin.Context) bool {
	val, exists := c.Get(ContextKeyIsTherapist)
	if !exists {
		return false
	}
	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}
