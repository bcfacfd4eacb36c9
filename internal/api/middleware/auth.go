package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/gym_scheduler/internal/api/response"
	"github.com/Freeeeeet/gym_scheduler/internal/auth"
)

// Ключи gin.Context, которые заполняет JWTAuth
const (
	UserIDKey     = "user_id"
	TelegramIDKey = "telegram_id"
	RoleKey       = "role"
)

// TokenParser проверяет токены API
type TokenParser interface {
	ParseToken(tokenString string) (*auth.Claims, error)
}

// JWTAuth проверяет Authorization: Bearer <token>
func JWTAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, response.CodeUnauthorized, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				response.Unauthorized(c, response.CodeTokenExpired, "token expired")
			} else {
				response.Unauthorized(c, response.CodeUnauthorized, "token invalid")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(TelegramIDKey, claims.TelegramID)
		c.Set(RoleKey, claims.Role)

		c.Next()
	}
}

// RoleAuth пропускает только перечисленные роли
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(RoleKey)
		if userRole == "" {
			response.Unauthorized(c, response.CodeUnauthorized, "unauthenticated")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "forbidden")
		c.Abort()
	}
}
