package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/gym_scheduler/internal/api/middleware"
	"github.com/Freeeeeet/gym_scheduler/internal/api/response"
)

// MustGetUserID достаёт user_id, который положил JWTAuth.
// При false ответ 401 уже записан.
func MustGetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "unauthenticated")
		return 0, false
	}
	id, ok := v.(int64)
	if !ok || id == 0 {
		response.Unauthorized(c, response.CodeUnauthorized, "unauthenticated")
		return 0, false
	}
	return id, true
}
