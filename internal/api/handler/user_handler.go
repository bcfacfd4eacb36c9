package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Freeeeeet/gym_scheduler/internal/api/middleware"
	"github.com/Freeeeeet/gym_scheduler/internal/api/response"
)

// UserHandler данные о вызывающем
type UserHandler struct {
	now func() time.Time
}

// NewUserHandler создаёт UserHandler
func NewUserHandler(now func() time.Time) *UserHandler {
	return &UserHandler{now: now}
}

// Me возвращает данные из токена
// GET /api/v1/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	response.OK(c, MeResponse{
		UserID:     userID,
		TelegramID: c.GetInt64(middleware.TelegramIDKey),
		Role:       c.GetString(middleware.RoleKey),
		ServerTime: h.now().UTC(),
	})
}
