package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_scheduler/internal/api/response"
	"github.com/Freeeeeet/gym_scheduler/internal/model"
)

const (
	defaultSessionDays = 7
	maxSessionDays     = 60
)

// SessionsHandler занятия тренера
type SessionsHandler struct {
	trainerService TrainerService
	logger         *zap.Logger
}

// NewSessionsHandler создаёт SessionsHandler
func NewSessionsHandler(trainerService TrainerService, logger *zap.Logger) *SessionsHandler {
	return &SessionsHandler{
		trainerService: trainerService,
		logger:         logger,
	}
}

// ListSessions ближайшие занятия вызывающего тренера
// GET /api/v1/sessions?days=N
func (h *SessionsHandler) ListSessions(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	days, ok := parseDays(c)
	if !ok {
		return
	}

	sessions, err := h.trainerService.GetUpcomingSessions(c.Request.Context(), userID, days)
	if err != nil {
		h.logger.Error("Failed to list sessions", zap.Int64("trainer_id", userID), zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": toSessionDTOs(sessions), "days": days})
}

// ListStudioSessions запланированные занятия всех тренеров студии
// GET /api/v1/studio/sessions?days=N
func (h *SessionsHandler) ListStudioSessions(c *gin.Context) {
	days, ok := parseDays(c)
	if !ok {
		return
	}

	sessions, err := h.trainerService.GetStudioSessions(c.Request.Context(), days)
	if err != nil {
		h.logger.Error("Failed to list studio sessions", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": toSessionDTOs(sessions), "days": days})
}

// parseDays читает ?days=N; при false ответ 400 уже записан
func parseDays(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return defaultSessionDays, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxSessionDays {
		response.BadRequest(c, fmt.Sprintf("days must be in range 1..%d", maxSessionDays))
		return 0, false
	}
	return n, true
}

func toSessionDTOs(sessions []*model.ClassSession) []SessionDTO {
	list := make([]SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		list = append(list, SessionDTO{
			ID:         s.ID,
			TrainerID:  s.TrainerID,
			SeriesID:   s.SeriesID,
			SeriesName: s.SeriesName,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			Status:     string(s.Status),
		})
	}
	return list
}
