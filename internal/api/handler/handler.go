package handler

import (
	"context"
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"github.com/Freeeeeet/gym_scheduler/internal/service"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
	"go.uber.org/zap"
)

// TrainerService операции тренера, доступные через API
type TrainerService interface {
	LoadWeekConfig(ctx context.Context, trainerID int64) (*weekconfig.Config, error)
	SaveWeekConfig(ctx context.Context, trainerID int64, cfg *weekconfig.Config) (*service.SaveResult, error)
	GetUpcomingSessions(ctx context.Context, trainerID int64, days int) ([]*model.ClassSession, error)
	GetStudioSessions(ctx context.Context, days int) ([]*model.ClassSession, error)
}

// Handler все HTTP обработчики API
type Handler struct {
	Slots      *SlotsHandler
	WeekConfig *WeekConfigHandler
	Sessions   *SessionsHandler
	User       *UserHandler
}

// NewHandler создаёт обработчики
func NewHandler(trainerService TrainerService, logger *zap.Logger) *Handler {
	return &Handler{
		Slots:      NewSlotsHandler(),
		WeekConfig: NewWeekConfigHandler(trainerService, logger),
		Sessions:   NewSessionsHandler(trainerService, logger),
		User:       NewUserHandler(time.Now),
	}
}
