package callbacktypes

import (
	"context"
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/state"
	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"github.com/Freeeeeet/gym_scheduler/internal/service"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) state.UserState
	SetState(telegramID int64, st state.UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)

	BeginWeekConfig(telegramID, trainerID int64, cfg *weekconfig.Config)
	WeekConfig(telegramID int64) (*weekconfig.Config, bool)
	UpdateWeekConfig(telegramID int64, fn func(cfg *weekconfig.Config) error) error
	SetMessage(telegramID, chatID int64, messageID int)
}

// UserService операции с пользователями, нужные callback handlers
type UserService interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	MakeTrainer(ctx context.Context, telegramID int64) (*model.User, error)
}

// TrainerService операции тренера, нужные callback handlers
type TrainerService interface {
	SaveWeekConfig(ctx context.Context, trainerID int64, cfg *weekconfig.Config) (*service.SaveResult, error)
	GetUpcomingSessions(ctx context.Context, trainerID int64, days int) ([]*model.ClassSession, error)
	CancelSession(ctx context.Context, trainerID, sessionID int64) error
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService    UserService
	TrainerService TrainerService
	StateManager   StateManager
	Logger         *zap.Logger

	// Горизонт расписания /myschedule
	ScheduleDays int
	Now          func() time.Time

	// Функции-хэндлеры из основного контроллера
	HandleWeekConfig func(ctx context.Context, b *bot.Bot, update *models.Update)
}
