package handlers

import (
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/state"
	"github.com/Freeeeeet/gym_scheduler/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService    *service.UserService
	trainerService *service.TrainerService
	authService    *service.AuthService
	stateManager   *state.Manager
	scheduleDays   int
	now            func() time.Time
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	trainerService *service.TrainerService,
	authService *service.AuthService,
	stateManager *state.Manager,
	scheduleDays int,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:    userService,
		trainerService: trainerService,
		authService:    authService,
		stateManager:   stateManager,
		scheduleDays:   scheduleDays,
		now:            time.Now,
		logger:         logger,
	}
}
