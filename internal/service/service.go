package service

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/model"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNotTrainer      = errors.New("user is not a trainer")
	ErrSessionNotFound = errors.New("class session not found")
	ErrNotOwner        = errors.New("class session does not belong to trainer")
)

// UserRepository хранилище пользователей
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// WeekConfigRepository хранилище настройки недели
type WeekConfigRepository interface {
	GetDays(ctx context.Context, trainerID int64) ([]*model.WeekDay, error)
	Replace(ctx context.Context, trainerID int64, days []*model.WeekDay, series []*model.ClassSeries) error
}

// ClassSeriesRepository хранилище регулярных занятий
type ClassSeriesRepository interface {
	GetByTrainerID(ctx context.Context, trainerID int64) ([]*model.ClassSeries, error)
	GetAllActive(ctx context.Context) ([]*model.ClassSeries, error)
}

// ClassSessionRepository хранилище конкретных занятий
type ClassSessionRepository interface {
	Create(ctx context.Context, session *model.ClassSession) error
	GetByID(ctx context.Context, id int64) (*model.ClassSession, error)
	GetByTrainerID(ctx context.Context, trainerID int64, from, to time.Time) ([]*model.ClassSession, error)
	GetUpcoming(ctx context.Context, from, to time.Time) ([]*model.ClassSession, error)
	Cancel(ctx context.Context, id int64) error
	SessionExists(ctx context.Context, trainerID int64, startTime time.Time) (bool, error)
}
