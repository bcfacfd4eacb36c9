package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"go.uber.org/zap"
)

// TokenGenerator выпускает токены API
type TokenGenerator interface {
	GenerateToken(user *model.User) (string, time.Time, error)
}

// AuthService выдаёт токены для админского API
type AuthService struct {
	userRepo UserRepository
	tokens   TokenGenerator
	logger   *zap.Logger
}

func NewAuthService(userRepo UserRepository, tokens TokenGenerator, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// IssueToken выпускает токен для зарегистрированного пользователя
func (s *AuthService) IssueToken(ctx context.Context, telegramID int64) (string, time.Time, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return "", time.Time{}, ErrUserNotFound
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("API token issued",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.Time("expires_at", expiresAt),
	)

	return token, expiresAt, nil
}
