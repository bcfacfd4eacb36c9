package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_scheduler/internal/model"
)

func TestRegisterUser_RolesFromConfig(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, []int64{900}, zap.NewNop())
	ctx := context.Background()

	student, err := svc.RegisterUser(ctx, 100, "anna", "Anna", "", "ru")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, student.Role)

	admin, err := svc.RegisterUser(ctx, 900, "boss", "Boss", "", "ru")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	again, err := svc.RegisterUser(ctx, 100, "anna_k", "Anna", "K", "ru")
	require.NoError(t, err)
	assert.Equal(t, student.ID, again.ID)
	assert.Equal(t, "anna_k", again.Username)
}

func TestMakeTrainer(t *testing.T) {
	repo := newFakeUserRepo(
		&model.User{ID: 1, TelegramID: 100, Role: model.RoleStudent},
		&model.User{ID: 2, TelegramID: 200, Role: model.RoleAdmin},
	)
	svc := NewUserService(repo, nil, zap.NewNop())
	ctx := context.Background()

	u, err := svc.MakeTrainer(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, model.RoleTrainer, u.Role)

	admin, err := svc.MakeTrainer(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	_, err = svc.MakeTrainer(ctx, 300)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

type stubTokens struct{}

func (stubTokens) GenerateToken(user *model.User) (string, time.Time, error) {
	return "token-" + string(user.Role), time.Unix(0, 0), nil
}

func TestIssueToken(t *testing.T) {
	repo := newFakeUserRepo(&model.User{ID: 1, TelegramID: 100, Role: model.RoleTrainer})
	svc := NewAuthService(repo, stubTokens{}, zap.NewNop())

	token, _, err := svc.IssueToken(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "token-trainer", token)

	_, _, err = svc.IssueToken(context.Background(), 555)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
