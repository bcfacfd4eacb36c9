package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_scheduler/internal/api/handler"
	"github.com/Freeeeeet/gym_scheduler/internal/auth"
	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"github.com/Freeeeeet/gym_scheduler/internal/service"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTrainerService struct{}

func (stubTrainerService) LoadWeekConfig(_ context.Context, _ int64) (*weekconfig.Config, error) {
	return weekconfig.New(60), nil
}

func (stubTrainerService) SaveWeekConfig(_ context.Context, _ int64, _ *weekconfig.Config) (*service.SaveResult, error) {
	return &service.SaveResult{}, nil
}

func (stubTrainerService) GetUpcomingSessions(_ context.Context, _ int64, _ int) ([]*model.ClassSession, error) {
	return nil, nil
}

func (stubTrainerService) GetStudioSessions(_ context.Context, _ int) ([]*model.ClassSession, error) {
	return nil, nil
}

func setup(t *testing.T) (*gin.Engine, *auth.Manager) {
	t.Helper()
	tokens := auth.NewManager("router-secret", time.Hour)
	h := handler.NewHandler(stubTrainerService{}, zap.NewNop())
	return Setup(h, tokens, false, zap.NewNop()), tokens
}

func call(r *gin.Engine, method, path, token, body string) int {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestHealth(t *testing.T) {
	r, _ := setup(t)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/health", "", ""))
}

func TestRoutesRequireToken(t *testing.T) {
	r, _ := setup(t)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/v1/me", "", ""))
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/v1/week-config", "", ""))
}

func TestTrainerRoutesCheckRole(t *testing.T) {
	r, tokens := setup(t)

	student, _, err := tokens.GenerateToken(&model.User{ID: 1, Role: model.RoleStudent})
	require.NoError(t, err)
	trainer, _, err := tokens.GenerateToken(&model.User{ID: 2, Role: model.RoleTrainer})
	require.NoError(t, err)

	// Предпросмотр и /me доступны любому пользователю с токеном
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/v1/me", student, ""))
	assert.Equal(t, http.StatusOK, call(r, http.MethodPost, "/api/v1/slots/preview", student,
		`{"shift_start":"09:00","shift_end":"12:00","duration":60}`))

	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/api/v1/week-config", student, ""))
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/api/v1/sessions", student, ""))

	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/v1/week-config", trainer, ""))
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/v1/sessions", trainer, ""))
	assert.Equal(t, http.StatusOK, call(r, http.MethodPut, "/api/v1/week-config", trainer, `{"class_duration":60}`))
}

func TestStudioRoutesAdminOnly(t *testing.T) {
	r, tokens := setup(t)

	trainer, _, err := tokens.GenerateToken(&model.User{ID: 2, Role: model.RoleTrainer})
	require.NoError(t, err)
	admin, _, err := tokens.GenerateToken(&model.User{ID: 3, Role: model.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/api/v1/studio/sessions", trainer, ""))
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/v1/studio/sessions?days=3", admin, ""))
}
