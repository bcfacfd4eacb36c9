package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_scheduler/internal/api/middleware"
	"github.com/Freeeeeet/gym_scheduler/internal/api/response"
	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"github.com/Freeeeeet/gym_scheduler/internal/service"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock TrainerService ──

type mockTrainerService struct {
	loadResult *weekconfig.Config
	loadErr    error

	saved     *weekconfig.Config
	savedFor  int64
	saveErr   error
	saveValid bool

	sessions    []*model.ClassSession
	sessionsErr error
	daysAsked   int
	studioAsked bool
}

func (m *mockTrainerService) LoadWeekConfig(_ context.Context, _ int64) (*weekconfig.Config, error) {
	return m.loadResult, m.loadErr
}

func (m *mockTrainerService) SaveWeekConfig(_ context.Context, trainerID int64, cfg *weekconfig.Config) (*service.SaveResult, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.saved = cfg
	m.savedFor = trainerID
	pruned := cfg.Prune()
	if m.saveValid {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return &service.SaveResult{
		GroupID:     uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		SeriesCount: len(cfg.Entries()),
		Pruned:      pruned,
	}, nil
}

func (m *mockTrainerService) GetUpcomingSessions(_ context.Context, _ int64, days int) ([]*model.ClassSession, error) {
	m.daysAsked = days
	return m.sessions, m.sessionsErr
}

func (m *mockTrainerService) GetStudioSessions(_ context.Context, days int) ([]*model.ClassSession, error) {
	m.daysAsked = days
	m.studioAsked = true
	return m.sessions, m.sessionsErr
}

// ── Helpers ──

func setupEngine(h *Handler, userID int64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set(middleware.UserIDKey, userID)
			c.Set(middleware.TelegramIDKey, userID*100)
			c.Set(middleware.RoleKey, string(model.RoleTrainer))
		}
		c.Next()
	})
	r.GET("/me", h.User.Me)
	r.POST("/slots/preview", h.Slots.Preview)
	r.GET("/week-config", h.WeekConfig.GetWeekConfig)
	r.PUT("/week-config", h.WeekConfig.PutWeekConfig)
	r.GET("/sessions", h.Sessions.ListSessions)
	r.GET("/studio/sessions", h.Sessions.ListStudioSessions)
	return r
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func perform(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, data interface{}) response.Response {
	t.Helper()
	resp := response.Response{Data: data}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newTestHandler(svc *mockTrainerService) *Handler {
	h := NewHandler(svc, zap.NewNop())
	h.User = NewUserHandler(func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) })
	return h
}

// ── Slots ──

func TestSlotsHandler_Preview(t *testing.T) {
	r := setupEngine(newTestHandler(&mockTrainerService{}), 1)

	w := perform(r, http.MethodPost, "/slots/preview", jsonBody(SlotPreviewRequest{
		ShiftStart: "09:00", ShiftEnd: "10:30", Duration: 45,
	}))
	require.Equal(t, http.StatusOK, w.Code)

	var data SlotPreviewResponse
	resp := parseResponse(t, w, &data)
	assert.Equal(t, response.CodeOK, resp.Code)
	assert.Equal(t, []string{"09:00", "09:45"}, data.Slots)
	assert.Equal(t, 2, data.Count)
}

func TestSlotsHandler_Preview_EmptyShift(t *testing.T) {
	r := setupEngine(newTestHandler(&mockTrainerService{}), 1)

	w := perform(r, http.MethodPost, "/slots/preview", jsonBody(SlotPreviewRequest{
		ShiftStart: "18:00", ShiftEnd: "09:00", Duration: 60,
	}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slots":[]`)
}

func TestSlotsHandler_Preview_Invalid(t *testing.T) {
	r := setupEngine(newTestHandler(&mockTrainerService{}), 1)

	tests := []struct {
		name string
		body io.Reader
	}{
		{"bad json", bytes.NewReader([]byte("bad"))},
		{"bad start", jsonBody(SlotPreviewRequest{ShiftStart: "9am", ShiftEnd: "10:00", Duration: 30})},
		{"bad end", jsonBody(SlotPreviewRequest{ShiftStart: "09:00", ShiftEnd: "24:00", Duration: 30})},
		{"short duration", jsonBody(SlotPreviewRequest{ShiftStart: "09:00", ShiftEnd: "10:00", Duration: 10})},
		{"long duration", jsonBody(SlotPreviewRequest{ShiftStart: "00:00", ShiftEnd: "23:59", Duration: 481})},
		{"huge duration", jsonBody(SlotPreviewRequest{ShiftStart: "09:00", ShiftEnd: "18:00", Duration: math.MaxInt})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodPost, "/slots/preview", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, response.CodeBadRequest, parseResponse(t, w, nil).Code)
		})
	}
}

// ── Week config ──

func TestWeekConfigHandler_Get(t *testing.T) {
	cfg := weekconfig.New(60)
	require.NoError(t, cfg.SetEnabled(1, true))
	require.NoError(t, cfg.SetShiftEnd(1, weekconfig.NewClock(11, 0)))
	require.NoError(t, cfg.ToggleSlot(1, "09:00"))
	require.NoError(t, cfg.ToggleSlot(1, "07:00"))

	r := setupEngine(newTestHandler(&mockTrainerService{loadResult: cfg}), 5)

	w := perform(r, http.MethodGet, "/week-config", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data WeekConfigDTO
	parseResponse(t, w, &data)
	assert.Equal(t, 60, data.ClassDuration)
	require.Len(t, data.Days, 7)

	monday := data.Days[0]
	assert.Equal(t, 1, monday.Weekday)
	assert.True(t, monday.Enabled)
	assert.Equal(t, "11:00", monday.ShiftEnd)
	assert.Equal(t, []string{"07:00", "09:00"}, monday.Selected)
	assert.Equal(t, []string{"09:00", "10:00"}, monday.Candidates)
	assert.Equal(t, []string{"07:00"}, monday.Orphans)

	assert.Equal(t, 0, data.Days[6].Weekday)
	assert.Equal(t, []string{}, data.Days[6].Selected)
}

func TestWeekConfigHandler_Get_NotTrainer(t *testing.T) {
	r := setupEngine(newTestHandler(&mockTrainerService{loadErr: service.ErrNotTrainer}), 5)

	w := perform(r, http.MethodGet, "/week-config", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWeekConfigHandler_Get_Unauthenticated(t *testing.T) {
	r := setupEngine(newTestHandler(&mockTrainerService{}), 0)

	w := perform(r, http.MethodGet, "/week-config", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWeekConfigHandler_Put(t *testing.T) {
	svc := &mockTrainerService{saveValid: true}
	r := setupEngine(newTestHandler(svc), 5)

	w := perform(r, http.MethodPut, "/week-config", jsonBody(WeekConfigDTO{
		ClassDuration: 45,
		Days: []WeekDayDTO{{
			Weekday:    3,
			Enabled:    true,
			SeriesName: "Пилатес",
			ShiftStart: "9:00",
			ShiftEnd:   "12:00",
			Selected:   []string{"09:45", "09:00", "18:00"},
		}},
	}))
	require.Equal(t, http.StatusOK, w.Code)

	var data SaveResultDTO
	parseResponse(t, w, &data)
	assert.Equal(t, 2, data.SeriesCount)
	assert.Equal(t, 1, data.Pruned)

	require.NotNil(t, svc.saved)
	assert.Equal(t, int64(5), svc.savedFor)
	assert.Equal(t, 45, svc.saved.ClassDuration)

	row, err := svc.saved.Row(3)
	require.NoError(t, err)
	assert.Equal(t, "Пилатес", row.SeriesName)
	assert.Equal(t, []string{"09:00", "09:45"}, row.Selected())

	other, _ := svc.saved.Row(2)
	assert.False(t, other.Enabled)
}

func TestWeekConfigHandler_Put_NormalizesSeriesName(t *testing.T) {
	svc := &mockTrainerService{saveValid: true}
	r := setupEngine(newTestHandler(svc), 5)

	w := perform(r, http.MethodPut, "/week-config", jsonBody(WeekConfigDTO{
		ClassDuration: 60,
		Days: []WeekDayDTO{
			{Weekday: 1, Enabled: true, SeriesName: "  Утренняя \n  йога "},
			{Weekday: 2, Enabled: true, SeriesName: "   "},
		},
	}))
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, svc.saved)
	mon, _ := svc.saved.Row(1)
	assert.Equal(t, "Утренняя йога", mon.SeriesName)
	tue, _ := svc.saved.Row(2)
	assert.Empty(t, tue.SeriesName)
}

func TestWeekConfigHandler_Put_InvalidShift(t *testing.T) {
	svc := &mockTrainerService{saveValid: true}
	r := setupEngine(newTestHandler(svc), 5)

	w := perform(r, http.MethodPut, "/week-config", jsonBody(WeekConfigDTO{
		ClassDuration: 60,
		Days:          []WeekDayDTO{{Weekday: 1, Enabled: true, ShiftStart: "18:00", ShiftEnd: "09:00"}},
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeekConfigHandler_Put_RejectsBadInput(t *testing.T) {
	svc := &mockTrainerService{}
	r := setupEngine(newTestHandler(svc), 5)

	tests := []struct {
		name string
		req  WeekConfigDTO
	}{
		{"short duration", WeekConfigDTO{ClassDuration: 10}},
		{"long duration", WeekConfigDTO{ClassDuration: 481}},
		{"huge duration", WeekConfigDTO{ClassDuration: math.MaxInt}},
		{"long series name", WeekConfigDTO{ClassDuration: 60, Days: []WeekDayDTO{{Weekday: 1, SeriesName: strings.Repeat("я", 65)}}}},
		{"bad weekday", WeekConfigDTO{ClassDuration: 60, Days: []WeekDayDTO{{Weekday: 7}}}},
		{"duplicate weekday", WeekConfigDTO{ClassDuration: 60, Days: []WeekDayDTO{{Weekday: 1}, {Weekday: 1}}}},
		{"bad shift", WeekConfigDTO{ClassDuration: 60, Days: []WeekDayDTO{{Weekday: 1, ShiftStart: "nine"}}}},
		{"bad selected", WeekConfigDTO{ClassDuration: 60, Days: []WeekDayDTO{{Weekday: 1, Selected: []string{"25:00"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodPut, "/week-config", jsonBody(tt.req))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Nil(t, svc.saved)
}

func TestWeekConfigHandler_Put_InternalError(t *testing.T) {
	r := setupEngine(newTestHandler(&mockTrainerService{saveErr: errors.New("db down")}), 5)

	w := perform(r, http.MethodPut, "/week-config", jsonBody(WeekConfigDTO{ClassDuration: 60}))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ── Sessions ──

func TestSessionsHandler_List(t *testing.T) {
	start := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	svc := &mockTrainerService{sessions: []*model.ClassSession{{
		ID:         10,
		SeriesName: "Йога",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     model.SessionStatusScheduled,
	}}}
	r := setupEngine(newTestHandler(svc), 5)

	w := perform(r, http.MethodGet, "/sessions?days=14", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 14, svc.daysAsked)

	var data struct {
		List []SessionDTO `json:"list"`
		Days int          `json:"days"`
	}
	parseResponse(t, w, &data)
	require.Len(t, data.List, 1)
	assert.Equal(t, "Йога", data.List[0].SeriesName)
	assert.Equal(t, "scheduled", data.List[0].Status)
}

func TestSessionsHandler_List_DefaultAndInvalidDays(t *testing.T) {
	svc := &mockTrainerService{}
	r := setupEngine(newTestHandler(svc), 5)

	w := perform(r, http.MethodGet, "/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultSessionDays, svc.daysAsked)
	assert.Contains(t, w.Body.String(), `"list":[]`)

	for _, q := range []string{"0", "-1", "61", "week"} {
		w := perform(r, http.MethodGet, "/sessions?days="+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestSessionsHandler_ListStudio(t *testing.T) {
	start := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	svc := &mockTrainerService{sessions: []*model.ClassSession{
		{ID: 1, TrainerID: 5, StartTime: start, EndTime: start.Add(time.Hour), Status: model.SessionStatusScheduled},
		{ID: 2, TrainerID: 6, StartTime: start, EndTime: start.Add(time.Hour), Status: model.SessionStatusScheduled},
	}}
	r := setupEngine(newTestHandler(svc), 1)

	w := perform(r, http.MethodGet, "/studio/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.studioAsked)
	assert.Equal(t, defaultSessionDays, svc.daysAsked)

	var data struct {
		List []SessionDTO `json:"list"`
	}
	parseResponse(t, w, &data)
	require.Len(t, data.List, 2)
	assert.Equal(t, int64(6), data.List[1].TrainerID)
}

func TestSessionsHandler_ListStudio_Error(t *testing.T) {
	r := setupEngine(newTestHandler(&mockTrainerService{sessionsErr: errors.New("db down")}), 1)

	w := perform(r, http.MethodGet, "/studio/sessions", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ── Me ──

func TestUserHandler_Me(t *testing.T) {
	r := setupEngine(newTestHandler(&mockTrainerService{}), 5)

	w := perform(r, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data MeResponse
	parseResponse(t, w, &data)
	assert.Equal(t, int64(5), data.UserID)
	assert.Equal(t, int64(500), data.TelegramID)
	assert.Equal(t, "trainer", data.Role)
}
