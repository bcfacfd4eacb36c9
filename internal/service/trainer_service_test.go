package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

const (
	trainerID = int64(1)
	studentID = int64(2)
)

// понедельник, 08:00 UTC
var fixedNow = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

type trainerFixture struct {
	svc      *TrainerService
	week     *fakeWeekRepo
	sessions *fakeSessionRepo
}

func newTrainerFixture(t *testing.T) *trainerFixture {
	t.Helper()

	users := newFakeUserRepo(
		&model.User{ID: trainerID, TelegramID: 501, Role: model.RoleTrainer},
		&model.User{ID: studentID, TelegramID: 502, Role: model.RoleStudent},
	)
	sessions := &fakeSessionRepo{}
	week := newFakeWeekRepo(sessions, func() time.Time { return fixedNow })

	svc := NewTrainerService(users, week, week, sessions, 60, 2, zap.NewNop())
	svc.location = time.UTC
	svc.now = func() time.Time { return fixedNow }

	return &trainerFixture{svc: svc, week: week, sessions: sessions}
}

func TestLoadWeekConfig_Empty(t *testing.T) {
	f := newTrainerFixture(t)

	cfg, err := f.svc.LoadWeekConfig(context.Background(), trainerID)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.ClassDuration)
	assert.Equal(t, 0, cfg.EnabledDays())

	row, err := cfg.Row(1)
	require.NoError(t, err)
	assert.Equal(t, weekconfig.DefaultShiftStart, row.ShiftStart)
	assert.Equal(t, weekconfig.DefaultShiftEnd, row.ShiftEnd)
}

func TestLoadWeekConfig_NotTrainer(t *testing.T) {
	f := newTrainerFixture(t)

	_, err := f.svc.LoadWeekConfig(context.Background(), studentID)
	assert.ErrorIs(t, err, ErrNotTrainer)

	_, err = f.svc.LoadWeekConfig(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoadWeekConfig_SeedsFromSeries(t *testing.T) {
	f := newTrainerFixture(t)
	f.week.series = []*model.ClassSeries{
		{ID: 1, TrainerID: trainerID, Weekday: 4, SeriesName: "Бокс", StartHour: 19, StartMinute: 30, DurationMinutes: 60, IsActive: true},
		{ID: 2, TrainerID: trainerID, Weekday: 9, SeriesName: "Битая", StartHour: 10, DurationMinutes: 60, IsActive: true},
		{ID: 3, TrainerID: trainerID, Weekday: 4, SeriesName: "Бокс", StartHour: 8, DurationMinutes: 60, IsActive: false},
	}

	cfg, err := f.svc.LoadWeekConfig(context.Background(), trainerID)
	require.NoError(t, err)

	row, err := cfg.Row(4)
	require.NoError(t, err)
	assert.True(t, row.Enabled)
	assert.Equal(t, "Бокс", row.SeriesName)
	assert.Equal(t, []string{"19:30"}, row.Selected())
	assert.Equal(t, 1, cfg.EnabledDays())
}

func TestSaveWeekConfig_PersistsAndGeneratesSessions(t *testing.T) {
	f := newTrainerFixture(t)
	ctx := context.Background()

	cfg := weekconfig.New(60)
	require.NoError(t, cfg.SetEnabled(1, true))
	require.NoError(t, cfg.SetSeriesName(1, "Функциональный тренинг"))
	require.NoError(t, cfg.SetShiftStart(1, weekconfig.ParseClock("09:00")))
	require.NoError(t, cfg.SetShiftEnd(1, weekconfig.ParseClock("11:00")))
	require.NoError(t, cfg.ToggleSlot(1, "09:00"))
	require.NoError(t, cfg.ToggleSlot(1, "10:00"))
	require.NoError(t, cfg.ToggleSlot(1, "07:00")) // вне смены

	res, err := f.svc.SaveWeekConfig(ctx, trainerID, cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Pruned)
	assert.Equal(t, 2, res.SeriesCount)
	assert.Equal(t, 4, res.SessionsCreated) // два понедельника по два занятия

	require.Len(t, f.week.series, 2)
	assert.Equal(t, res.GroupID, f.week.series[0].GroupID)
	assert.Equal(t, res.GroupID, f.week.series[1].GroupID)
	assert.Len(t, f.week.days[trainerID], weekconfig.DaysInWeek)

	first := f.sessions.sessions[0]
	assert.Equal(t, time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), first.StartTime)
	assert.Equal(t, time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC), first.EndTime)
	assert.Equal(t, "Функциональный тренинг", first.SeriesName)
	require.NotNil(t, first.SeriesID)

	// повторная загрузка восстанавливает ту же неделю
	loaded, err := f.svc.LoadWeekConfig(ctx, trainerID)
	require.NoError(t, err)
	row, _ := loaded.Row(1)
	assert.True(t, row.Enabled)
	assert.Equal(t, "Функциональный тренинг", row.SeriesName)
	assert.Equal(t, []string{"09:00", "10:00"}, row.Selected())
	assert.Equal(t, "11:00", row.ShiftEnd.String())
}

func TestSaveWeekConfig_InvalidShift(t *testing.T) {
	f := newTrainerFixture(t)

	cfg := weekconfig.New(60)
	require.NoError(t, cfg.SetEnabled(3, true))
	require.NoError(t, cfg.SetShiftStart(3, weekconfig.ParseClock("20:00")))
	require.NoError(t, cfg.SetShiftEnd(3, weekconfig.ParseClock("10:00")))

	_, err := f.svc.SaveWeekConfig(context.Background(), trainerID, cfg)
	assert.ErrorIs(t, err, weekconfig.ErrInvalidShift)
	assert.Equal(t, 0, f.week.replaceCalls)
}

func TestSaveWeekConfig_KeepsCanceledSessions(t *testing.T) {
	f := newTrainerFixture(t)
	ctx := context.Background()

	cfg := weekconfig.New(60)
	require.NoError(t, cfg.SetEnabled(2, true))
	require.NoError(t, cfg.ToggleSlot(2, "10:00"))
	require.NoError(t, cfg.SetEnabled(5, true))
	require.NoError(t, cfg.SetSeriesName(5, "Йога"))
	require.NoError(t, cfg.ToggleSlot(5, "18:00"))

	_, err := f.svc.SaveWeekConfig(ctx, trainerID, cfg)
	require.NoError(t, err)

	// отменяем ближайший вторник
	tuesday := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	var canceled *model.ClassSession
	for _, s := range f.sessions.sessions {
		if s.StartTime.Equal(tuesday) {
			canceled = s
		}
	}
	require.NotNil(t, canceled)
	require.NoError(t, f.svc.CancelSession(ctx, trainerID, canceled.ID))

	// переименовываем пятницу и сохраняем заново
	loaded, err := f.svc.LoadWeekConfig(ctx, trainerID)
	require.NoError(t, err)
	require.NoError(t, loaded.SetSeriesName(5, "Йога для начинающих"))
	_, err = f.svc.SaveWeekConfig(ctx, trainerID, loaded)
	require.NoError(t, err)

	var atTuesday []*model.ClassSession
	for _, s := range f.sessions.sessions {
		if s.StartTime.Equal(tuesday) {
			atTuesday = append(atTuesday, s)
		}
	}
	require.Len(t, atTuesday, 1)
	assert.Equal(t, model.SessionStatusCanceled, atTuesday[0].Status)

	upcoming, err := f.svc.GetUpcomingSessions(ctx, trainerID, 14)
	require.NoError(t, err)
	for _, s := range upcoming {
		if s.Status != model.SessionStatusScheduled {
			continue
		}
		assert.False(t, s.StartTime.Equal(tuesday), "отменённое занятие не должно вернуться")
		if s.StartTime.Weekday() == time.Friday {
			assert.Equal(t, "Йога для начинающих", s.SeriesName)
		}
	}
}

func TestGenerateSessionsForAllSeries_Idempotent(t *testing.T) {
	f := newTrainerFixture(t)
	ctx := context.Background()

	cfg := weekconfig.New(45)
	require.NoError(t, cfg.SetEnabled(2, true))
	require.NoError(t, cfg.ToggleSlot(2, "09:45"))
	_, err := f.svc.SaveWeekConfig(ctx, trainerID, cfg)
	require.NoError(t, err)

	before := len(f.sessions.sessions)
	require.NoError(t, f.svc.GenerateSessionsForAllSeries(ctx, 2))
	assert.Equal(t, before, len(f.sessions.sessions))

	require.NoError(t, f.svc.GenerateSessionsForAllSeries(ctx, 3))
	assert.Equal(t, before+1, len(f.sessions.sessions))
}

func TestCancelSession(t *testing.T) {
	f := newTrainerFixture(t)
	ctx := context.Background()

	session := &model.ClassSession{TrainerID: trainerID, StartTime: fixedNow.Add(time.Hour), Status: model.SessionStatusScheduled}
	require.NoError(t, f.sessions.Create(ctx, session))

	assert.ErrorIs(t, f.svc.CancelSession(ctx, studentID, session.ID), ErrNotOwner)
	assert.ErrorIs(t, f.svc.CancelSession(ctx, trainerID, 12345), ErrSessionNotFound)

	require.NoError(t, f.svc.CancelSession(ctx, trainerID, session.ID))
	assert.Equal(t, model.SessionStatusCanceled, session.Status)

	upcoming, err := f.svc.GetStudioSessions(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}
