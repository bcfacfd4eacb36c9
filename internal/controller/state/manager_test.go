package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateAndData(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateWeekConfigSeriesName)
	sm.SetData(1, DataWeekday, 3)
	assert.Equal(t, StateWeekConfigSeriesName, sm.GetState(1))

	v, ok := sm.GetData(1, DataWeekday)
	require.True(t, ok)
	assert.Equal(t, 3, v)

	sm.SetState(1, StateNone)
	_, ok = sm.GetData(1, DataWeekday)
	assert.False(t, ok)
}

func TestWeekConfigLifecycle(t *testing.T) {
	sm := NewManager()

	_, ok := sm.WeekConfig(7)
	assert.False(t, ok)
	assert.ErrorIs(t, sm.UpdateWeekConfig(7, func(*weekconfig.Config) error { return nil }), ErrNoWeekConfig)

	cfg := weekconfig.New(60)
	sm.BeginWeekConfig(7, 42, cfg)

	// сессия хранит свою копию
	require.NoError(t, cfg.ToggleSlot(1, "09:00"))
	got, ok := sm.WeekConfig(7)
	require.True(t, ok)
	r, _ := got.Row(1)
	assert.Empty(t, r.Selected())

	require.NoError(t, sm.UpdateWeekConfig(7, func(c *weekconfig.Config) error {
		return c.ToggleSlot(1, "10:00")
	}))
	got, _ = sm.WeekConfig(7)
	r, _ = got.Row(1)
	assert.Equal(t, []string{"10:00"}, r.Selected())

	trainerID, ok := sm.GetData(7, DataTrainerID)
	require.True(t, ok)
	assert.Equal(t, int64(42), trainerID)
	assert.Equal(t, StateWeekConfig, sm.GetState(7))

	sm.ClearState(7)
	_, ok = sm.WeekConfig(7)
	assert.False(t, ok)
}

func TestUpdateWeekConfigError(t *testing.T) {
	sm := NewManager()
	sm.BeginWeekConfig(1, 1, weekconfig.New(60))

	boom := errors.New("boom")
	assert.ErrorIs(t, sm.UpdateWeekConfig(1, func(*weekconfig.Config) error { return boom }), boom)
}

func TestMessage(t *testing.T) {
	sm := NewManager()
	_, _, ok := sm.Message(1)
	assert.False(t, ok)

	sm.BeginWeekConfig(1, 1, weekconfig.New(60))
	sm.SetMessage(1, 100, 55)

	chatID, msgID, ok := sm.Message(1)
	require.True(t, ok)
	assert.Equal(t, int64(100), chatID)
	assert.Equal(t, 55, msgID)
}

func TestSweep(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	sm := NewManager()
	sm.now = func() time.Time { return now }

	sm.BeginWeekConfig(1, 1, weekconfig.New(60))
	now = now.Add(20 * time.Minute)
	sm.BeginWeekConfig(2, 2, weekconfig.New(60))
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, sm.Sweep(30*time.Minute))

	_, ok := sm.WeekConfig(1)
	assert.False(t, ok)
	_, ok = sm.WeekConfig(2)
	assert.True(t, ok)
}

func TestConcurrentUpdates(t *testing.T) {
	sm := NewManager()
	sm.BeginWeekConfig(1, 1, weekconfig.New(60))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sm.UpdateWeekConfig(1, func(c *weekconfig.Config) error {
				return c.ToggleSlot(2, "09:00")
			})
		}()
	}
	wg.Wait()

	// чётное число переключений возвращает исходное состояние
	cfg, _ := sm.WeekConfig(1)
	r, _ := cfg.Row(2)
	assert.Empty(t, r.Selected())
}
