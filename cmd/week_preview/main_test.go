package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfig(t *testing.T) {
	cfg, err := buildConfig("09:00", "12:00", 60, "1, 3", "Йога")
	require.NoError(t, err)

	entries := cfg.Entries()
	require.Len(t, entries, 6)
	assert.Equal(t, 1, entries[0].Weekday)
	assert.Equal(t, "Йога", entries[0].SeriesName)
	assert.Equal(t, "11:00", entries[2].Start.String())

	_, err = buildConfig("9am", "12:00", 60, "1", "")
	assert.Error(t, err)

	_, err = buildConfig("09:00", "12:00", 60, "8", "")
	assert.Error(t, err)

	_, err = buildConfig("12:00", "09:00", 60, "1", "")
	assert.Error(t, err)
}

func TestSessionsForWeek(t *testing.T) {
	cfg, err := buildConfig("18:00", "19:00", 60, "0,1", "")
	require.NoError(t, err)

	// среда
	date := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	sessions := sessionsForWeek(cfg, date)
	require.Len(t, sessions, 2)

	// воскресенье идёт в конец недели
	assert.Equal(t, time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC), sessions[0].StartTime)
	assert.Equal(t, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC), sessions[1].StartTime)
	assert.Equal(t, time.Hour, sessions[1].EndTime.Sub(sessions[1].StartTime))
}
