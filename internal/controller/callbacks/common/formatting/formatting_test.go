package formatting

import (
	"testing"

	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluralizeClasses(t *testing.T) {
	assert.Equal(t, "занятие", PluralizeClasses(1))
	assert.Equal(t, "занятия", PluralizeClasses(3))
	assert.Equal(t, "занятий", PluralizeClasses(11))
	assert.Equal(t, "занятие", PluralizeClasses(21))
	assert.Equal(t, "занятий", PluralizeClasses(0))
}

func TestFormatWeekdayRange(t *testing.T) {
	assert.Equal(t, "Пн-Ср, Пт", FormatWeekdayRange([]int{3, 1, 2, 5}))
	assert.Equal(t, "Сб, Вс", FormatWeekdayRange([]int{0, 6}))
	assert.Equal(t, "Пн-Вс", FormatWeekdayRange([]int{0, 1, 2, 3, 4, 5, 6}))
	assert.Equal(t, "", FormatWeekdayRange(nil))
}

func TestFormatClassRangeWraps(t *testing.T) {
	assert.Equal(t, "23:30-00:30", FormatClassRange(weekconfig.NewClock(23, 30), 60))
}

func TestGroupEntries(t *testing.T) {
	nine := weekconfig.NewClock(9, 0)
	ten := weekconfig.NewClock(10, 0)

	entries := []weekconfig.Entry{
		{Weekday: 3, SeriesName: "Йога", Start: nine, DurationMinutes: 60},
		{Weekday: 1, SeriesName: "Йога", Start: ten, DurationMinutes: 60},
		{Weekday: 1, SeriesName: "Йога", Start: nine, DurationMinutes: 60},
		{Weekday: 3, SeriesName: "Йога", Start: ten, DurationMinutes: 60},
		{Weekday: 0, SeriesName: "Бокс", Start: nine, DurationMinutes: 60},
	}

	groups := GroupEntries(entries)
	require.Len(t, groups, 2)

	assert.Equal(t, []int{1, 3}, groups[0].Weekdays)
	assert.Equal(t, "Пн, Ср · Йога · 09:00-10:00, 10:00-11:00", FormatSeriesGroup(groups[0]))
	assert.Equal(t, "Вс · Бокс · 09:00-10:00", FormatSeriesGroup(groups[1]))
}
