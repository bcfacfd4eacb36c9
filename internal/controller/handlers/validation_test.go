package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

func TestParseSeriesName(t *testing.T) {
	name, err := parseSeriesName("  Функциональный   тренинг \n")
	require.NoError(t, err)
	assert.Equal(t, "Функциональный тренинг", name)

	_, err = parseSeriesName("   ")
	assert.ErrorIs(t, err, weekconfig.ErrEmptySeriesName)

	// длина считается в символах, а не в байтах
	name, err = parseSeriesName(strings.Repeat("я", SeriesNameMaxLength))
	require.NoError(t, err)
	assert.Len(t, []rune(name), SeriesNameMaxLength)

	_, err = parseSeriesName(strings.Repeat("я", SeriesNameMaxLength+1))
	assert.ErrorIs(t, err, weekconfig.ErrSeriesNameTooLong)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"45", 45, false},
		{" 90 ", 90, false},
		{"50 мин", 50, false},
		{"15", 15, false},
		{"480", 480, false},
		{"14", 0, true},
		{"0", 0, true},
		{"-30", 0, true},
		{"481", 0, true},
		{"час", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDuration(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
