package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/state"
	"github.com/Freeeeeet/gym_scheduler/internal/service"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	assert.Contains(t, ErrorMessage(fmt.Errorf("load: %w", service.ErrNotTrainer)), "тренерам")
	assert.Contains(t, ErrorMessage(state.ErrNoWeekConfig), "/weekconfig")
	assert.Contains(t, ErrorMessage(weekconfig.ErrInvalidShift), "смены")
	assert.Equal(t, "❌ Произошла ошибка", ErrorMessage(errors.New("db down")))
}

func TestParseIntArgs(t *testing.T) {
	args, err := ParseIntArgs("wc_slot:1:540", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 540}, args)

	_, err = ParseIntArgs("wc_slot:1", 2)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseIntArgs("wc_slot:x:540", 2)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback("cancel_session:42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseIDFromCallback("cancel_session")
	assert.Error(t, err)
}
