package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

var ErrInvalidDuration = errors.New("invalid class duration")

// parseSeriesName проверяет название занятия, введённое тренером
func parseSeriesName(text string) (string, error) {
	return weekconfig.NormalizeSeriesName(text)
}

// parseDuration проверяет длительность занятия в минутах
func parseDuration(text string) (int, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "мин")
	minutes, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, ErrInvalidDuration
	}
	if minutes < ClassMinDuration || minutes > ClassMaxDuration {
		return 0, ErrInvalidDuration
	}
	return minutes, nil
}
