package handlers

import "github.com/Freeeeeet/gym_scheduler/internal/weekconfig"

// Константы валидации текстового ввода в диалоге настройки недели
const (
	// Название занятия
	SeriesNameMaxLength = weekconfig.MaxSeriesNameLength

	// Длительность занятия (в минутах)
	ClassMinDuration = weekconfig.MinClassDuration
	ClassMaxDuration = weekconfig.MaxClassDuration
)
