package common

import (
	"errors"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/state"
	"github.com/Freeeeeet/gym_scheduler/internal/service"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, service.ErrNotTrainer):
		return "❌ Эта функция доступна только тренерам"
	case errors.Is(err, service.ErrSessionNotFound):
		return "❌ Занятие не найдено"
	case errors.Is(err, service.ErrNotOwner):
		return "❌ Это занятие другого тренера"
	case errors.Is(err, state.ErrNoWeekConfig):
		return "⌛ Настройка недели устарела. Откройте /weekconfig заново"
	case errors.Is(err, weekconfig.ErrInvalidShift):
		return "❌ Начало смены должно быть раньше конца во всех включённых днях"
	case errors.Is(err, weekconfig.ErrInvalidWeekday):
		return "❌ Неверный день недели"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка"
	}
}
