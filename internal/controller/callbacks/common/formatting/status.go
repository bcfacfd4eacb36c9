package formatting

import "github.com/Freeeeeet/gym_scheduler/internal/model"

// SessionStatusDisplay представляет отображение статуса занятия
type SessionStatusDisplay struct {
	Emoji string
	Text  string
}

// GetSessionStatusDisplay возвращает emoji и текст для статуса занятия
func GetSessionStatusDisplay(status model.SessionStatus) SessionStatusDisplay {
	displays := map[model.SessionStatus]SessionStatusDisplay{
		model.SessionStatusScheduled: {"🟢", "Запланировано"},
		model.SessionStatusCanceled:  {"⚫️", "Отменено"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return SessionStatusDisplay{"❓", "Неизвестно"}
}
