package state

import (
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Диалог настройки недели
	StateWeekConfig           UserState = "week_config"
	StateWeekConfigSeriesName UserState = "week_config_series_name"
	StateWeekConfigDuration   UserState = "week_config_duration"
)

// Ключи временных данных диалога
const (
	DataTrainerID = "trainer_id"
	DataWeekday   = "weekday"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога

	// Настройка недели, пока открыт диалог /weekconfig
	WeekConfig *weekconfig.Config

	// Сообщение с клавиатурой диалога
	ChatID    int64
	MessageID int

	UpdatedAt time.Time
}

func newUserData(now time.Time) *UserData {
	return &UserData{
		State:     StateNone,
		Data:      make(map[string]interface{}),
		UpdatedAt: now,
	}
}
