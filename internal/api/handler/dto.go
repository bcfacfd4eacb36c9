package handler

import (
	"time"

	"github.com/google/uuid"
)

// SlotPreviewRequest параметры предпросмотра сетки смены
type SlotPreviewRequest struct {
	ShiftStart string `json:"shift_start" binding:"required"`
	ShiftEnd   string `json:"shift_end" binding:"required"`
	Duration   int    `json:"duration" binding:"required"`
}

// SlotPreviewResponse времена начала занятий в смене
type SlotPreviewResponse struct {
	Slots []string `json:"slots"`
	Count int      `json:"count"`
}

// WeekConfigDTO настройка недели в API
type WeekConfigDTO struct {
	ClassDuration int          `json:"class_duration" binding:"required"`
	Days          []WeekDayDTO `json:"days"`
}

// WeekDayDTO настройка дня; Candidates и Orphans только в ответе
type WeekDayDTO struct {
	Weekday    int      `json:"weekday"`
	Enabled    bool     `json:"enabled"`
	SeriesName string   `json:"series_name"`
	ShiftStart string   `json:"shift_start"`
	ShiftEnd   string   `json:"shift_end"`
	Selected   []string `json:"selected"`
	Candidates []string `json:"candidates,omitempty"`
	Orphans    []string `json:"orphans,omitempty"`
}

// SaveResultDTO итог сохранения недели
type SaveResultDTO struct {
	GroupID         uuid.UUID `json:"group_id"`
	SeriesCount     int       `json:"series_count"`
	Pruned          int       `json:"pruned"`
	SessionsCreated int       `json:"sessions_created"`
}

// SessionDTO конкретное занятие
type SessionDTO struct {
	ID         int64     `json:"id"`
	TrainerID  int64     `json:"trainer_id"`
	SeriesID   *int64    `json:"series_id,omitempty"`
	SeriesName string    `json:"series_name"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
}

// MeResponse данные вызывающего из токена
type MeResponse struct {
	UserID     int64     `json:"user_id"`
	TelegramID int64     `json:"telegram_id"`
	Role       string    `json:"role"`
	ServerTime time.Time `json:"server_time"`
}
