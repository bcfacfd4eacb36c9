package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassSeries шаблон регулярного занятия тренера
type ClassSeries struct {
	ID              int64     `json:"id"`
	GroupID         uuid.UUID `json:"group_id"` // общий для всех серий одного сохранения недели
	TrainerID       int64     `json:"trainer_id"`
	Weekday         int       `json:"weekday"` // 0 = Sunday, 6 = Saturday
	SeriesName      string    `json:"series_name"`
	StartHour       int       `json:"start_hour"`
	StartMinute     int       `json:"start_minute"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// WeekDay сохранённая настройка дня недели тренера
type WeekDay struct {
	TrainerID        int64     `json:"trainer_id"`
	Weekday          int       `json:"weekday"`
	Enabled          bool      `json:"enabled"`
	SeriesName       string    `json:"series_name"`
	ShiftStartMinute int       `json:"shift_start_minute"`
	ShiftEndMinute   int       `json:"shift_end_minute"`
	ClassDuration    int       `json:"class_duration"`
	UpdatedAt        time.Time `json:"updated_at"`
}
