package model

import "time"

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCanceled  SessionStatus = "canceled"
)

// ClassSession конкретное занятие, созданное из ClassSeries
type ClassSession struct {
	ID         int64         `json:"id"`
	TrainerID  int64         `json:"trainer_id"`
	SeriesID   *int64        `json:"series_id"` // nil если серия удалена
	SeriesName string        `json:"series_name"`
	StartTime  time.Time     `json:"start_time"`
	EndTime    time.Time     `json:"end_time"`
	Status     SessionStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}
