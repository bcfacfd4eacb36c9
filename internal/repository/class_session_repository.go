package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"github.com/Freeeeeet/gym_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const classSessionColumns = `id, trainer_id, series_id, series_name, start_time, end_time, status, created_at`

type ClassSessionRepository struct {
	*base.Repository
}

func NewClassSessionRepository(pool *pgxpool.Pool) *ClassSessionRepository {
	return &ClassSessionRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новое занятие
func (r *ClassSessionRepository) Create(ctx context.Context, session *model.ClassSession) error {
	query := `
		INSERT INTO class_sessions (trainer_id, series_id, series_name, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		session.TrainerID,
		session.SeriesID,
		session.SeriesName,
		session.StartTime,
		session.EndTime,
		session.Status,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		return fmt.Errorf("create class session: %w", err)
	}

	return nil
}

// GetByID получает занятие по ID
func (r *ClassSessionRepository) GetByID(ctx context.Context, id int64) (*model.ClassSession, error) {
	query := `SELECT ` + classSessionColumns + ` FROM class_sessions WHERE id = $1`

	var s model.ClassSession
	err := r.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.TrainerID,
		&s.SeriesID,
		&s.SeriesName,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&s.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get class session by id: %w", err)
	}

	return &s, nil
}

// GetByTrainerID получает занятия тренера за период
func (r *ClassSessionRepository) GetByTrainerID(ctx context.Context, trainerID int64, from, to time.Time) ([]*model.ClassSession, error) {
	query := `
		SELECT ` + classSessionColumns + `
		FROM class_sessions
		WHERE trainer_id = $1
		  AND start_time >= $2
		  AND start_time < $3
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, trainerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get class sessions by trainer: %w", err)
	}

	return scanClassSessions(rows)
}

// GetUpcoming получает запланированные занятия всех тренеров за период
func (r *ClassSessionRepository) GetUpcoming(ctx context.Context, from, to time.Time) ([]*model.ClassSession, error) {
	query := `
		SELECT ` + classSessionColumns + `
		FROM class_sessions
		WHERE status = 'scheduled'
		  AND start_time >= $1
		  AND start_time < $2
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("get upcoming class sessions: %w", err)
	}

	return scanClassSessions(rows)
}

// Cancel отменяет занятие
func (r *ClassSessionRepository) Cancel(ctx context.Context, id int64) error {
	query := `UPDATE class_sessions SET status = 'canceled' WHERE id = $1`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("cancel class session: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("class session not found")
	}

	return nil
}

// SessionExists проверяет есть ли у тренера занятие в указанное время
func (r *ClassSessionRepository) SessionExists(ctx context.Context, trainerID int64, startTime time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM class_sessions
			WHERE trainer_id = $1 AND start_time = $2
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, trainerID, startTime).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check class session exists: %w", err)
	}

	return exists, nil
}

func scanClassSessions(rows pgx.Rows) ([]*model.ClassSession, error) {
	defer rows.Close()

	var sessions []*model.ClassSession
	for rows.Next() {
		var s model.ClassSession
		err := rows.Scan(
			&s.ID,
			&s.TrainerID,
			&s.SeriesID,
			&s.SeriesName,
			&s.StartTime,
			&s.EndTime,
			&s.Status,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan class session: %w", err)
		}
		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate class sessions: %w", err)
	}

	return sessions, nil
}
