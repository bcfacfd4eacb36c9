package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"github.com/Freeeeeet/gym_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// WeekConfigRepository хранит настройку недели тренера и её регулярные занятия
type WeekConfigRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewWeekConfigRepository создаёт новый репозиторий
func NewWeekConfigRepository(pool *pgxpool.Pool, logger *zap.Logger) *WeekConfigRepository {
	return &WeekConfigRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// GetDays получает сохранённые дни недели тренера
func (r *WeekConfigRepository) GetDays(ctx context.Context, trainerID int64) ([]*model.WeekDay, error) {
	query := `
		SELECT trainer_id, weekday, enabled, series_name, shift_start_minute, shift_end_minute, class_duration, updated_at
		FROM week_config_days
		WHERE trainer_id = $1
		ORDER BY weekday
	`

	rows, err := r.Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get week config days: %w", err)
	}
	defer rows.Close()

	var days []*model.WeekDay
	for rows.Next() {
		d := &model.WeekDay{}
		err := rows.Scan(
			&d.TrainerID,
			&d.Weekday,
			&d.Enabled,
			&d.SeriesName,
			&d.ShiftStartMinute,
			&d.ShiftEndMinute,
			&d.ClassDuration,
			&d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan week config day: %w", err)
		}
		days = append(days, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate week config days: %w", err)
	}

	return days, nil
}

// Replace атомарно заменяет настройку недели тренера.
// Будущие запланированные занятия старых серий удаляются.
// Прошедшие и отменённые остаются без series_id, отменённые не создаются заново.
func (r *WeekConfigRepository) Replace(ctx context.Context, trainerID int64, days []*model.WeekDay, series []*model.ClassSeries) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM class_sessions
			WHERE trainer_id = $1 AND series_id IS NOT NULL AND start_time > now()
			  AND status = 'scheduled'
		`, trainerID)
		if err != nil {
			return fmt.Errorf("delete future sessions: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM class_series WHERE trainer_id = $1`, trainerID); err != nil {
			return fmt.Errorf("delete class series: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM week_config_days WHERE trainer_id = $1`, trainerID); err != nil {
			return fmt.Errorf("delete week config days: %w", err)
		}

		for _, d := range days {
			err := tx.QueryRow(ctx, `
				INSERT INTO week_config_days (trainer_id, weekday, enabled, series_name, shift_start_minute, shift_end_minute, class_duration)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING updated_at
			`,
				trainerID,
				d.Weekday,
				d.Enabled,
				d.SeriesName,
				d.ShiftStartMinute,
				d.ShiftEndMinute,
				d.ClassDuration,
			).Scan(&d.UpdatedAt)
			if err != nil {
				return fmt.Errorf("insert week config day %d: %w", d.Weekday, err)
			}
			d.TrainerID = trainerID
		}

		for _, s := range series {
			err := tx.QueryRow(ctx, `
				INSERT INTO class_series (group_id, trainer_id, weekday, series_name, start_hour, start_minute, duration_minutes, is_active)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id, created_at, updated_at
			`,
				s.GroupID,
				trainerID,
				s.Weekday,
				s.SeriesName,
				s.StartHour,
				s.StartMinute,
				s.DurationMinutes,
				s.IsActive,
			).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
			if err != nil {
				return fmt.Errorf("insert class series: %w", err)
			}
			s.TrainerID = trainerID
		}

		r.logger.Debug("Week config replaced",
			zap.Int64("trainer_id", trainerID),
			zap.Int("days", len(days)),
			zap.Int("series", len(series)))

		return nil
	})
}
