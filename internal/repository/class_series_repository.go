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

const classSeriesColumns = `id, group_id, trainer_id, weekday, series_name, start_hour, start_minute, duration_minutes, is_active, created_at, updated_at`

// ClassSeriesRepository управляет регулярными занятиями в базе данных
type ClassSeriesRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewClassSeriesRepository создаёт новый репозиторий
func NewClassSeriesRepository(pool *pgxpool.Pool, logger *zap.Logger) *ClassSeriesRepository {
	return &ClassSeriesRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// GetByTrainerID получает все регулярные занятия тренера
func (r *ClassSeriesRepository) GetByTrainerID(ctx context.Context, trainerID int64) ([]*model.ClassSeries, error) {
	query := `
		SELECT ` + classSeriesColumns + `
		FROM class_series
		WHERE trainer_id = $1
		ORDER BY weekday, start_hour, start_minute
	`

	rows, err := r.Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get class series by trainer: %w", err)
	}

	return scanClassSeries(rows)
}

// GetAllActive получает все активные регулярные занятия
func (r *ClassSeriesRepository) GetAllActive(ctx context.Context) ([]*model.ClassSeries, error) {
	query := `
		SELECT ` + classSeriesColumns + `
		FROM class_series
		WHERE is_active = true
		ORDER BY trainer_id, weekday, start_hour, start_minute
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all active class series: %w", err)
	}

	series, err := scanClassSeries(rows)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Loaded active class series", zap.Int("count", len(series)))
	return series, nil
}

func scanClassSeries(rows pgx.Rows) ([]*model.ClassSeries, error) {
	defer rows.Close()

	var series []*model.ClassSeries
	for rows.Next() {
		s := &model.ClassSeries{}
		err := rows.Scan(
			&s.ID,
			&s.GroupID,
			&s.TrainerID,
			&s.Weekday,
			&s.SeriesName,
			&s.StartHour,
			&s.StartMinute,
			&s.DurationMinutes,
			&s.IsActive,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan class series: %w", err)
		}
		series = append(series, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate class series: %w", err)
	}

	return series, nil
}
