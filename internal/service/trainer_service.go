package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaveResult итог сохранения недели
type SaveResult struct {
	GroupID         uuid.UUID
	SeriesCount     int
	Pruned          int
	SessionsCreated int
}

type TrainerService struct {
	userRepo        UserRepository
	weekRepo        WeekConfigRepository
	seriesRepo      ClassSeriesRepository
	sessionRepo     ClassSessionRepository
	defaultDuration int
	weeksAhead      int
	location        *time.Location
	now             func() time.Time
	logger          *zap.Logger
}

func NewTrainerService(
	userRepo UserRepository,
	weekRepo WeekConfigRepository,
	seriesRepo ClassSeriesRepository,
	sessionRepo ClassSessionRepository,
	defaultDuration int,
	weeksAhead int,
	logger *zap.Logger,
) *TrainerService {
	return &TrainerService{
		userRepo:        userRepo,
		weekRepo:        weekRepo,
		seriesRepo:      seriesRepo,
		sessionRepo:     sessionRepo,
		defaultDuration: defaultDuration,
		weeksAhead:      weeksAhead,
		location:        time.Local,
		now:             time.Now,
		logger:          logger,
	}
}

// DefaultClassDuration длительность занятия для тренера без сохранённой недели
func (s *TrainerService) DefaultClassDuration() int {
	return s.defaultDuration
}

// requireTrainer проверяет что пользователь существует и может вести занятия
func (s *TrainerService) requireTrainer(ctx context.Context, trainerID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get trainer: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	if !user.CanTrain() {
		return nil, ErrNotTrainer
	}

	return user, nil
}

// LoadWeekConfig собирает свежую настройку недели из сохранённого расписания
func (s *TrainerService) LoadWeekConfig(ctx context.Context, trainerID int64) (*weekconfig.Config, error) {
	if _, err := s.requireTrainer(ctx, trainerID); err != nil {
		return nil, err
	}

	days, err := s.weekRepo.GetDays(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get week days: %w", err)
	}

	series, err := s.seriesRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get class series: %w", err)
	}

	duration := s.defaultDuration
	if len(days) > 0 {
		duration = days[0].ClassDuration
	}

	cfg := weekconfig.New(duration)

	for _, d := range days {
		row := weekconfig.NewRow(d.Weekday)
		row.Enabled = d.Enabled
		row.SeriesName = d.SeriesName
		row.SetShift(weekconfig.Clock(d.ShiftStartMinute), weekconfig.Clock(d.ShiftEndMinute))
		if err := cfg.UpdateRow(row); err != nil {
			s.logger.Warn("Skipping invalid week day",
				zap.Int64("trainer_id", trainerID),
				zap.Int("weekday", d.Weekday),
				zap.Error(err))
		}
	}

	for _, rs := range series {
		if !rs.IsActive {
			continue
		}

		row, err := cfg.Row(rs.Weekday)
		if err != nil {
			s.logger.Warn("Skipping class series with invalid weekday",
				zap.Int64("series_id", rs.ID),
				zap.Int("weekday", rs.Weekday))
			continue
		}

		// Серия без сохранённого дня: день считается включённым
		if !hasDay(days, rs.Weekday) {
			row.Enabled = true
			row.SeriesName = rs.SeriesName
		}

		start := weekconfig.NewClock(rs.StartHour, rs.StartMinute)
		row.SelectedStarts[start.String()] = struct{}{}
		if err := cfg.UpdateRow(row); err != nil {
			s.logger.Warn("Skipping class series",
				zap.Int64("series_id", rs.ID),
				zap.Int("weekday", rs.Weekday),
				zap.Error(err))
		}
	}

	s.logger.Debug("Week config loaded",
		zap.Int64("trainer_id", trainerID),
		zap.Int("days", len(days)),
		zap.Int("series", len(series)),
		zap.Int("class_duration", cfg.ClassDuration))

	return cfg, nil
}

func hasDay(days []*model.WeekDay, weekday int) bool {
	for _, d := range days {
		if d.Weekday == weekday {
			return true
		}
	}
	return false
}

// SaveWeekConfig сохраняет неделю тренера и создаёт занятия на weeksAhead недель вперёд.
// Перед сохранением выбранные слоты вне сетки смены удаляются.
func (s *TrainerService) SaveWeekConfig(ctx context.Context, trainerID int64, cfg *weekconfig.Config) (*SaveResult, error) {
	if _, err := s.requireTrainer(ctx, trainerID); err != nil {
		return nil, err
	}

	pruned := cfg.Prune()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	groupID := uuid.New()

	var days []*model.WeekDay
	for _, r := range cfg.Rows() {
		days = append(days, &model.WeekDay{
			TrainerID:        trainerID,
			Weekday:          r.Weekday,
			Enabled:          r.Enabled,
			SeriesName:       r.SeriesName,
			ShiftStartMinute: int(r.ShiftStart),
			ShiftEndMinute:   int(r.ShiftEnd),
			ClassDuration:    cfg.ClassDuration,
		})
	}

	var series []*model.ClassSeries
	for _, e := range cfg.Entries() {
		series = append(series, &model.ClassSeries{
			GroupID:         groupID,
			TrainerID:       trainerID,
			Weekday:         e.Weekday,
			SeriesName:      e.SeriesName,
			StartHour:       e.Start.Hour(),
			StartMinute:     e.Start.Minute(),
			DurationMinutes: e.DurationMinutes,
			IsActive:        true,
		})
	}

	if err := s.weekRepo.Replace(ctx, trainerID, days, series); err != nil {
		return nil, fmt.Errorf("replace week config: %w", err)
	}

	created := 0
	for _, rs := range series {
		count, err := s.generateSessionsForSeries(ctx, rs, s.weeksAhead)
		if err != nil {
			// Неделя уже сохранена, занятия догенерирует планировщик
			s.logger.Error("Failed to generate initial sessions",
				zap.Error(err),
				zap.Int64("series_id", rs.ID))
			continue
		}
		created += count
	}

	s.logger.Info("Week config saved",
		zap.Int64("trainer_id", trainerID),
		zap.String("group_id", groupID.String()),
		zap.Int("enabled_days", cfg.EnabledDays()),
		zap.Int("series", len(series)),
		zap.Int("pruned", pruned),
		zap.Int("sessions_created", created))

	return &SaveResult{
		GroupID:         groupID,
		SeriesCount:     len(series),
		Pruned:          pruned,
		SessionsCreated: created,
	}, nil
}

// generateSessionsForSeries создаёт занятия серии на указанное количество недель
func (s *TrainerService) generateSessionsForSeries(ctx context.Context, rs *model.ClassSeries, weeksAhead int) (int, error) {
	now := s.now().In(s.location)
	weekday := time.Weekday(rs.Weekday)

	count := 0
	daysToCheck := weeksAhead * 7

	for i := 0; i < daysToCheck; i++ {
		date := now.AddDate(0, 0, i)
		if date.Weekday() != weekday {
			continue
		}

		startTime := time.Date(date.Year(), date.Month(), date.Day(),
			rs.StartHour, rs.StartMinute, 0, 0, s.location)
		endTime := startTime.Add(time.Duration(rs.DurationMinutes) * time.Minute)

		// Пропускаем прошедшие занятия
		if startTime.Before(now) {
			continue
		}

		exists, err := s.sessionRepo.SessionExists(ctx, rs.TrainerID, startTime)
		if err != nil {
			return count, fmt.Errorf("check session exists: %w", err)
		}

		if exists {
			continue
		}

		seriesID := rs.ID
		session := &model.ClassSession{
			TrainerID:  rs.TrainerID,
			SeriesID:   &seriesID,
			SeriesName: rs.SeriesName,
			StartTime:  startTime,
			EndTime:    endTime,
			Status:     model.SessionStatusScheduled,
		}

		if err := s.sessionRepo.Create(ctx, session); err != nil {
			s.logger.Warn("Failed to create class session",
				zap.Error(err),
				zap.Time("start_time", startTime))
			continue
		}

		count++
	}

	return count, nil
}

// GenerateSessionsForAllSeries создаёт занятия для всех активных серий.
// Вызывается планировщиком раз в сутки.
func (s *TrainerService) GenerateSessionsForAllSeries(ctx context.Context, weeksAhead int) error {
	series, err := s.seriesRepo.GetAllActive(ctx)
	if err != nil {
		return fmt.Errorf("get all active class series: %w", err)
	}

	total := 0
	for _, rs := range series {
		count, err := s.generateSessionsForSeries(ctx, rs, weeksAhead)
		if err != nil {
			s.logger.Error("Failed to generate sessions for class series",
				zap.Error(err),
				zap.Int64("series_id", rs.ID))
		}
		total += count
	}

	s.logger.Info("Generated sessions for all class series",
		zap.Int("total_series", len(series)),
		zap.Int("total_sessions_created", total))

	return nil
}

// GetUpcomingSessions занятия тренера на ближайшие days дней
func (s *TrainerService) GetUpcomingSessions(ctx context.Context, trainerID int64, days int) ([]*model.ClassSession, error) {
	from := s.now()
	to := from.AddDate(0, 0, days)
	return s.sessionRepo.GetByTrainerID(ctx, trainerID, from, to)
}

// GetStudioSessions запланированные занятия всех тренеров на ближайшие days дней
func (s *TrainerService) GetStudioSessions(ctx context.Context, days int) ([]*model.ClassSession, error) {
	from := s.now()
	to := from.AddDate(0, 0, days)
	return s.sessionRepo.GetUpcoming(ctx, from, to)
}

// CancelSession отменяет занятие тренера
func (s *TrainerService) CancelSession(ctx context.Context, trainerID, sessionID int64) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get class session: %w", err)
	}

	if session == nil {
		return ErrSessionNotFound
	}

	if session.TrainerID != trainerID {
		return ErrNotOwner
	}

	if err := s.sessionRepo.Cancel(ctx, sessionID); err != nil {
		return fmt.Errorf("cancel class session: %w", err)
	}

	s.logger.Info("Class session canceled",
		zap.Int64("session_id", sessionID),
		zap.Int64("trainer_id", trainerID))

	return nil
}
