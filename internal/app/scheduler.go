package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionGenerator создаёт занятия из регулярных серий
type SessionGenerator interface {
	GenerateSessionsForAllSeries(ctx context.Context, weeksAhead int) error
}

// DialogSweeper удаляет брошенные диалоги
type DialogSweeper interface {
	Sweep(maxIdle time.Duration) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	generator     SessionGenerator
	sweeper       DialogSweeper
	weeksAhead    int
	dialogIdle    time.Duration
	generateEvery time.Duration
	logger        *zap.Logger
	stopChan      chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(generator SessionGenerator, sweeper DialogSweeper, weeksAhead int, dialogIdle time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		generator:     generator,
		sweeper:       sweeper,
		weeksAhead:    weeksAhead,
		dialogIdle:    dialogIdle,
		generateEvery: 24 * time.Hour,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Int("weeks_ahead", s.weeksAhead),
		zap.Duration("dialog_idle", s.dialogIdle))

	s.wg.Add(2)
	go s.runSessionGenerationTask(ctx)
	go s.runDialogSweepTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// runSessionGenerationTask периодически создаёт занятия из серий
func (s *Scheduler) runSessionGenerationTask(ctx context.Context) {
	defer s.wg.Done()

	// Первый запуск сразу при старте
	s.generateSessions(ctx)

	ticker := time.NewTicker(s.generateEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.generateSessions(ctx)
		case <-s.stopChan:
			s.logger.Info("Session generation task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session generation task cancelled")
			return
		}
	}
}

func (s *Scheduler) generateSessions(ctx context.Context) {
	s.logger.Info("Starting automatic session generation")

	if err := s.generator.GenerateSessionsForAllSeries(ctx, s.weeksAhead); err != nil {
		s.logger.Error("Failed to generate sessions", zap.Error(err))
		return
	}

	s.logger.Info("Automatic session generation completed")
}

// runDialogSweepTask удаляет диалоги, в которых давно не было действий
func (s *Scheduler) runDialogSweepTask(ctx context.Context) {
	defer s.wg.Done()

	interval := s.dialogIdle / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.sweeper.Sweep(s.dialogIdle); n > 0 {
				s.logger.Info("Idle dialogs removed", zap.Int("count", n))
			}
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}
