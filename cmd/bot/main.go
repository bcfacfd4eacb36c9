package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_scheduler/internal/api/handler"
	"github.com/Freeeeeet/gym_scheduler/internal/api/router"
	"github.com/Freeeeeet/gym_scheduler/internal/app"
	"github.com/Freeeeeet/gym_scheduler/internal/auth"
	"github.com/Freeeeeet/gym_scheduler/internal/config"
	"github.com/Freeeeeet/gym_scheduler/internal/controller"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/state"
	"github.com/Freeeeeet/gym_scheduler/internal/repository"
	"github.com/Freeeeeet/gym_scheduler/internal/service"
)

const (
	// Горизонт /myschedule в днях
	scheduleDays = 7

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting gym scheduler",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.Int("class_duration", cfg.ClassDuration),
		zap.Int("weeks_ahead", cfg.WeeksAhead))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Application stopped with error", zap.Error(err))
	}

	logger.Info("Application stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// База данных
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("✅ Connected to database")

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	weekRepo := repository.NewWeekConfigRepository(pool, logger)
	seriesRepo := repository.NewClassSeriesRepository(pool, logger)
	sessionRepo := repository.NewClassSessionRepository(pool)

	// Сервисы
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, cfg.AdminTelegramIDs, logger)
	trainerService := service.NewTrainerService(
		userRepo,
		weekRepo,
		seriesRepo,
		sessionRepo,
		cfg.ClassDuration,
		cfg.WeeksAhead,
		logger,
	)
	authService := service.NewAuthService(userRepo, tokens, logger)

	// Состояния диалогов живут в памяти процесса
	stateManager := state.NewManager()

	// Telegram бот
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return err
	}

	botController := controller.NewBotController(
		b,
		userService,
		trainerService,
		authService,
		stateManager,
		scheduleDays,
		logger,
	)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично для работы бота
		logger.Warn("Failed to register bot commands menu", zap.Error(err))
	}

	// Фоновые задачи
	scheduler := app.NewScheduler(trainerService, stateManager, cfg.WeeksAhead, cfg.DialogIdleTimeout, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// HTTP API
	engine := router.Setup(handler.NewHandler(trainerService, logger), tokens, cfg.IsProduction(), logger)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	go botController.Start(ctx)

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	return nil
}
