package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/trainer/weekdialog"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/state"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleWeekConfig обрабатывает команду /weekconfig - открывает диалог настройки недели
func (h *Handlers) HandleWeekConfig(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	cfg, err := h.trainerService.LoadWeekConfig(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to load week config",
			zap.Int64("trainer_id", user.ID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.BeginWeekConfig(telegramID, user.ID, cfg)

	h.logger.Info("Week config dialog opened",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("trainer_id", user.ID),
		zap.Int("enabled_days", cfg.EnabledDays()))

	text, kb := weekdialog.RenderOverview(cfg)
	if msg := h.sendMessage(ctx, b, chatID, text, kb); msg != nil {
		h.stateManager.SetMessage(telegramID, chatID, msg.ID)
	}
}

// handleSeriesNameStep принимает название занятия для дня недели
func (h *Handlers) handleSeriesNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	rawWeekday, _ := h.stateManager.GetData(telegramID, state.DataWeekday)
	weekday, ok := rawWeekday.(int)
	if !ok {
		h.logger.Error("Missing weekday for series name step",
			zap.Int64("telegram_id", telegramID),
			zap.Any("data", rawWeekday))
		h.stateManager.SetState(telegramID, state.StateWeekConfig)
		h.sendError(ctx, b, chatID, "❌ Ошибка: день недели не найден. Выберите день ещё раз.")
		return
	}

	name, err := parseSeriesName(update.Message.Text)
	if err != nil {
		text := "❌ Название не может быть пустым. Попробуйте ещё раз или отправьте /cancel."
		if errors.Is(err, weekconfig.ErrSeriesNameTooLong) {
			text = fmt.Sprintf("❌ Название слишком длинное (максимум %d символов). Попробуйте ещё раз.", SeriesNameMaxLength)
		}
		h.sendError(ctx, b, chatID, text)
		return
	}

	err = h.stateManager.UpdateWeekConfig(telegramID, func(cfg *weekconfig.Config) error {
		return cfg.SetSeriesName(weekday, name)
	})
	if err != nil {
		h.handleDialogError(ctx, b, update, err)
		return
	}

	h.stateManager.SetState(telegramID, state.StateWeekConfig)

	h.logger.Info("Series name set",
		zap.Int64("telegram_id", telegramID),
		zap.Int("weekday", weekday),
		zap.String("series_name", name))

	cfg, ok := h.stateManager.WeekConfig(telegramID)
	if !ok {
		h.sendError(ctx, b, chatID, common.ErrorMessage(state.ErrNoWeekConfig))
		return
	}

	text, kb, err := weekdialog.RenderDay(cfg, weekday, 0)
	if err != nil {
		h.handleDialogError(ctx, b, update, err)
		return
	}
	h.redrawDialog(ctx, b, telegramID, chatID, text, kb)
}

// handleDurationStep принимает длительность занятия в минутах
func (h *Handlers) handleDurationStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	minutes, err := parseDuration(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, fmt.Sprintf(
			"❌ Введите целое число минут от %d до %d. Например: 50",
			ClassMinDuration, ClassMaxDuration))
		return
	}

	orphans := 0
	err = h.stateManager.UpdateWeekConfig(telegramID, func(cfg *weekconfig.Config) error {
		cfg.SetClassDuration(minutes)
		for _, r := range cfg.Rows() {
			orphans += len(r.Orphans(cfg.ClassDuration))
		}
		return nil
	})
	if err != nil {
		h.handleDialogError(ctx, b, update, err)
		return
	}

	h.stateManager.SetState(telegramID, state.StateWeekConfig)

	h.logger.Info("Class duration set",
		zap.Int64("telegram_id", telegramID),
		zap.Int("class_duration", minutes),
		zap.Int("orphans", orphans))

	cfg, ok := h.stateManager.WeekConfig(telegramID)
	if !ok {
		h.sendError(ctx, b, chatID, common.ErrorMessage(state.ErrNoWeekConfig))
		return
	}

	text, kb := weekdialog.RenderOverview(cfg)
	h.redrawDialog(ctx, b, telegramID, chatID, text, kb)
}

// redrawDialog переносит диалог в новое сообщение под ответом пользователя
func (h *Handlers) redrawDialog(ctx context.Context, b *bot.Bot, telegramID, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	// У старого сообщения убираем клавиатуру, чтобы кнопки были только в одном месте
	if dialogChatID, messageID, ok := h.stateManager.Message(telegramID); ok {
		_, err := b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
			ChatID:    dialogChatID,
			MessageID: messageID,
		})
		if err != nil && !common.IsMessageNotModifiedError(err) {
			h.logger.Debug("Failed to drop dialog keyboard",
				zap.Int64("telegram_id", telegramID),
				zap.Error(err))
		}
	}

	if msg := h.sendMessage(ctx, b, chatID, text, kb); msg != nil {
		h.stateManager.SetMessage(telegramID, chatID, msg.ID)
	}
}

func (h *Handlers) handleDialogError(ctx context.Context, b *bot.Bot, update *models.Update, err error) {
	if !errors.Is(err, state.ErrNoWeekConfig) && !errors.Is(err, weekconfig.ErrInvalidWeekday) {
		h.logger.Error("Week config dialog step failed",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.Error(err))
	}
	if errors.Is(err, state.ErrNoWeekConfig) {
		h.stateManager.ClearState(update.Message.From.ID)
	}
	h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
}
