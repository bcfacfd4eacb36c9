package handlers

import (
	"bytes"
	"context"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/trainer"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBecomeTrainer обрабатывает команду /becometrainer
func (h *Handlers) HandleBecomeTrainer(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	if user.CanTrain() {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"✅ Вы уже тренер!\n\nИспользуйте:\n/weekconfig - Настроить неделю\n/myschedule - Мои занятия", nil)
		return
	}

	// Создаём inline клавиатуру с подтверждением
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✅ Да, стать тренером", trainer.BecomeTrainer)).
		Row(keyboard.Button("❌ Отмена", trainer.CancelBecomeTrainer)).
		Build()

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🏋️ Стать тренером\n\n"+
			"Как тренер вы сможете:\n"+
			"• Настроить рабочую смену на каждый день недели\n"+
			"• Выбрать время начала занятий из сетки смены\n"+
			"• Получать занятия на несколько недель вперёд автоматически\n\n"+
			"Продолжить?",
		kb)
}

// HandleMySchedule обрабатывает команду /myschedule
func (h *Handlers) HandleMySchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	sessions, err := h.trainerService.GetUpcomingSessions(ctx, user.ID, h.scheduleDays)
	if err != nil {
		h.logger.Error("Failed to get upcoming sessions",
			zap.Int64("trainer_id", user.ID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить расписание.")
		return
	}

	h.logger.Info("HandleMySchedule called",
		zap.Int64("trainer_id", user.ID),
		zap.Int("sessions", len(sessions)))

	// Картинка текущей недели, если есть что показать
	if len(sessions) > 0 {
		now := h.now()
		imageData, err := common.GenerateWeekImage(now, now, sessions)
		if err != nil {
			h.logger.Warn("Failed to generate week image", zap.Error(err))
		} else {
			_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
				ChatID: chatID,
				Photo:  &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
			})
			if err != nil {
				h.logger.Warn("Failed to send week image", zap.Error(err))
			}
		}
	}

	text, kb := trainer.BuildScheduleScreen(sessions, h.scheduleDays)
	h.sendMessage(ctx, b, chatID, text, kb)
}
