package trainer

import (
	"context"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Trainer Onboarding Handlers
// ========================

const (
	BecomeTrainer       = "become_trainer"
	CancelBecomeTrainer = "cancel_become_trainer"
	OpenWeekConfig      = "open_week_config"
)

// HandleBecomeTrainerConfirm обрабатывает подтверждение стать тренером
func HandleBecomeTrainerConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	telegramID := callback.From.ID

	user, err := h.UserService.MakeTrainer(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to make trainer", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	// Удаляем старое сообщение
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🗓 Настроить неделю", OpenWeekConfig)).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text: "🏋️ Поздравляем! Теперь вы тренер!\n\n" +
			"Вы можете:\n" +
			"• Настроить рабочие дни и смены\n" +
			"• Выбрать время занятий в сетке смены\n" +
			"• Смотреть и отменять занятия через /myschedule\n\n" +
			"Настроить неделю прямо сейчас?",
		ReplyMarkup: kb,
	})

	h.Logger.Info("User became trainer",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID))

	common.AnswerCallback(ctx, b, callback.ID, "✅ Вы стали тренером!")
}

// HandleBecomeTrainerCancel обрабатывает отмену становления тренером
func HandleBecomeTrainerCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	// Удаляем сообщение
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   "✅ Операция отменена.\n\nВы всегда можете стать тренером позже через /becometrainer",
	})

	common.AnswerCallback(ctx, b, callback.ID, "Отменено")
}

// HandleOpenWeekConfig открывает настройку недели из сообщения онбординга
func HandleOpenWeekConfig(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil || h.HandleWeekConfig == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	// Команда ожидает сообщение от пользователя, а не от бота
	h.HandleWeekConfig(ctx, b, &models.Update{
		Message: &models.Message{
			ID:   msg.ID,
			Chat: msg.Chat,
			From: &callback.From,
		},
	})
}
