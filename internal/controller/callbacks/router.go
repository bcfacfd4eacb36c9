package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/trainer"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/trainer/weekdialog"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	case data == weekdialog.Noop:
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Trainer: Onboarding =====
	case data == trainer.BecomeTrainer:
		trainer.HandleBecomeTrainerConfirm(ctx, b, callback, h)
	case data == trainer.CancelBecomeTrainer:
		trainer.HandleBecomeTrainerCancel(ctx, b, callback, h)
	case data == trainer.OpenWeekConfig:
		trainer.HandleOpenWeekConfig(ctx, b, callback, h)

	// ===== Trainer: Schedule =====
	case data == trainer.RefreshSchedule:
		trainer.HandleRefreshSchedule(ctx, b, callback, h)
	case strings.HasPrefix(data, trainer.CancelSession):
		trainer.HandleCancelSession(ctx, b, callback, h)
	case strings.HasPrefix(data, trainer.ConfirmCancelSession):
		trainer.HandleConfirmCancelSession(ctx, b, callback, h)

	// ===== Trainer: Week Config Dialog =====
	case strings.HasPrefix(data, weekdialog.Prefix):
		routeWeekDialog(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}

func routeWeekDialog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	case data == weekdialog.DurationMenu:
		weekdialog.HandleDurationMenu(ctx, b, callback, h)
	case data == weekdialog.CustomDuration:
		weekdialog.HandleCustomDuration(ctx, b, callback, h)
	case data == weekdialog.Back:
		weekdialog.HandleBack(ctx, b, callback, h)
	case data == weekdialog.Save:
		weekdialog.HandleSave(ctx, b, callback, h)
	case data == weekdialog.Cancel:
		weekdialog.HandleCancel(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.DayView):
		weekdialog.HandleDayView(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.ToggleDay):
		weekdialog.HandleToggleDay(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.StartMenu):
		weekdialog.HandleStartMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.SetStart):
		weekdialog.HandleSetStart(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.EndMenu):
		weekdialog.HandleEndMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.SetEnd):
		weekdialog.HandleSetEnd(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.ToggleSlot):
		weekdialog.HandleToggleSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.SelectAll):
		weekdialog.HandleSelectAll(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.ClearSlots):
		weekdialog.HandleClearSlots(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.PruneDay):
		weekdialog.HandlePruneDay(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.EnterName):
		weekdialog.HandleEnterName(ctx, b, callback, h)
	case strings.HasPrefix(data, weekdialog.SetDuration):
		weekdialog.HandleSetDuration(ctx, b, callback, h)
	default:
		h.Logger.Warn("Unknown week config callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
