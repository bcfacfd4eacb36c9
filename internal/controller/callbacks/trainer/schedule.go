package trainer

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	CancelSession        = "cancel_session:"         // cancel_session:123
	ConfirmCancelSession = "confirm_cancel_session:" // confirm_cancel_session:123
	RefreshSchedule      = "schedule_refresh"

	// Максимум кнопок отмены под расписанием
	maxCancelButtons = 10
)

// BuildScheduleScreen список ближайших занятий тренера с кнопками отмены
func BuildScheduleScreen(sessions []*model.ClassSession, days int) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>Занятия на %d %s</b>\n", days, formatting.PluralizeDays(days))

	kb := keyboard.NewBuilder()

	if len(sessions) == 0 {
		sb.WriteString("\nЗанятий нет.\nНастройте рабочую неделю: /weekconfig")
		kb.Row(keyboard.Button("🔄 Обновить", RefreshSchedule))
		return sb.String(), kb.Build()
	}

	var cancelButtons []models.InlineKeyboardButton
	lastDay := ""
	for _, s := range sessions {
		day := s.StartTime.Format("2006-01-02")
		if day != lastDay {
			fmt.Fprintf(&sb, "\n<b>%s %s</b>\n",
				formatting.GetWeekdayShortName(int(s.StartTime.Weekday())),
				s.StartTime.Format("02.01"))
			lastDay = day
		}

		display := formatting.GetSessionStatusDisplay(s.Status)
		name := s.SeriesName
		if name == "" {
			name = "Занятие"
		}
		fmt.Fprintf(&sb, "%s %s %s\n", display.Emoji, formatting.FormatTimeRange(s.StartTime, s.EndTime), name)

		if s.Status == model.SessionStatusScheduled && len(cancelButtons) < maxCancelButtons {
			cancelButtons = append(cancelButtons, keyboard.Button(
				fmt.Sprintf("❌ %s", s.StartTime.Format("02.01 15:04")),
				fmt.Sprintf("%s%d", CancelSession, s.ID)))
		}
	}

	kb.Grid(cancelButtons, 2)
	kb.Row(keyboard.Button("🔄 Обновить", RefreshSchedule))

	return sb.String(), kb.Build()
}

// BuildCancelConfirmScreen подтверждение отмены занятия
func BuildCancelConfirmScreen(session *model.ClassSession) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("Отменить занятие?\n\n📅 %s\n🕐 %s",
		formatting.FormatDate(session.StartTime),
		formatting.FormatTimeRange(session.StartTime, session.EndTime))
	if session.SeriesName != "" {
		text += "\n🏋️ " + session.SeriesName
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Да, отменить", fmt.Sprintf("%s%d", ConfirmCancelSession, session.ID)),
			keyboard.Button("⬅️ Нет", RefreshSchedule),
		).
		Build()

	return text, kb
}

// HandleRefreshSchedule перерисовывает список занятий
func HandleRefreshSchedule(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithTrainer(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if showSchedule(hc) {
			hc.Answer("")
		}
	})
}

// HandleCancelSession спрашивает подтверждение отмены
func HandleCancelSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithTrainer(ctx, b, callback, h, func(hc *common.HandlerContext) {
		sessionID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "parse session id")
			return
		}

		session := findSession(hc, sessionID)
		if session == nil {
			hc.AnswerAlert("❌ Занятие не найдено")
			return
		}

		text, kb := BuildCancelConfirmScreen(session)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to edit message", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmCancelSession отменяет занятие
func HandleConfirmCancelSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithTrainer(ctx, b, callback, h, func(hc *common.HandlerContext) {
		sessionID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "parse session id")
			return
		}

		if err := h.TrainerService.CancelSession(hc.Ctx, hc.User.ID, sessionID); err != nil {
			common.HandleError(hc, err, "cancel session")
			return
		}

		if showSchedule(hc) {
			hc.Answer("✅ Занятие отменено")
		}
	})
}

// findSession ищет занятие среди ближайших занятий тренера
func findSession(hc *common.HandlerContext, sessionID int64) *model.ClassSession {
	sessions, err := hc.Handler.TrainerService.GetUpcomingSessions(hc.Ctx, hc.User.ID, hc.Handler.ScheduleDays)
	if err != nil {
		hc.Handler.Logger.Error("Failed to get sessions", zap.Error(err))
		return nil
	}
	for _, s := range sessions {
		if s.ID == sessionID {
			return s
		}
	}
	return nil
}

// showSchedule перерисовывает сообщение; false если ответ на callback уже отправлен
func showSchedule(hc *common.HandlerContext) bool {
	sessions, err := hc.Handler.TrainerService.GetUpcomingSessions(hc.Ctx, hc.User.ID, hc.Handler.ScheduleDays)
	if err != nil {
		common.HandleError(hc, err, "get upcoming sessions")
		return false
	}

	text, kb := BuildScheduleScreen(sessions, hc.Handler.ScheduleDays)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to edit schedule message",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	}
	return true
}
