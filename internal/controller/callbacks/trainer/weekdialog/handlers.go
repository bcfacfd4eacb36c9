package weekdialog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/state"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// withDialog проверяет что диалог настройки недели открыт
func withDialog(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*common.HandlerContext),
) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	if _, ok := h.StateManager.WeekConfig(hc.TelegramID); !ok {
		hc.AnswerAlert(common.ErrorMessage(state.ErrNoWeekConfig))
		return
	}

	// Любая кнопка прерывает ожидание текстового ввода
	if h.StateManager.GetState(hc.TelegramID) != state.StateWeekConfig {
		h.StateManager.SetState(hc.TelegramID, state.StateWeekConfig)
	}

	handler(hc)
}

// mutate изменяет настройку недели; при ошибке отвечает пользователю
func mutate(hc *common.HandlerContext, operation string, fn func(cfg *weekconfig.Config) error) bool {
	if err := hc.Handler.StateManager.UpdateWeekConfig(hc.TelegramID, fn); err != nil {
		common.HandleError(hc, err, operation)
		return false
	}
	return true
}

func snapshot(hc *common.HandlerContext) (*weekconfig.Config, bool) {
	cfg, ok := hc.Handler.StateManager.WeekConfig(hc.TelegramID)
	if !ok {
		hc.AnswerAlert(common.ErrorMessage(state.ErrNoWeekConfig))
	}
	return cfg, ok
}

func edit(hc *common.HandlerContext, text string, kb *models.InlineKeyboardMarkup) {
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to edit week config message",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	}
}

// showDay перерисовывает экран дня и отвечает на callback
func showDay(hc *common.HandlerContext, weekday, page int, answer string) {
	cfg, ok := snapshot(hc)
	if !ok {
		return
	}

	text, kb, err := RenderDay(cfg, weekday, page)
	if err != nil {
		common.HandleError(hc, err, "render day")
		return
	}

	edit(hc, text, kb)
	hc.Answer(answer)
}

// showOverview перерисовывает экран недели и отвечает на callback
func showOverview(hc *common.HandlerContext, answer string) {
	cfg, ok := snapshot(hc)
	if !ok {
		return
	}

	text, kb := RenderOverview(cfg)
	edit(hc, text, kb)
	hc.Answer(answer)
}

func parseArgs(hc *common.HandlerContext, n int) ([]int, bool) {
	args, err := common.ParseIntArgs(hc.Callback.Data, n)
	if err != nil {
		hc.Handler.Logger.Error("Invalid callback format",
			zap.String("data", hc.Callback.Data),
			zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return nil, false
	}
	return args, true
}

func parseClock(hc *common.HandlerContext, minute int) (weekconfig.Clock, bool) {
	if minute < 0 || minute >= weekconfig.MinutesPerDay {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return weekconfig.ZeroClock, false
	}
	return weekconfig.Clock(minute), true
}

// orphanAnswer подсказка после изменения смены или длительности
func orphanAnswer(cfg *weekconfig.Config, weekday int) string {
	row, err := cfg.Row(weekday)
	if err != nil {
		return ""
	}
	if n := len(row.Orphans(cfg.ClassDuration)); n > 0 {
		return fmt.Sprintf("⚠️ Вне сетки: %d %s", n, formatting.PluralizeClasses(n))
	}
	return ""
}

// HandleDayView показывает экран дня
func HandleDayView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, ok := parseArgs(hc, 2)
		if !ok {
			return
		}
		showDay(hc, args[0], args[1], "")
	})
}

// HandleToggleDay включает или выключает день
func HandleToggleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, ok := parseArgs(hc, 1)
		if !ok {
			return
		}
		weekday := args[0]

		if !mutate(hc, "toggle day", func(cfg *weekconfig.Config) error {
			row, err := cfg.Row(weekday)
			if err != nil {
				return err
			}
			return cfg.SetEnabled(weekday, !row.Enabled)
		}) {
			return
		}

		showDay(hc, weekday, 0, "")
	})
}

// HandleStartMenu показывает выбор начала смены
func HandleStartMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handleShiftMenu(ctx, b, callback, h, false)
}

// HandleEndMenu показывает выбор конца смены
func HandleEndMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handleShiftMenu(ctx, b, callback, h, true)
}

func handleShiftMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, end bool) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, ok := parseArgs(hc, 1)
		if !ok {
			return
		}

		cfg, ok := snapshot(hc)
		if !ok {
			return
		}

		text, kb, err := RenderShiftPicker(cfg, args[0], end)
		if err != nil {
			common.HandleError(hc, err, "render shift picker")
			return
		}

		edit(hc, text, kb)
		hc.Answer("")
	})
}

// HandleSetStart устанавливает начало смены
func HandleSetStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handleSetShift(ctx, b, callback, h, false)
}

// HandleSetEnd устанавливает конец смены
func HandleSetEnd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handleSetShift(ctx, b, callback, h, true)
}

func handleSetShift(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, end bool) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, ok := parseArgs(hc, 2)
		if !ok {
			return
		}
		weekday := args[0]

		clock, ok := parseClock(hc, args[1])
		if !ok {
			return
		}

		var answer string
		if !mutate(hc, "set shift", func(cfg *weekconfig.Config) error {
			var err error
			if end {
				err = cfg.SetShiftEnd(weekday, clock)
			} else {
				err = cfg.SetShiftStart(weekday, clock)
			}
			if err != nil {
				return err
			}
			answer = orphanAnswer(cfg, weekday)
			return nil
		}) {
			return
		}

		showDay(hc, weekday, 0, answer)
	})
}

// HandleToggleSlot выбирает или снимает занятие
func HandleToggleSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, ok := parseArgs(hc, 2)
		if !ok {
			return
		}
		weekday := args[0]

		clock, ok := parseClock(hc, args[1])
		if !ok {
			return
		}
		label := clock.String()

		page := 0
		if !mutate(hc, "toggle slot", func(cfg *weekconfig.Config) error {
			if err := cfg.ToggleSlot(weekday, label); err != nil {
				return err
			}
			row, _ := cfg.Row(weekday)
			page = PageOf(row, cfg.ClassDuration, label)
			return nil
		}) {
			return
		}

		showDay(hc, weekday, page, "")
	})
}

// HandleSelectAll выбирает все занятия сетки
func HandleSelectAll(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, ok := parseArgs(hc, 1)
		if !ok {
			return
		}

		if !mutate(hc, "select all", func(cfg *weekconfig.Config) error {
			return cfg.SelectAll(args[0])
		}) {
			return
		}

		showDay(hc, args[0], 0, "")
	})
}

// HandleClearSlots снимает все занятия дня
func HandleClearSlots(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, ok := parseArgs(hc, 1)
		if !ok {
			return
		}

		if !mutate(hc, "clear slots", func(cfg *weekconfig.Config) error {
			return cfg.ClearSelection(args[0])
		}) {
			return
		}

		showDay(hc, args[0], 0, "")
	})
}

// HandlePruneDay удаляет занятия вне сетки смены
func HandlePruneDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, ok := parseArgs(hc, 1)
		if !ok {
			return
		}

		removed := 0
		if !mutate(hc, "prune day", func(cfg *weekconfig.Config) error {
			n, err := cfg.PruneDay(args[0])
			removed = n
			return err
		}) {
			return
		}

		showDay(hc, args[0], 0, fmt.Sprintf("🗑 Удалено: %d", removed))
	})
}

// HandleEnterName просит ввести название занятия текстом
func HandleEnterName(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, ok := parseArgs(hc, 1)
		if !ok {
			return
		}
		weekday := args[0]
		if weekday < 0 || weekday >= weekconfig.DaysInWeek {
			common.HandleError(hc, weekconfig.ErrInvalidWeekday, "enter name")
			return
		}

		hc.SetState(state.StateWeekConfigSeriesName)
		hc.SetData(state.DataWeekday, weekday)
		if hc.Message != nil {
			h.StateManager.SetMessage(hc.TelegramID, hc.ChatID, hc.Message.ID)
		}

		kb := keyboard.NewBuilder().
			Row(keyboard.BackButton(dayData(weekday, 0))).
			Build()

		edit(hc, fmt.Sprintf("✏️ Отправьте название занятия для дня «%s».\n\nНапример: Йога, Функциональный тренинг",
			formatting.GetWeekdayName(weekday)), kb)
		hc.Answer("")
	})
}

// HandleDurationMenu показывает выбор длительности
func HandleDurationMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		cfg, ok := snapshot(hc)
		if !ok {
			return
		}

		text, kb := RenderDurationPicker(cfg)
		edit(hc, text, kb)
		hc.Answer("")
	})
}

// HandleSetDuration устанавливает длительность занятия
func HandleSetDuration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, ok := parseArgs(hc, 1)
		if !ok {
			return
		}

		orphans := 0
		if !mutate(hc, "set duration", func(cfg *weekconfig.Config) error {
			cfg.SetClassDuration(args[0])
			for _, r := range cfg.Rows() {
				orphans += len(r.Orphans(cfg.ClassDuration))
			}
			return nil
		}) {
			return
		}

		answer := ""
		if orphans > 0 {
			answer = fmt.Sprintf("⚠️ Вне сетки: %d %s", orphans, formatting.PluralizeClasses(orphans))
		}
		showOverview(hc, answer)
	})
}

// HandleCustomDuration просит ввести длительность текстом
func HandleCustomDuration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.SetState(state.StateWeekConfigDuration)
		if hc.Message != nil {
			h.StateManager.SetMessage(hc.TelegramID, hc.ChatID, hc.Message.ID)
		}

		kb := keyboard.NewBuilder().
			Row(keyboard.BackButton(DurationMenu)).
			Build()

		edit(hc, fmt.Sprintf("✏️ Отправьте длительность занятия в минутах (не меньше %d).", weekconfig.MinClassDuration), kb)
		hc.Answer("")
	})
}

// HandleBack возвращает к экрану недели
func HandleBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		showOverview(hc, "")
	})
}

// HandleSave сохраняет неделю и закрывает диалог
func HandleSave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDialog(ctx, b, callback, h, func(hc *common.HandlerContext) {
		cfg, ok := snapshot(hc)
		if !ok {
			return
		}

		rawID, _ := hc.GetData(state.DataTrainerID)
		trainerID, ok := rawID.(int64)
		if !ok {
			common.HandleError(hc, state.ErrNoWeekConfig, "get trainer id")
			return
		}

		res, err := h.TrainerService.SaveWeekConfig(hc.Ctx, trainerID, cfg)
		if err != nil {
			if errors.Is(err, weekconfig.ErrInvalidShift) {
				hc.AnswerAlert(common.ErrorMessage(err))
				return
			}
			common.HandleError(hc, err, "save week config")
			return
		}

		hc.ClearState()

		h.Logger.Info("Week config saved from dialog",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("trainer_id", trainerID),
			zap.Int("series", res.SeriesCount),
			zap.Int("sessions_created", res.SessionsCreated))

		edit(hc, RenderSaved(cfg, res), nil)
		hc.Answer("✅ Сохранено")
	})
}

// HandleCancel закрывает диалог без сохранения
func HandleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.ClearState()

	edit(hc, "❌ Настройка недели отменена. Изменения не сохранены.", nil)
	hc.Answer("Отменено")
}
