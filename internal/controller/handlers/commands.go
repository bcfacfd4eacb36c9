package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/state"
	"github.com/Freeeeeet/gym_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	user := update.Message.From

	// Регистрируем пользователя
	registeredUser, err := h.userService.RegisterUser(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот расписания студии. Тренеры настраивают здесь рабочую неделю, "+
			"а бот сам создаёт занятия на несколько недель вперёд.\n\n"+
			"Доступные команды:\n"+
			"/help - Справка\n\n"+
			"Для тренеров:\n"+
			"/becometrainer - Стать тренером\n"+
			"/weekconfig - Настроить рабочую неделю\n"+
			"/myschedule - Мои занятия",
		html.EscapeString(registeredUser.FirstName),
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/help - Показать эту справку\n" +
		"/cancel - Отменить текущую операцию\n\n" +
		"Для тренеров:\n" +
		"/becometrainer - Зарегистрироваться как тренер\n" +
		"/weekconfig - Смена, длительность и время занятий по дням недели\n" +
		"/myschedule - Ближайшие занятия\n" +
		"/token - Токен для API студии\n\n" +
		"В /weekconfig включите нужные дни, задайте начало и конец смены " +
		"и отметьте ✅ время начала занятий. Занятия, которые больше не помещаются " +
		"в смену, помечаются ⚠️ и удаляются при сохранении."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	// Убираем клавиатуру у сообщения диалога, чтобы кнопки не висели
	if chatID, messageID, ok := h.stateManager.Message(telegramID); ok {
		_, err := b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
			ChatID:    chatID,
			MessageID: messageID,
		})
		if err != nil {
			h.logger.Debug("Failed to drop dialog keyboard", zap.Error(err))
		}
	}

	// Очищаем состояние
	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.", nil)
}

// HandleToken обрабатывает команду /token - выдаёт токен для HTTP API
func (h *Handlers) HandleToken(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	token, expiresAt, err := h.authService.IssueToken(ctx, update.Message.From.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.sendError(ctx, b, update.Message.Chat.ID, "❌ Пользователь не найден. Используйте /start для регистрации.")
			return
		}
		h.logger.Error("Failed to issue token",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось выдать токен. Попробуйте позже.")
		return
	}

	text := fmt.Sprintf("🔑 <b>Токен API</b>\n\n<code>%s</code>\n\n"+
		"Действует до %s.\n"+
		"Передавайте его в заголовке <code>Authorization: Bearer &lt;токен&gt;</code>.",
		token, formatting.FormatDateTime(expiresAt.In(h.now().Location())))

	h.sendMessage(ctx, b, update.Message.Chat.ID, text, nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	// Обрабатываем в зависимости от состояния
	switch currentState {
	case state.StateNone, state.StateWeekConfig:
		// Текст не ожидается
		return
	case state.StateWeekConfigSeriesName:
		h.handleSeriesNameStep(ctx, b, update)
	case state.StateWeekConfigDuration:
		h.handleDurationStep(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
