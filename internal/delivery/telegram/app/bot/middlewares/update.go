// internal/delivery/telegram/app/bot/middlewares/update.go
package middlewares

import (
	"errors"
	"strings"

	"catalog-lookup-bot/internal/delivery/telegram"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers/commands/search"
	"catalog-lookup-bot/pkg/logger"
)

// ErrSkipUpdate обновление не адресовано боту (обычный текст, сообщения ботов и т.п.)
var ErrSkipUpdate = errors.New("update skipped")

// UpdateMiddleware извлекает из обновления маршрут и параметры хэндлера
type UpdateMiddleware struct {
	botUsername string
}

// NewUpdateMiddleware создает middleware разбора обновлений
func NewUpdateMiddleware() *UpdateMiddleware {
	return &UpdateMiddleware{}
}

// SetBotUsername задает имя бота из getMe; команды с упоминанием другого
// бота после этого пропускаются. Вызывается до начала приема обновлений.
func (m *UpdateMiddleware) SetBotUsername(username string) {
	m.botUsername = strings.TrimPrefix(username, "@")
}

// ProcessUpdate возвращает ключ маршрута (/команда или callback data) и параметры
func (m *UpdateMiddleware) ProcessUpdate(update *telegram.Update) (string, handlers.HandlerParams, error) {
	params := handlers.HandlerParams{UpdateID: update.UpdateID}

	switch {
	case update.Message != nil:
		msg := update.Message
		if msg.From == nil || msg.From.IsBot {
			return "", params, ErrSkipUpdate
		}

		text := strings.TrimSpace(msg.Text)
		if !strings.HasPrefix(text, "/") {
			return "", params, ErrSkipUpdate
		}

		params.ChatID = msg.Chat.ID
		params.ChatType = msg.Chat.Type
		params.MessageID = msg.MessageID
		params.UserID = msg.From.ID
		params.Username = msg.From.Username
		params.Text = text

		token := strings.Fields(text)[0]
		if !m.addressedToBot(token) {
			logger.Debug("🔍 ProcessUpdate: команда %s адресована другому боту", token)
			return "", params, ErrSkipUpdate
		}

		route := "/" + search.CommandName(token)
		logger.Debug("🔍 ProcessUpdate: команда %s от %d в чате %d", route, params.UserID, params.ChatID)
		return route, params, nil

	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.Message == nil {
			// inline-режим: сообщения нет, листать нечего
			return "", params, ErrSkipUpdate
		}

		params.ChatID = cb.Message.Chat.ID
		params.ChatType = cb.Message.Chat.Type
		params.MessageID = cb.Message.MessageID
		params.UserID = cb.From.ID
		params.Username = cb.From.Username
		params.Data = cb.Data
		params.CallbackID = cb.ID

		logger.Debug("🔍 ProcessUpdate: callback %q от %d в чате %d", cb.Data, params.UserID, params.ChatID)
		return cb.Data, params, nil
	}

	return "", params, ErrSkipUpdate
}

func (m *UpdateMiddleware) addressedToBot(token string) bool {
	mention := search.CommandMention(token)
	if mention == "" || m.botUsername == "" {
		return true
	}
	return strings.EqualFold(mention, m.botUsername)
}
