// internal/delivery/telegram/app/bot/message_sender/responder.go
package message_sender

import (
	"context"

	"catalog-lookup-bot/internal/core/domain/presentation"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/constants"
)

// ChatResponder отвечает на вызов команды в конкретном чате
type ChatResponder struct {
	sender *MessageSenderImpl
	chatID int64
}

// Acknowledge показывает "печатает", пока идет поиск
func (r *ChatResponder) Acknowledge(ctx context.Context) error {
	return r.sender.SendChatAction(ctx, r.chatID, constants.ChatActionTyping)
}

// FollowUp отправляет ответ в чат
func (r *ChatResponder) FollowUp(ctx context.Context, msg presentation.Message) (presentation.MessageRef, error) {
	return r.sender.Send(ctx, r.chatID, msg)
}

// ChatID чат, в который уходят ответы
func (r *ChatResponder) ChatID() int64 {
	return r.chatID
}
