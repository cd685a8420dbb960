// internal/delivery/telegram/app/bot/handlers/commands/search/handler.go
package search

import (
	"context"

	"catalog-lookup-bot/internal/core/domain/lookup"
	core "catalog-lookup-bot/internal/core/domain/search"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers/base"
	"catalog-lookup-bot/pkg/logger"

	"github.com/google/uuid"
)

// InvocationHandler обрабатывает разобранный вызов
type InvocationHandler interface {
	HandleInvocation(ctx context.Context, inv core.Invocation, r lookup.Responder) error
}

// ResponderFunc канал ответа для чата
type ResponderFunc func(chatID int64) lookup.Responder

// searchCommandHandler обработчик /search и /lookup
type searchCommandHandler struct {
	*base.BaseHandler
	service   InvocationHandler
	responder ResponderFunc
}

// NewHandler создает обработчик поисковой команды command (search или lookup)
func NewHandler(command string, service InvocationHandler, responder ResponderFunc) handlers.Handler {
	return &searchCommandHandler{
		BaseHandler: &base.BaseHandler{
			Name:    command + "_command_handler",
			Command: command,
			Type:    handlers.TypeCommand,
		},
		service:   service,
		responder: responder,
	}
}

// Execute разбирает команду и передает ее сервису поиска.
// Ответ сервис отправляет сам, поэтому результат пустой.
func (h *searchCommandHandler) Execute(ctx context.Context, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	inv := ParseInvocation(params.Text)
	inv.Command = h.Command
	inv.UserID = h.UserKey(params)
	inv.Token = uuid.NewString()

	logger.Debug("🔎 /%s от %d в чате %d: %q (token %s)", h.Command, params.UserID, params.ChatID, params.Text, inv.Token)

	if err := h.service.HandleInvocation(ctx, inv, h.responder(params.ChatID)); err != nil {
		return handlers.HandlerResult{}, err
	}
	return handlers.HandlerResult{}, nil
}
