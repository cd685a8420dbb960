// internal/delivery/telegram/app/bot/handlers/commands/ping/handler.go
package ping

import (
	"context"

	"catalog-lookup-bot/internal/delivery/telegram/app/bot/constants"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers/base"
)

// pingCommandHandler отвечает на /ping
type pingCommandHandler struct {
	*base.BaseHandler
}

// NewHandler создает обработчик команды /ping
func NewHandler() handlers.Handler {
	return &pingCommandHandler{
		BaseHandler: &base.BaseHandler{
			Name:    "ping_command_handler",
			Command: constants.CommandPing,
			Type:    handlers.TypeCommand,
		},
	}
}

func (h *pingCommandHandler) Execute(_ context.Context, _ handlers.HandlerParams) (handlers.HandlerResult, error) {
	return handlers.HandlerResult{Message: constants.PongMessage}, nil
}
