// internal/delivery/telegram/app/bot/handlers/commands/help/handler.go
package help

import (
	"context"

	"catalog-lookup-bot/internal/delivery/telegram/app/bot/constants"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers/base"
)

// helpCommandHandler реализация обработчика команды /help
type helpCommandHandler struct {
	*base.BaseHandler
}

// NewHandler создает обработчик команды /help (или /start с тем же текстом)
func NewHandler(command string) handlers.Handler {
	return &helpCommandHandler{
		BaseHandler: &base.BaseHandler{
			Name:    command + "_command_handler",
			Command: command,
			Type:    handlers.TypeCommand,
		},
	}
}

// Execute выполняет обработку команды /help
func (h *helpCommandHandler) Execute(_ context.Context, _ handlers.HandlerParams) (handlers.HandlerResult, error) {
	return handlers.HandlerResult{Message: constants.HelpMessage}, nil
}
