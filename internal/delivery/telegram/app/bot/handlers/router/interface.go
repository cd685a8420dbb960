// internal/delivery/telegram/app/bot/handlers/router/interface.go
package router

import (
	"context"

	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers"
)

// Router интерфейс маршрутизатора хэндлеров
type Router interface {
	RegisterHandler(handler handlers.Handler) // автоматическая регистрация по GetType()
	Handle(ctx context.Context, command string, params handlers.HandlerParams) (handlers.HandlerResult, error)
	GetHandler(command string) (handlers.Handler, bool)
	GetCommands() []string
}
