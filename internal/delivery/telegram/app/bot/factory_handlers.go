// internal/delivery/telegram/app/bot/factory_handlers.go
package bot

import (
	"catalog-lookup-bot/internal/core/domain/lookup"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/constants"
	page_navigation_handler "catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers/callbacks/page_navigation"
	help_command "catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers/commands/help"
	ping_command "catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers/commands/ping"
	search_command "catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers/commands/search"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers/router"
	"catalog-lookup-bot/pkg/logger"
)

// RegisterAllHandlers создает роутер со всеми хэндлерами бота
func RegisterAllHandlers(deps Dependencies) router.Router {
	logger.Info("🔧 Регистрация хэндлеров...")

	r := router.NewRouter()

	responder := func(chatID int64) lookup.Responder {
		return deps.Sender.ForChat(chatID)
	}

	// Команды
	r.RegisterHandler(search_command.NewHandler(constants.CommandSearch, deps.Lookup, responder))
	r.RegisterHandler(search_command.NewHandler(constants.CommandLookup, deps.Lookup, responder))
	r.RegisterHandler(ping_command.NewHandler())
	r.RegisterHandler(help_command.NewHandler(constants.CommandHelp))
	r.RegisterHandler(help_command.NewHandler(constants.CommandStart))

	// Callback'и
	r.RegisterHandler(page_navigation_handler.NewHandler(deps.Pager, deps.Sender))

	logger.Info("✅ Зарегистрировано команд: %d", len(r.GetCommands()))
	return r
}
