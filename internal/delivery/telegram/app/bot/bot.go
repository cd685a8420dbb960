// internal/delivery/telegram/app/bot/bot.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"catalog-lookup-bot/internal/core/domain/lookup"
	"catalog-lookup-bot/internal/core/domain/pagination"
	"catalog-lookup-bot/internal/core/domain/search"
	"catalog-lookup-bot/internal/delivery/telegram"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/constants"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers/router"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/message_sender"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/middlewares"
	telegram_http "catalog-lookup-bot/internal/delivery/telegram/app/http_client"
	"catalog-lookup-bot/internal/infrastructure/config"
	"catalog-lookup-bot/pkg/logger"
	"catalog-lookup-bot/pkg/utils"
)

// updateTimeout сколько может обрабатываться одно обновление
const updateTimeout = 2 * time.Minute

// Dependencies зависимости для TelegramBot
type Dependencies struct {
	Client *telegram_http.TelegramClient
	Sender *message_sender.MessageSenderImpl
	Lookup *lookup.Service
	Pager  *pagination.Controller
}

// TelegramBot - бот поиска по каталогу
type TelegramBot struct {
	config *config.Config

	telegramClient *telegram_http.TelegramClient
	messageSender  message_sender.MessageSender
	pager          *pagination.Controller

	router  router.Router
	updates *middlewares.UpdateMiddleware

	pollingHandler *PollingClient
	webhookServer  *WebhookServer

	// mu защищает stopping от гонки с wg.Add
	mu       sync.RWMutex
	stopping bool
	inFlight sync.WaitGroup

	startupTime time.Time
}

// NewTelegramBot создает новый экземпляр TelegramBot
func NewTelegramBot(cfg *config.Config, deps Dependencies) (*TelegramBot, error) {
	if deps.Client == nil || deps.Sender == nil {
		return nil, fmt.Errorf("telegram client и sender обязательны")
	}
	if deps.Lookup == nil || deps.Pager == nil {
		return nil, fmt.Errorf("lookup service и pager обязательны")
	}

	b := &TelegramBot{
		config:         cfg,
		telegramClient: deps.Client,
		messageSender:  deps.Sender,
		pager:          deps.Pager,
		router:         RegisterAllHandlers(deps),
		updates:        middlewares.NewUpdateMiddleware(),
		startupTime:    time.Now(),
	}

	if cfg.IsWebhookMode() {
		b.webhookServer = NewWebhookServer(cfg, b)
	} else {
		source := telegram_http.NewPollingClient(cfg.GetBotAPIBaseURL(), cfg.Polling.Timeout)
		b.pollingHandler = NewPollingClient(source, b, cfg.Polling.Timeout,
			time.Duration(cfg.Polling.RetryInterval)*time.Second)
	}

	return b, nil
}

// Start публикует меню команд и запускает прием обновлений
func (b *TelegramBot) Start(ctx context.Context) error {
	me, err := b.telegramClient.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("проверка токена бота: %w", err)
	}
	logger.Info("🤖 Бот @%s (id %d)", me.Username, me.ID)
	b.updates.SetBotUsername(me.Username)

	if err := b.SetMyCommands(ctx); err != nil {
		logger.Warn("Не удалось установить меню команд: %v", err)
		logger.Info("Бот будет работать, но меню команд в Telegram может не отображаться")
	}

	if b.webhookServer != nil {
		url := b.config.GetWebhookURL()
		if err := b.telegramClient.SetWebhook(ctx, url, b.config.Webhook.SecretToken); err != nil {
			return fmt.Errorf("установка webhook %s: %w", url, err)
		}
		logger.Info("🌐 Webhook установлен: %s", url)
		return b.webhookServer.Start()
	}

	if err := b.telegramClient.DeleteWebhook(ctx); err != nil {
		logger.Warn("Не удалось снять webhook перед polling: %v", err)
	}
	return b.pollingHandler.Start()
}

// Stop останавливает прием обновлений и ждет обработки уже принятых
func (b *TelegramBot) Stop(ctx context.Context) error {
	b.mu.Lock()
	b.stopping = true
	b.mu.Unlock()

	var stopErr error
	if b.pollingHandler != nil {
		stopErr = b.pollingHandler.Stop()
	}
	if b.webhookServer != nil {
		stopErr = b.webhookServer.Stop(ctx)
	}

	done := make(chan struct{})
	go func() {
		b.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("🛑 Telegram бот остановлен")
	case <-ctx.Done():
		return fmt.Errorf("ожидание обработки обновлений: %w", ctx.Err())
	}
	return stopErr
}

// Dispatch обрабатывает обновление в отдельной горутине
func (b *TelegramBot) Dispatch(update telegram.Update) {
	b.mu.RLock()
	if b.stopping {
		b.mu.RUnlock()
		logger.Debug("Бот останавливается, обновление %d пропущено", update.UpdateID)
		return
	}
	b.inFlight.Add(1)
	b.mu.RUnlock()

	go func() {
		defer b.inFlight.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("❌ Паника при обработке обновления %d: %v", update.UpdateID, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
		defer cancel()

		if err := b.HandleUpdate(ctx, &update); err != nil {
			logger.Error("❌ Ошибка обработки обновления %d: %v", update.UpdateID, err)
		}
	}()
}

// HandleUpdate обрабатывает обновление от Telegram синхронно
func (b *TelegramBot) HandleUpdate(ctx context.Context, update *telegram.Update) error {
	route, params, err := b.updates.ProcessUpdate(update)
	if errors.Is(err, middlewares.ErrSkipUpdate) {
		return nil
	}
	if err != nil {
		return err
	}

	result, err := b.router.Handle(ctx, route, params)
	if errors.Is(err, router.ErrHandlerNotFound) {
		return b.handleUnknown(ctx, route, params.ChatID, params.ChatType, params.CallbackID)
	}
	if err != nil {
		return err
	}

	if result.Message != "" {
		return b.messageSender.SendText(ctx, params.ChatID, result.Message)
	}
	return nil
}

// handleUnknown отвечает на неизвестную команду только в личном чате:
// в группах команда может быть адресована другому боту
func (b *TelegramBot) handleUnknown(ctx context.Context, route string, chatID int64, chatType, callbackID string) error {
	if callbackID != "" {
		return b.messageSender.AnswerCallback(ctx, callbackID, "")
	}
	if strings.HasPrefix(route, "/") && chatType == telegram.ChatTypePrivate {
		return b.messageSender.SendText(ctx, chatID, search.DiagnosticUnknownCommand)
	}
	return nil
}

// SetMyCommands устанавливает меню команд в Telegram
func (b *TelegramBot) SetMyCommands(ctx context.Context) error {
	logger.Info("Установка меню команд в Telegram API")

	commands := []telegram.BotCommand{
		{Command: constants.CommandSearch, Description: constants.CommandDescriptions.Search},
		{Command: constants.CommandLookup, Description: constants.CommandDescriptions.Lookup},
		{Command: constants.CommandPing, Description: constants.CommandDescriptions.Ping},
		{Command: constants.CommandHelp, Description: constants.CommandDescriptions.Help},
	}

	if err := b.telegramClient.SetMyCommands(ctx, commands); err != nil {
		return fmt.Errorf("ошибка настройки меню команд: %w", err)
	}

	for _, cmd := range commands {
		logger.Debug("   • /%s - %s", cmd.Command, cmd.Description)
	}
	return nil
}

// HealthStatus состояние бота для /health
func (b *TelegramBot) HealthStatus() map[string]interface{} {
	return map[string]interface{}{
		"status":          "healthy",
		"uptime":          utils.FormatDuration(time.Since(b.startupTime)),
		"active_sessions": b.pager.Active(),
	}
}

// GetRouter возвращает роутер
func (b *TelegramBot) GetRouter() router.Router {
	return b.router
}
