// application/bootstrap/app.go
package bootstrap

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"catalog-lookup-bot/internal/core/domain/lookup"
	"catalog-lookup-bot/internal/core/domain/pagination"
	"catalog-lookup-bot/internal/core/domain/presentation"
	"catalog-lookup-bot/internal/core/domain/search"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/message_sender"
	telegram_http "catalog-lookup-bot/internal/delivery/telegram/app/http_client"
	"catalog-lookup-bot/internal/infrastructure/cache/redis"
	"catalog-lookup-bot/internal/infrastructure/config"
	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/database"
	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/repository"
	"catalog-lookup-bot/pkg/logger"
	"catalog-lookup-bot/pkg/utils"
)

// Application - основное приложение
type Application struct {
	config *config.Config
	logger *log.Logger

	database *database.DatabaseService
	redis    *redis.RedisService
	pager    *pagination.Controller
	lookup   *lookup.Service
	bot      *bot.TelegramBot

	mu        sync.RWMutex
	running   bool
	startTime time.Time
	stopChan  chan os.Signal
}

// NewApplication создает приложение; компоненты собираются в Initialize
func NewApplication(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация не задана")
	}
	return &Application{
		config:   cfg,
		logger:   log.New(os.Stdout, "[APP] ", log.LstdFlags),
		stopChan: make(chan os.Signal, 1),
	}, nil
}

// Initialize поднимает каталог, кэш и Telegram бота
func (app *Application) Initialize() error {
	if !app.config.Telegram.Enabled {
		return fmt.Errorf("telegram отключен (TELEGRAM_ENABLED=false): боту нечего обслуживать")
	}

	// 1. Каталог
	app.database = database.NewDatabaseService(app.config)
	if err := app.database.Start(); err != nil {
		return fmt.Errorf("запуск каталога: %w", err)
	}
	repo := repository.NewCatalogRepository(app.database.GetDB())

	// 2. Кэш справочников (необязателен)
	if app.config.Redis.Enabled {
		rs := redis.NewRedisService(app.config)
		if err := rs.Start(); err != nil {
			logger.Warn("⚠️ Redis недоступен, справочники читаются напрямую: %v", err)
		} else {
			app.redis = rs
			repo = repository.NewCachedRepository(repo, rs.GetCache(), app.config.Redis.DefaultTTL)
			logger.Info("✅ Кэш справочников подключен")
		}
	}

	// 3. Поиск и форматирование
	resolver := search.NewResolver(repo, app.config.Search.MaxResults)

	formatterCfg := presentation.Config{
		DescriptionLimit: app.config.Search.DescriptionLimit,
		MovieTypeID:      app.config.Search.MovieTypeID,
	}
	var err error
	if formatterCfg.MovieFallback, err = loadImage(app.config.MovieFallbackImage); err != nil {
		return err
	}
	if formatterCfg.GameFallback, err = loadImage(app.config.GameFallbackImage); err != nil {
		return err
	}
	formatter := presentation.NewFormatter(formatterCfg)

	// 4. Telegram
	client := telegram_http.NewTelegramClient(app.config.GetBotAPIBaseURL())
	sender := message_sender.NewMessageSender(client)

	app.pager = pagination.NewController(pagination.Config{
		Timeout:         app.config.Search.SessionTimeout,
		SelectorLimit:   app.config.Search.SelectorLimit,
		SelectorEntries: app.config.Search.SelectorEntries,
	}, sender)

	app.lookup, err = lookup.NewService(lookup.Dependencies{
		Resolver:  resolver,
		Formatter: formatter,
		Pager:     app.pager,
	})
	if err != nil {
		return fmt.Errorf("создание lookup сервиса: %w", err)
	}

	app.bot, err = bot.NewTelegramBot(app.config, bot.Dependencies{
		Client: client,
		Sender: sender,
		Lookup: app.lookup,
		Pager:  app.pager,
	})
	if err != nil {
		return fmt.Errorf("создание telegram бота: %w", err)
	}

	logger.Info("✅ Приложение инициализировано (режим Telegram: %s)", app.config.TelegramMode)
	return nil
}

// loadImage читает картинку-заглушку; пустой путь - встроенная
func loadImage(path string) (*presentation.Attachment, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение заглушки %s: %w", path, err)
	}
	return &presentation.Attachment{Name: filepath.Base(path), Data: data}, nil
}

// Status статус приложения
func (app *Application) Status() map[string]interface{} {
	app.mu.RLock()
	defer app.mu.RUnlock()

	status := map[string]interface{}{
		"running":   app.running,
		"uptime":    utils.FormatDuration(time.Since(app.startTime)),
		"startTime": app.startTime.Format(time.RFC3339),
		"config": map[string]interface{}{
			"telegram_mode":   app.config.TelegramMode,
			"catalog_driver":  app.config.Catalog.Driver,
			"redis_enabled":   app.redis != nil,
			"max_results":     app.config.Search.MaxResults,
			"session_timeout": app.config.Search.SessionTimeout.String(),
			"log_level":       app.config.LogLevel,
		},
	}

	if app.database != nil {
		status["database"] = app.database.GetStats()
	}
	if app.redis != nil {
		status["redis"] = app.redis.GetStats()
	}
	if app.bot != nil {
		status["bot"] = app.bot.HealthStatus()
	}

	return status
}
