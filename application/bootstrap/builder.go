// application/bootstrap/builder.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"syscall"
	"time"

	"catalog-lookup-bot/internal/infrastructure/config"
	"catalog-lookup-bot/pkg/logger"
	"catalog-lookup-bot/pkg/utils"
)

// shutdownTimeout сколько ждем обработки принятых обновлений
const shutdownTimeout = 30 * time.Second

// Run запускает бота и блокируется до Stop
func (app *Application) Run() error {
	app.mu.Lock()

	if app.running {
		app.mu.Unlock()
		return errors.New("приложение уже запущено")
	}

	if app.bot == nil {
		app.logger.Println("⚠️  Приложение не инициализировано, инициализируем...")
		if err := app.Initialize(); err != nil {
			app.mu.Unlock()
			return fmt.Errorf("инициализация приложения: %w", err)
		}
	}

	app.logger.Println("🚀 Запуск Telegram бота...")
	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := app.bot.Start(startCtx)
	cancel()
	if err != nil {
		app.mu.Unlock()
		app.closeResources()
		return fmt.Errorf("запуск telegram бота: %w", err)
	}

	app.running = true
	app.startTime = time.Now()
	app.mu.Unlock()

	app.logger.Println("✅ Приложение запущено и работает")

	<-app.stopChan
	app.logger.Println("🛑 Получен сигнал завершения...")
	app.shutdownWithTimeout(shutdownTimeout)
	return nil
}

// shutdownWithTimeout выполняет graceful shutdown с таймаутом
func (app *Application) shutdownWithTimeout(timeout time.Duration) {
	app.logger.Printf("⏳ Начинаем graceful shutdown (таймаут: %v)...", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.shutdown(ctx); err != nil {
		app.logger.Printf("⚠️  Graceful shutdown завершен с ошибкой: %v", err)
		return
	}
	app.logger.Println("✅ Graceful shutdown завершен успешно")
}

// shutdown: бот перестает принимать обновления, открытые сессии
// листания закрываются, затем освобождаются каталог и Redis
func (app *Application) shutdown(ctx context.Context) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if !app.running {
		return nil
	}

	var stopErr error
	if err := app.bot.Stop(ctx); err != nil {
		stopErr = fmt.Errorf("остановка бота: %w", err)
	}

	app.pager.CloseAll(ctx)
	app.closeResources()

	app.running = false
	app.logger.Printf("✅ Приложение остановлено. Время работы: %s", utils.FormatDuration(time.Since(app.startTime)))
	return stopErr
}

func (app *Application) closeResources() {
	if app.redis != nil {
		if err := app.redis.Stop(); err != nil {
			logger.Warn("⚠️ Ошибка остановки Redis: %v", err)
		}
	}
	if app.database != nil {
		if err := app.database.Stop(); err != nil {
			logger.Warn("⚠️ Ошибка остановки каталога: %v", err)
		}
	}
}

// IsRunning запущено ли приложение
func (app *Application) IsRunning() bool {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.running
}

// Stop останавливает приложение
func (app *Application) Stop() error {
	// Посылаем сигнал завершения
	select {
	case app.stopChan <- syscall.SIGTERM:
	default:
		// Сигнал уже отправлен
	}
	return nil
}

// ==================== AppBuilder ====================

// AppBuilder строитель приложения
type AppBuilder struct {
	config  *config.Config
	options []AppOption
	logger  *log.Logger
}

// AppOption опция для настройки приложения
type AppOption func(*Application) error

// NewAppBuilder создает новый строитель приложений
func NewAppBuilder() *AppBuilder {
	return &AppBuilder{
		logger: log.New(os.Stdout, "[BUILDER] ", log.LstdFlags),
	}
}

// WithConfig устанавливает конфигурацию
func (b *AppBuilder) WithConfig(cfg *config.Config) *AppBuilder {
	b.config = cfg
	return b
}

// WithOption добавляет опцию настройки
func (b *AppBuilder) WithOption(option AppOption) *AppBuilder {
	b.options = append(b.options, option)
	return b
}

// WithTelegramMode переопределяет режим приема обновлений (fluent метод)
func (b *AppBuilder) WithTelegramMode(mode string) *AppBuilder {
	b.options = append(b.options, WithTelegramMode(mode))
	return b
}

// WithSessionTimeout переопределяет таймаут сессий листания (fluent метод)
func (b *AppBuilder) WithSessionTimeout(timeout time.Duration) *AppBuilder {
	b.options = append(b.options, WithSessionTimeout(timeout))
	return b
}

// Build строит приложение
func (b *AppBuilder) Build() (*Application, error) {
	if b.config == nil {
		cfg, err := config.LoadConfig(".env")
		if err != nil {
			return nil, fmt.Errorf("конфигурация по умолчанию: %w", err)
		}
		b.config = cfg
		b.logger.Println("ℹ️  Используется конфигурация по умолчанию")
	}

	app, err := NewApplication(b.config)
	if err != nil {
		return nil, fmt.Errorf("создание приложения: %w", err)
	}

	for _, option := range b.options {
		if err := option(app); err != nil {
			return nil, fmt.Errorf("применение опции: %w", err)
		}
	}

	return app, nil
}

// ==================== Опции приложения ====================

// WithTelegramMode polling или webhook
func WithTelegramMode(mode string) AppOption {
	return func(app *Application) error {
		if mode == "" {
			return nil
		}
		if mode != "polling" && mode != "webhook" {
			return fmt.Errorf("неизвестный режим telegram: %s", mode)
		}
		app.config.TelegramMode = mode
		app.logger.Printf("Режим Telegram: %s", mode)
		return nil
	}
}

// WithSessionTimeout таймаут бездействия сессии листания
func WithSessionTimeout(timeout time.Duration) AppOption {
	return func(app *Application) error {
		if timeout <= 0 {
			return nil
		}
		app.config.Search.SessionTimeout = timeout
		app.logger.Printf("Таймаут сессии листания: %v", timeout)
		return nil
	}
}
