// application/cmd/bot/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"catalog-lookup-bot/application/bootstrap"
	"catalog-lookup-bot/internal/infrastructure/config"
	"catalog-lookup-bot/pkg/logger"
)

var (
	version   = "1.0.0"
	buildTime = "неизвестно"
)

func main() {
	var (
		env         string
		cfgPath     string
		logLevel    string
		mode        string
		showHelp    bool
		showVersion bool
	)

	flag.StringVar(&env, "env", "dev", "Окружение (dev/prod)")
	flag.StringVar(&cfgPath, "config", "", "Путь к файлу конфигурации (переопределяет env)")
	flag.StringVar(&logLevel, "log-level", "", "Уровень логирования: debug, info, warn, error (переопределяет .env)")
	flag.StringVar(&mode, "mode", "", "Режим Telegram: polling или webhook (переопределяет .env)")
	flag.BoolVar(&showHelp, "help", false, "Показать справку")
	flag.BoolVar(&showVersion, "version", false, "Показать версию")
	flag.Parse()

	if showVersion {
		printVersion()
		return
	}
	if showHelp {
		printHelp()
		return
	}

	configFile := resolveConfigFile(env, cfgPath)

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		fmt.Printf("❌ Не удалось загрузить конфигурацию: %v\n", err)
		os.Exit(1)
	}
	cfg.Environment = env
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := initLogger(cfg); err != nil {
		fmt.Printf("❌ Не удалось инициализировать логгер: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	cfg.PrintSummary()
	logger.Info("🚀 Запуск Catalog Lookup Bot v%s (сборка: %s)", version, buildTime)

	app, err := bootstrap.NewAppBuilder().
		WithConfig(cfg).
		WithTelegramMode(mode).
		Build()
	if err != nil {
		logger.Error("❌ Не удалось собрать приложение: %v", err)
		os.Exit(1)
	}

	if err := app.Initialize(); err != nil {
		logger.Error("❌ Не удалось инициализировать приложение: %v", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	runErrChan := make(chan error, 1)
	go func() {
		runErrChan <- app.Run()
	}()

	logger.Info("🛑 Нажмите Ctrl+C для остановки")

	select {
	case sig := <-sigChan:
		logger.Info("📶 Получен сигнал: %v", sig)
		_ = app.Stop()
		if err := <-runErrChan; err != nil {
			logger.Error("❌ Ошибка остановки приложения: %v", err)
		}
		logger.Info("✅ Приложение успешно остановлено")

	case err := <-runErrChan:
		if err != nil {
			logger.Error("❌ Ошибка запуска приложения: %v", err)
			logger.Close()
			os.Exit(1)
		}
	}
}

// resolveConfigFile путь к .env: явный, по окружению или fallback на ./.env.
// До инициализации логгера вывод идет через fmt.
func resolveConfigFile(env, explicit string) string {
	if explicit != "" {
		return explicit
	}

	configFile := filepath.Join("configs", env, ".env")
	if _, err := os.Stat(configFile); err == nil {
		return configFile
	}
	if _, err := os.Stat(".env"); err == nil {
		fmt.Printf("⚠️  Используется fallback конфиг: .env (вместо %s)\n", configFile)
		return ".env"
	}

	fmt.Println("⚠️  Файл конфигурации не найден, используются переменные окружения")
	return ""
}

// initLogger файловый логгер с откатом на консольный
func initLogger(cfg *config.Config) error {
	logPath := cfg.LogFile
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			fmt.Printf("❌ Не удалось создать директорию логов: %v\n", err)
			logPath = ""
		}
	}

	debug := strings.EqualFold(cfg.LogLevel, "debug")
	if err := logger.InitGlobal(logPath, cfg.LogLevel, debug); err != nil {
		fmt.Printf("❌ Не удалось инициализировать файловый логгер: %v. Переход на консольный...\n", err)
		return logger.InitGlobal("", cfg.LogLevel, debug)
	}
	return nil
}

func printVersion() {
	fmt.Printf("🔎 Catalog Lookup Bot v%s\n", version)
	fmt.Printf("📅 Сборка: %s\n", buildTime)
}

func printHelp() {
	fmt.Println("🔎 Catalog Lookup Bot")
	fmt.Println("Telegram бот для поиска магазинов и продуктов в каталоге")
	fmt.Println()
	fmt.Println("Использование: bot [опции]")
	fmt.Println()
	fmt.Println("Опции:")
	fmt.Println("  --env string       Окружение (dev/prod) (по умолчанию: dev)")
	fmt.Println("  --config string    Путь к файлу конфигурации (переопределяет env)")
	fmt.Println("  --log-level string Уровень логирования: debug, info, warn, error")
	fmt.Println("  --mode string      Режим Telegram: polling или webhook")
	fmt.Println("  --version          Показать информацию о версии")
	fmt.Println("  --help             Показать это справочное сообщение")
	fmt.Println()
	fmt.Println("Переменные окружения (через .env файл):")
	fmt.Println("  TG_API_KEY             Токен API Telegram бота")
	fmt.Println("  TELEGRAM_MODE          polling | webhook")
	fmt.Println("  CATALOG_DRIVER         sqlite | postgres")
	fmt.Println("  CATALOG_PATH           Путь к файлу каталога SQLite")
	fmt.Println("  DB_HOST, DB_NAME, ...  Параметры PostgreSQL")
	fmt.Println("  REDIS_ENABLED          Кэш справочников в Redis")
	fmt.Println("  SEARCH_MAX_RESULTS     Максимум результатов поиска по названию")
	fmt.Println("  SEARCH_SESSION_TIMEOUT Таймаут бездействия листания")
	fmt.Println("  LOG_LEVEL, LOG_FILE    Логирование")
	fmt.Println()
	fmt.Println("Примеры:")
	fmt.Println("  go run application/cmd/bot/main.go --env=dev --log-level=debug")
	fmt.Println("  go run application/cmd/bot/main.go --config=configs/prod/.env --mode=webhook")
}
