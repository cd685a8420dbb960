// /internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ============================================
// КОНФИГУРАЦИЯ КАТАЛОГА
// ============================================

// Поддерживаемые драйверы каталога
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// CatalogConfig - конфигурация read-only каталога
type CatalogConfig struct {
	// sqlite (по умолчанию) или postgres
	Driver string `mapstructure:"CATALOG_DRIVER"`
	// Путь к файлу SQLite
	Path string `mapstructure:"CATALOG_PATH"`

	// Параметры PostgreSQL
	Host     string `mapstructure:"DB_HOST"`
	Port     int    `mapstructure:"DB_PORT"`
	User     string `mapstructure:"DB_USER"`
	Password string `mapstructure:"DB_PASSWORD"`
	Name     string `mapstructure:"DB_NAME"`
	SSLMode  string `mapstructure:"DB_SSLMODE"`

	// Настройки пула соединений
	MaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	MaxConnLifetime time.Duration `mapstructure:"DB_MAX_CONN_LIFETIME"`
	MaxConnIdleTime time.Duration `mapstructure:"DB_MAX_CONN_IDLE_TIME"`
	QueryTimeout    time.Duration `mapstructure:"DB_QUERY_TIMEOUT"`
}

// RedisConfig конфигурация Redis (кэш справочников)
type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`     // localhost
	Port     int    `mapstructure:"REDIS_PORT"`     // 6379
	Password string `mapstructure:"REDIS_PASSWORD"` // пустой или пароль
	DB       int    `mapstructure:"REDIS_DB"`       // 0

	Enabled bool `mapstructure:"REDIS_ENABLED"`

	// Настройки пула соединений
	PoolSize        int           `mapstructure:"REDIS_POOL_SIZE"`         // 10
	MinIdleConns    int           `mapstructure:"REDIS_MIN_IDLE_CONNS"`    // 2
	MaxRetries      int           `mapstructure:"REDIS_MAX_RETRIES"`       // 3
	MinRetryBackoff time.Duration `mapstructure:"REDIS_MIN_RETRY_BACKOFF"` // 8ms
	MaxRetryBackoff time.Duration `mapstructure:"REDIS_MAX_RETRY_BACKOFF"` // 512ms
	DialTimeout     time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`      // 5s
	ReadTimeout     time.Duration `mapstructure:"REDIS_READ_TIMEOUT"`      // 3s
	WriteTimeout    time.Duration `mapstructure:"REDIS_WRITE_TIMEOUT"`     // 3s
	PoolTimeout     time.Duration `mapstructure:"REDIS_POOL_TIMEOUT"`      // 4s

	// TTL для закэшированных названий справочников
	DefaultTTL time.Duration `mapstructure:"REDIS_DEFAULT_TTL"` // 1h
}

// SearchConfig - параметры поиска и пагинации
type SearchConfig struct {
	MaxResults       int           `mapstructure:"SEARCH_MAX_RESULTS"`       // 15
	SelectorLimit    int           `mapstructure:"SEARCH_SELECTOR_LIMIT"`    // 25
	SelectorEntries  int           `mapstructure:"SEARCH_SELECTOR_ENTRIES"`  // 24
	SessionTimeout   time.Duration `mapstructure:"SEARCH_SESSION_TIMEOUT"`   // 60s
	DescriptionLimit int           `mapstructure:"SEARCH_DESCRIPTION_LIMIT"` // 4096
	MovieTypeID      int64         `mapstructure:"SEARCH_MOVIE_TYPE_ID"`     // 1
}

// TelegramConfig - настройки Telegram
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"TELEGRAM_ENABLED"`
	BotToken string `mapstructure:"TG_API_KEY"`
	APIURL   string `mapstructure:"TELEGRAM_API_URL"`
}

// WebhookConfig - настройки webhook режима
type WebhookConfig struct {
	Domain      string `mapstructure:"WEBHOOK_DOMAIN"`
	Port        int    `mapstructure:"WEBHOOK_PORT"`
	Path        string `mapstructure:"WEBHOOK_PATH"`
	SecretToken string `mapstructure:"WEBHOOK_SECRET_TOKEN"`
	UseTLS      bool   `mapstructure:"WEBHOOK_USE_TLS"`
	TLSCertPath string `mapstructure:"WEBHOOK_TLS_CERT_PATH"`
	TLSKeyPath  string `mapstructure:"WEBHOOK_TLS_KEY_PATH"`
}

// PollingConfig - настройки long polling
type PollingConfig struct {
	Timeout       int `mapstructure:"POLLING_TIMEOUT"`        // секунды
	RetryInterval int `mapstructure:"POLLING_RETRY_INTERVAL"` // секунды
}

// ============================================
// ОСНОВНАЯ КОНФИГУРАЦИЯ ПРИЛОЖЕНИЯ
// ============================================

// Config - основная структура конфигурации
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	Catalog CatalogConfig
	Redis   RedisConfig
	Search  SearchConfig

	Telegram     TelegramConfig
	TelegramMode string `mapstructure:"TELEGRAM_MODE"` // polling | webhook
	Webhook      WebhookConfig
	Polling      PollingConfig

	// Пути к картинкам-заглушкам (пусто - встроенные)
	MovieFallbackImage string `mapstructure:"MOVIE_FALLBACK_IMAGE"`
	GameFallbackImage  string `mapstructure:"GAME_FALLBACK_IMAGE"`
}

// LoadConfig загружает конфигурацию из .env файла и переменных окружения
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			fmt.Printf("⚠️  Config file not found, using environment variables\n")
		}
	}

	cfg := &Config{}

	// ======================
	// ОСНОВНЫЕ НАСТРОЙКИ
	// ======================
	cfg.Environment = getEnv("ENVIRONMENT", "production")
	cfg.Version = getEnv("VERSION", "1.0.0")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFile = getEnv("LOG_FILE", "")

	// ======================
	// КАТАЛОГ
	// ======================
	cfg.Catalog.Driver = strings.ToLower(getEnv("CATALOG_DRIVER", DriverSQLite))
	cfg.Catalog.Path = getEnv("CATALOG_PATH", "./data/catalog.db")
	cfg.Catalog.Host = getEnv("DB_HOST", "localhost")
	cfg.Catalog.Port = getEnvInt("DB_PORT", 5432)
	cfg.Catalog.User = getEnv("DB_USER", "")
	cfg.Catalog.Password = getEnv("DB_PASSWORD", "")
	cfg.Catalog.Name = getEnv("DB_NAME", "")
	cfg.Catalog.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Catalog.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	cfg.Catalog.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 5)
	cfg.Catalog.MaxConnLifetime = getEnvDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute)
	cfg.Catalog.MaxConnIdleTime = getEnvDuration("DB_MAX_CONN_IDLE_TIME", 10*time.Minute)
	cfg.Catalog.QueryTimeout = getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second)

	// ======================
	// REDIS
	// ======================
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnvInt("REDIS_PORT", 6379)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)
	cfg.Redis.PoolSize = getEnvInt("REDIS_POOL_SIZE", 10)
	cfg.Redis.MinIdleConns = getEnvInt("REDIS_MIN_IDLE_CONNS", 2)
	cfg.Redis.MaxRetries = getEnvInt("REDIS_MAX_RETRIES", 3)
	cfg.Redis.MinRetryBackoff = getEnvDuration("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond)
	cfg.Redis.MaxRetryBackoff = getEnvDuration("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond)
	cfg.Redis.DialTimeout = getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.Redis.ReadTimeout = getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.Redis.WriteTimeout = getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.Redis.PoolTimeout = getEnvDuration("REDIS_POOL_TIMEOUT", 4*time.Second)
	cfg.Redis.DefaultTTL = getEnvDuration("REDIS_DEFAULT_TTL", 1*time.Hour)
	cfg.Redis.Enabled = getEnvBool("REDIS_ENABLED", false)

	// ======================
	// ПОИСК И ПАГИНАЦИЯ
	// ======================
	cfg.Search.MaxResults = getEnvInt("SEARCH_MAX_RESULTS", 15)
	cfg.Search.SelectorLimit = getEnvInt("SEARCH_SELECTOR_LIMIT", 25)
	cfg.Search.SelectorEntries = getEnvInt("SEARCH_SELECTOR_ENTRIES", 24)
	cfg.Search.SessionTimeout = getEnvDuration("SEARCH_SESSION_TIMEOUT", 60*time.Second)
	cfg.Search.DescriptionLimit = getEnvInt("SEARCH_DESCRIPTION_LIMIT", 4096)
	cfg.Search.MovieTypeID = getEnvInt64("SEARCH_MOVIE_TYPE_ID", 1)

	// ======================
	// TELEGRAM
	// ======================
	cfg.Telegram.Enabled = getEnvBool("TELEGRAM_ENABLED", true)
	cfg.Telegram.BotToken = getEnv("TG_API_KEY", "")
	cfg.Telegram.APIURL = strings.TrimRight(getEnv("TELEGRAM_API_URL", "https://api.telegram.org"), "/")
	cfg.TelegramMode = strings.ToLower(getEnv("TELEGRAM_MODE", "polling"))

	cfg.Webhook.Domain = getEnv("WEBHOOK_DOMAIN", "")
	cfg.Webhook.Port = getEnvInt("WEBHOOK_PORT", 8443)
	cfg.Webhook.Path = getEnv("WEBHOOK_PATH", "/webhook")
	cfg.Webhook.SecretToken = getEnv("WEBHOOK_SECRET_TOKEN", "")
	cfg.Webhook.UseTLS = getEnvBool("WEBHOOK_USE_TLS", false)
	cfg.Webhook.TLSCertPath = getEnv("WEBHOOK_TLS_CERT_PATH", "")
	cfg.Webhook.TLSKeyPath = getEnv("WEBHOOK_TLS_KEY_PATH", "")

	cfg.Polling.Timeout = getEnvInt("POLLING_TIMEOUT", 30)
	cfg.Polling.RetryInterval = getEnvInt("POLLING_RETRY_INTERVAL", 5)

	cfg.MovieFallbackImage = getEnv("MOVIE_FALLBACK_IMAGE", "")
	cfg.GameFallbackImage = getEnv("GAME_FALLBACK_IMAGE", "")

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// ============================================
// ВАЛИДАЦИЯ
// ============================================

// validate проверяет обязательные параметры конфигурации
func (c *Config) validate() error {
	var validationErrors []string

	if c.Telegram.Enabled && c.Telegram.BotToken == "" {
		validationErrors = append(validationErrors, "TG_API_KEY is required when Telegram is enabled")
	}

	switch c.Catalog.Driver {
	case DriverSQLite:
		if c.Catalog.Path == "" {
			validationErrors = append(validationErrors, "CATALOG_PATH is required for sqlite catalog")
		}
	case DriverPostgres:
		if c.Catalog.Host == "" {
			validationErrors = append(validationErrors, "DB_HOST is required")
		}
		if c.Catalog.Port <= 0 {
			validationErrors = append(validationErrors, "DB_PORT must be positive")
		}
		if c.Catalog.Name == "" {
			validationErrors = append(validationErrors, "DB_NAME is required")
		}
	default:
		validationErrors = append(validationErrors, "CATALOG_DRIVER должен быть 'sqlite' или 'postgres'")
	}

	if c.Search.MaxResults <= 0 {
		validationErrors = append(validationErrors, "SEARCH_MAX_RESULTS must be positive")
	}
	if c.Search.SelectorEntries <= 0 || c.Search.SelectorEntries > c.Search.SelectorLimit {
		validationErrors = append(validationErrors, "SEARCH_SELECTOR_ENTRIES must be in 1..SEARCH_SELECTOR_LIMIT")
	}
	if c.Search.SessionTimeout <= 0 {
		validationErrors = append(validationErrors, "SEARCH_SESSION_TIMEOUT must be positive")
	}
	if c.Search.DescriptionLimit < 16 {
		validationErrors = append(validationErrors, "SEARCH_DESCRIPTION_LIMIT must be at least 16")
	}

	// Валидация режима Telegram
	mode := c.TelegramMode
	if mode != "polling" && mode != "webhook" {
		validationErrors = append(validationErrors, "TELEGRAM_MODE должен быть 'polling' или 'webhook'")
	}

	if mode == "webhook" {
		if c.Webhook.Domain == "" {
			validationErrors = append(validationErrors, "WEBHOOK_DOMAIN обязателен для webhook режима")
		}
		if c.Webhook.Port <= 0 || c.Webhook.Port > 65535 {
			validationErrors = append(validationErrors, "WEBHOOK_PORT должен быть в диапазоне 1-65535")
		}
		if c.Webhook.UseTLS {
			if c.Webhook.TLSCertPath == "" {
				validationErrors = append(validationErrors, "WEBHOOK_TLS_CERT_PATH обязателен при использовании TLS")
			}
			if c.Webhook.TLSKeyPath == "" {
				validationErrors = append(validationErrors, "WEBHOOK_TLS_KEY_PATH обязателен при использовании TLS")
			}
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("%s", strings.Join(validationErrors, "; "))
	}

	return nil
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

// GetPostgresDSN возвращает DSN для подключения к PostgreSQL
func (c *Config) GetPostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Catalog.Host,
		c.Catalog.Port,
		c.Catalog.User,
		c.Catalog.Password,
		c.Catalog.Name,
		c.Catalog.SSLMode,
	)
}

// GetSQLiteDSN возвращает DSN файла каталога в режиме только для чтения
func (c *Config) GetSQLiteDSN() string {
	return "file:" + c.Catalog.Path + "?mode=ro&_pragma=busy_timeout(5000)"
}

// GetRedisAddress возвращает адрес Redis
func (c *Config) GetRedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// GetBotAPIBaseURL возвращает базовый URL Bot API с токеном
func (c *Config) GetBotAPIBaseURL() string {
	return c.Telegram.APIURL + "/bot" + c.Telegram.BotToken + "/"
}

// GetWebhookURL возвращает полный URL вебхука
func (c *Config) GetWebhookURL() string {
	return "https://" + c.Webhook.Domain + c.Webhook.Path
}

func (c *Config) IsWebhookMode() bool {
	return c.TelegramMode == "webhook"
}

func (c *Config) IsPollingMode() bool {
	return !c.IsWebhookMode()
}

func (c *Config) IsDev() bool {
	return c.Environment == "dev" || c.Environment == "development"
}

// PrintSummary выводит основные параметры конфигурации
func (c *Config) PrintSummary() {
	log.Printf("📋 Конфигурация приложения:")
	log.Printf("   • Окружение: %s", c.Environment)
	log.Printf("   • Уровень логирования: %s", c.LogLevel)
	log.Printf("   • Telegram режим: %s", c.TelegramMode)
	log.Printf("   • Telegram включен: %v", c.Telegram.Enabled)

	if c.Catalog.Driver == DriverPostgres {
		log.Printf("   • Каталог: PostgreSQL %s:%d/%s", c.Catalog.Host, c.Catalog.Port, c.Catalog.Name)
	} else {
		log.Printf("   • Каталог: SQLite %s (read-only)", c.Catalog.Path)
	}

	if c.Redis.Enabled {
		log.Printf("   • Redis: %s (DB: %d, TTL: %v)", c.GetRedisAddress(), c.Redis.DB, c.Redis.DefaultTTL)
	} else {
		log.Printf("   • Redis: выключен")
	}

	log.Printf("   • Поиск: максимум %d результатов, сессия %v", c.Search.MaxResults, c.Search.SessionTimeout)

	if c.IsWebhookMode() {
		log.Printf("   • Webhook URL: %s", c.GetWebhookURL())
		log.Printf("   • Webhook порт: %d", c.Webhook.Port)
		log.Printf("   • TLS: %v", c.Webhook.UseTLS)
	} else {
		log.Printf("   • Polling timeout: %d сек", c.Polling.Timeout)
	}

	if c.Telegram.Enabled {
		token := c.Telegram.BotToken
		if len(token) > 10 {
			token = token[:5] + "..." + token[len(token)-5:]
		}
		log.Printf("   • Telegram Token: %s", token)
	}
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ ФУНКЦИИ
// ============================================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
