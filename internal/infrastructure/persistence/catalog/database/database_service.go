// internal/infrastructure/persistence/catalog/database/database_service.go
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalog-lookup-bot/internal/infrastructure/config"
	"catalog-lookup-bot/pkg/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DatabaseService сервис подключения к каталогу (SQLite или PostgreSQL)
type DatabaseService struct {
	config *config.Config
	db     *sqlx.DB
	mu     sync.RWMutex
	state  ServiceState
}

// ServiceState состояние сервиса
type ServiceState string

const (
	StateStopped  ServiceState = "stopped"
	StateStarting ServiceState = "starting"
	StateRunning  ServiceState = "running"
	StateStopping ServiceState = "stopping"
	StateError    ServiceState = "error"
)

// Имена драйверов database/sql
const (
	sqliteDriverName   = "sqlite"
	postgresDriverName = "postgres"
)

// NewDatabaseService создает новый сервис базы данных
func NewDatabaseService(cfg *config.Config) *DatabaseService {
	return &DatabaseService{
		config: cfg,
		state:  StateStopped,
	}
}

// Start открывает каталог и проверяет соединение
func (ds *DatabaseService) Start() error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.state == StateRunning {
		return fmt.Errorf("database service already running")
	}

	logger.Info("🔄 Starting catalog database service...")
	ds.state = StateStarting

	driver, dsn := ds.dataSource()
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		ds.state = StateError
		return fmt.Errorf("failed to open catalog connection: %w", err)
	}

	cat := ds.config.Catalog
	db.SetMaxOpenConns(cat.MaxOpenConns)
	db.SetMaxIdleConns(cat.MaxIdleConns)
	db.SetConnMaxLifetime(cat.MaxConnLifetime)
	db.SetConnMaxIdleTime(cat.MaxConnIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		ds.state = StateError
		return fmt.Errorf("failed to ping catalog: %w", err)
	}

	ds.db = db
	ds.state = StateRunning

	if driver == postgresDriverName {
		logger.Info("✅ Connected to PostgreSQL catalog %s:%d/%s", cat.Host, cat.Port, cat.Name)
	} else {
		logger.Info("✅ Opened SQLite catalog %s (read-only)", cat.Path)
	}
	logger.Info("   • Pool: %d/%d connections", cat.MaxIdleConns, cat.MaxOpenConns)

	return nil
}

func (ds *DatabaseService) dataSource() (driver, dsn string) {
	if ds.config.Catalog.Driver == config.DriverPostgres {
		return postgresDriverName, ds.config.GetPostgresDSN()
	}
	return sqliteDriverName, ds.config.GetSQLiteDSN()
}

// Stop закрывает соединение
func (ds *DatabaseService) Stop() error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.state != StateRunning {
		return fmt.Errorf("database service is not running")
	}

	logger.Info("🛑 Stopping catalog database service...")
	ds.state = StateStopping

	if ds.db != nil {
		if err := ds.db.Close(); err != nil {
			ds.state = StateError
			return fmt.Errorf("failed to close catalog connection: %w", err)
		}
	}

	ds.db = nil
	ds.state = StateStopped
	logger.Info("✅ Catalog database service stopped")

	return nil
}

// GetDB возвращает соединение с каталогом
func (ds *DatabaseService) GetDB() *sqlx.DB {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.db
}

// State возвращает состояние сервиса
func (ds *DatabaseService) State() ServiceState {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.state
}

// HealthCheck проверяет доступность каталога
func (ds *DatabaseService) HealthCheck() bool {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	if ds.state != StateRunning || ds.db == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := ds.db.PingContext(ctx); err != nil {
		logger.Warn("⚠️ Catalog health check failed: %v", err)
		return false
	}

	return true
}

// GetStats возвращает статистику пула
func (ds *DatabaseService) GetStats() map[string]interface{} {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	stats := map[string]interface{}{
		"state":     ds.state,
		"driver":    ds.config.Catalog.Driver,
		"connected": ds.db != nil,
	}

	if ds.db != nil {
		dbStats := ds.db.Stats()
		stats["open_connections"] = dbStats.OpenConnections
		stats["in_use"] = dbStats.InUse
		stats["idle"] = dbStats.Idle
		stats["wait_count"] = dbStats.WaitCount
	}

	return stats
}
