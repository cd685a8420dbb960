// internal/infrastructure/cache/redis/redis_service.go
package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalog-lookup-bot/internal/infrastructure/config"
	"catalog-lookup-bot/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// RedisService жизненный цикл клиента Redis для кэша справочников
type RedisService struct {
	config *config.Config
	client *redis.Client
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

func NewRedisService(cfg *config.Config) *RedisService {
	return &RedisService{
		config: cfg,
		state:  StateStopped,
	}
}

// Start подключается к Redis и проверяет соединение
func (rs *RedisService) Start() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.state == StateRunning {
		return fmt.Errorf("redis service already running")
	}

	rs.state = StateStarting
	rc := rs.config.Redis
	addr := rs.config.GetRedisAddress()

	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        rc.Password,
		DB:              rc.DB,
		PoolSize:        rc.PoolSize,
		MinIdleConns:    rc.MinIdleConns,
		DialTimeout:     rc.DialTimeout,
		ReadTimeout:     rc.ReadTimeout,
		WriteTimeout:    rc.WriteTimeout,
		PoolTimeout:     rc.PoolTimeout,
		MaxRetries:      rc.MaxRetries,
		MinRetryBackoff: rc.MinRetryBackoff,
		MaxRetryBackoff: rc.MaxRetryBackoff,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("📡 Connecting to Redis: %s (DB: %d)", addr, rc.DB)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		rs.state = StateError
		return fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	rs.client = client
	rs.state = StateRunning
	logger.Info("✅ Redis connected, lookup names cached for %v", rc.DefaultTTL)

	return nil
}

// Stop закрывает клиент
func (rs *RedisService) Stop() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.state != StateRunning {
		return fmt.Errorf("redis service is not running")
	}

	rs.state = StateStopping
	if err := rs.client.Close(); err != nil {
		rs.state = StateError
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	rs.client = nil
	rs.state = StateStopped
	logger.Info("✅ Redis service stopped")

	return nil
}

func (rs *RedisService) State() ServiceState {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.state
}

// HealthCheck пингует Redis
func (rs *RedisService) HealthCheck() bool {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	if rs.state != StateRunning || rs.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rs.client.Ping(ctx).Err(); err != nil {
		logger.Warn("⚠️ Redis health check failed: %v", err)
		return false
	}
	return true
}

// GetStats статистика пула соединений
func (rs *RedisService) GetStats() map[string]interface{} {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	stats := map[string]interface{}{
		"state":     rs.state,
		"connected": rs.client != nil,
	}

	if rs.client != nil {
		poolStats := rs.client.PoolStats()
		stats["pool_hits"] = poolStats.Hits
		stats["pool_misses"] = poolStats.Misses
		stats["pool_timeouts"] = poolStats.Timeouts
		stats["pool_total_conns"] = poolStats.TotalConns
		stats["pool_idle_conns"] = poolStats.IdleConns
	}

	return stats
}

// GetCache возвращает кэш поверх клиента сервиса (nil пока сервис не запущен)
func (rs *RedisService) GetCache() *Cache {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	if rs.client == nil {
		return nil
	}
	return NewCacheWithClient(rs.client)
}
