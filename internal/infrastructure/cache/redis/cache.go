// internal/infrastructure/cache/redis/cache.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultPrefix = "catalogbot:"

// ErrCacheMiss ключ отсутствует в кэше
var ErrCacheMiss = errors.New("cache miss")

type Cache struct {
	client *redis.Client
	prefix string
}

func NewCache(addr, password string, db int) *Cache {
	return NewCacheWithClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

// NewCacheWithClient создает Cache с существующим клиентом
func NewCacheWithClient(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: defaultPrefix,
	}
}

// Set устанавливает значение в Redis с TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

// Get получает значение из Redis; отсутствие ключа - ErrCacheMiss
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Delete удаляет ключ из Redis
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// LookupNameKey ключ названия из справочника каталога
func LookupNameKey(table string, id int64) string {
	return fmt.Sprintf("lookup:%s:%d", table, id)
}

// SetLookupName кэширует название из справочника
func (c *Cache) SetLookupName(ctx context.Context, table string, id int64, name string, ttl time.Duration) error {
	return c.Set(ctx, LookupNameKey(table, id), name, ttl)
}

// GetLookupName получает название из справочника
func (c *Cache) GetLookupName(ctx context.Context, table string, id int64) (string, error) {
	var name string
	if err := c.Get(ctx, LookupNameKey(table, id), &name); err != nil {
		return "", err
	}
	return name, nil
}
