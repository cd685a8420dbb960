// internal/infrastructure/persistence/catalog/repository/cached_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	rediscache "catalog-lookup-bot/internal/infrastructure/cache/redis"
	"catalog-lookup-bot/pkg/logger"
)

// NameCache кэш названий справочников (реализуется Redis-кэшем)
type NameCache interface {
	GetLookupName(ctx context.Context, table string, id int64) (string, error)
	SetLookupName(ctx context.Context, table string, id int64, name string, ttl time.Duration) error
}

// cachedRepository читает названия справочников через кэш.
// Ошибка кэша никогда не ломает запрос: идем в базу.
type cachedRepository struct {
	CatalogRepository
	cache NameCache
	ttl   time.Duration
}

// NewCachedRepository оборачивает репозиторий кэшем справочников
func NewCachedRepository(inner CatalogRepository, cache NameCache, ttl time.Duration) CatalogRepository {
	return &cachedRepository{
		CatalogRepository: inner,
		cache:             cache,
		ttl:               ttl,
	}
}

func (r *cachedRepository) GetLookupName(ctx context.Context, table LookupTable, id int64) (string, error) {
	if name, err := r.cache.GetLookupName(ctx, string(table), id); err == nil {
		return name, nil
	} else if !errors.Is(err, rediscache.ErrCacheMiss) {
		logger.Debug("⚠️ Кэш справочника %s недоступен: %v", table, err)
	}

	name, err := r.CatalogRepository.GetLookupName(ctx, table, id)
	if err != nil {
		return "", err
	}

	if err := r.cache.SetLookupName(ctx, string(table), id, name, r.ttl); err != nil {
		logger.Debug("⚠️ Не удалось закэшировать %s %d: %v", table, id, err)
	}
	return name, nil
}
