package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	rediscache "catalog-lookup-bot/internal/infrastructure/cache/redis"
	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/catalogtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryNameCache struct {
	mu      sync.Mutex
	names   map[string]string
	failGet bool
	sets    int
}

func newMemoryNameCache() *memoryNameCache {
	return &memoryNameCache{names: make(map[string]string)}
}

func (c *memoryNameCache) GetLookupName(_ context.Context, table string, id int64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return "", errors.New("connection refused")
	}
	name, ok := c.names[rediscache.LookupNameKey(table, id)]
	if !ok {
		return "", rediscache.ErrCacheMiss
	}
	return name, nil
}

func (c *memoryNameCache) SetLookupName(_ context.Context, table string, id int64, name string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.names[rediscache.LookupNameKey(table, id)] = name
	return nil
}

func TestCachedRepository_ReadThrough(t *testing.T) {
	db := catalogtest.NewDB(t)
	catalogtest.Exec(t, db, `INSERT INTO Vendor (Id, Name) VALUES (1, 'Acme')`)
	cache := newMemoryNameCache()
	repo := NewCachedRepository(NewCatalogRepository(db), cache, time.Hour)
	ctx := context.Background()

	name, err := repo.GetLookupName(ctx, TableVendor, 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme", name)
	assert.Equal(t, 1, cache.sets)

	// второе чтение из кэша, даже если в базе имя уже другое
	catalogtest.Exec(t, db, `UPDATE Vendor SET Name = 'Renamed' WHERE Id = 1`)
	name, err = repo.GetLookupName(ctx, TableVendor, 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme", name)
	assert.Equal(t, 1, cache.sets)
}

func TestCachedRepository_CacheFailureFallsBackToSQL(t *testing.T) {
	db := catalogtest.NewDB(t)
	catalogtest.Exec(t, db, `INSERT INTO Genres (Id, Name) VALUES (3, 'Horror')`)
	cache := newMemoryNameCache()
	cache.failGet = true
	repo := NewCachedRepository(NewCatalogRepository(db), cache, time.Hour)

	name, err := repo.GetLookupName(context.Background(), TableGenre, 3)
	require.NoError(t, err)
	assert.Equal(t, "Horror", name)
}

func TestCachedRepository_NotFoundIsNotCached(t *testing.T) {
	db := catalogtest.NewDB(t)
	cache := newMemoryNameCache()
	repo := NewCachedRepository(NewCatalogRepository(db), cache, time.Hour)

	_, err := repo.GetLookupName(context.Background(), TableRating, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, cache.sets)
}

func TestCachedRepository_DelegatesOtherReads(t *testing.T) {
	db := catalogtest.NewDB(t)
	catalogtest.Exec(t, db, `INSERT INTO Store (Id, City) VALUES (5, 'Austin')`)
	repo := NewCachedRepository(NewCatalogRepository(db), newMemoryNameCache(), time.Hour)

	store, err := repo.GetStore(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Austin", store.City.String)
}
