// internal/infrastructure/persistence/catalog/repository/repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/models"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound запись отсутствует в каталоге
var ErrNotFound = errors.New("catalog record not found")

// LookupTable справочник, из которого берется отображаемое имя
type LookupTable string

const (
	TableVendor      LookupTable = "vendor"
	TableBanner      LookupTable = "banner"
	TableProductType LookupTable = "product_type"
	TableRating      LookupTable = "rating"
	TableGenre       LookupTable = "genre"
)

var lookupQueries = map[LookupTable]string{
	TableVendor:      queryVendorName,
	TableBanner:      queryBannerName,
	TableProductType: queryProductTypeName,
	TableRating:      queryRatingName,
	TableGenre:       queryGenreName,
}

// CatalogRepository чтение каталога (только чтение)
type CatalogRepository interface {
	GetStore(ctx context.Context, id int64) (*models.Store, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	FindProductsByExactName(ctx context.Context, name string) ([]*models.Product, error)
	FindProductsByName(ctx context.Context, text string, limit int) ([]*models.Product, error)
	GetProductIDByBarcode(ctx context.Context, code string) (int64, error)
	GetLookupName(ctx context.Context, table LookupTable, id int64) (string, error)
	GetImage(ctx context.Context, name string) ([]byte, error)
}

// catalogRepositoryImpl реализация CatalogRepository на sqlx
type catalogRepositoryImpl struct {
	db *sqlx.DB
}

// NewCatalogRepository создает репозиторий каталога
func NewCatalogRepository(db *sqlx.DB) CatalogRepository {
	return &catalogRepositoryImpl{db: db}
}

// GetStore получает магазин по ID
func (r *catalogRepositoryImpl) GetStore(ctx context.Context, id int64) (*models.Store, error) {
	var store models.Store
	if err := r.db.GetContext(ctx, &store, r.db.Rebind(queryStoreByID), id); err != nil {
		return nil, wrap(err, "ошибка получения магазина %d", id)
	}
	return &store, nil
}

// GetProduct получает продукт по ID
func (r *catalogRepositoryImpl) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.GetContext(ctx, &product, r.db.Rebind(queryProductByID), id); err != nil {
		return nil, wrap(err, "ошибка получения продукта %d", id)
	}
	return &product, nil
}

// FindProductsByExactName продукты с точным совпадением названия
func (r *catalogRepositoryImpl) FindProductsByExactName(ctx context.Context, name string) ([]*models.Product, error) {
	var products []*models.Product
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(queryProductsByExactName), name); err != nil {
		return nil, fmt.Errorf("ошибка поиска продукта по точному названию %q: %w", name, err)
	}
	return products, nil
}

// FindProductsByName продукты, в названии которых встречается text (без учета регистра).
// Возвращает не более limit строк.
func (r *catalogRepositoryImpl) FindProductsByName(ctx context.Context, text string, limit int) ([]*models.Product, error) {
	var products []*models.Product
	query := r.db.Rebind(queryProductsByName)
	if err := r.db.SelectContext(ctx, &products, query, escapeLike(text), limit); err != nil {
		return nil, fmt.Errorf("ошибка поиска продукта по подстроке %q: %w", text, err)
	}
	return products, nil
}

// GetProductIDByBarcode находит ID продукта по штрихкоду
func (r *catalogRepositoryImpl) GetProductIDByBarcode(ctx context.Context, code string) (int64, error) {
	var id int64
	if err := r.db.GetContext(ctx, &id, r.db.Rebind(queryProductIDByBarcode), code); err != nil {
		return 0, wrap(err, "ошибка поиска штрихкода %q", code)
	}
	return id, nil
}

// GetLookupName возвращает имя из справочника
func (r *catalogRepositoryImpl) GetLookupName(ctx context.Context, table LookupTable, id int64) (string, error) {
	query, ok := lookupQueries[table]
	if !ok {
		return "", fmt.Errorf("неизвестный справочник %q", table)
	}

	var name sql.NullString
	if err := r.db.GetContext(ctx, &name, r.db.Rebind(query), id); err != nil {
		return "", wrap(err, "ошибка получения %s %d", table, id)
	}
	if !name.Valid {
		return "", ErrNotFound
	}
	return name.String, nil
}

// GetImage возвращает картинку из кэша каталога
func (r *catalogRepositoryImpl) GetImage(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	if err := r.db.GetContext(ctx, &data, r.db.Rebind(queryImage), name); err != nil {
		return nil, wrap(err, "ошибка получения картинки %q", name)
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	return data, nil
}

// wrap переводит sql.ErrNoRows в ErrNotFound, остальное оборачивает
func wrap(err error, format string, args ...interface{}) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы LIKE во вводе пользователя
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
