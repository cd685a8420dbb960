// internal/core/domain/search/resolver.go
package search

import (
	"context"
	"errors"

	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/models"
	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/repository"
	"catalog-lookup-bot/pkg/logger"
)

// Заглушки для неразрешенных ссылок справочников
const (
	PlaceholderUnknown = "Unknown"
	PlaceholderNA      = "N/A"
)

// DefaultMaxResults сколько товаров можно показать по одному запросу
const DefaultMaxResults = 15

// StoreView магазин с названиями из справочников
type StoreView struct {
	Store *models.Store
	// Пустая строка - название не найдено
	VendorName string
	BannerName string
}

// ProductView продукт с названиями из справочников и картинкой
type ProductView struct {
	Product    *models.Product
	TypeName   string
	RatingName string
	Genres     []string
	// Image содержимое постера из кэша каталога; nil если постера нет
	Image []byte
}

// Result найденные записи: либо магазины, либо продукты
type Result struct {
	Intent   QueryIntent
	Stores   []*StoreView
	Products []*ProductView
}

// Len количество найденных записей
func (r *Result) Len() int {
	return len(r.Stores) + len(r.Products)
}

// Resolver выполняет QueryIntent против каталога
type Resolver struct {
	repo       repository.CatalogRepository
	maxResults int
}

// NewResolver создает резолвер; maxResults <= 0 - значение по умолчанию
func NewResolver(repo repository.CatalogRepository, maxResults int) *Resolver {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Resolver{repo: repo, maxResults: maxResults}
}

// MaxResults лимит выдачи
func (r *Resolver) MaxResults() int {
	return r.maxResults
}

// Resolve возвращает обогащенные записи или одну из ошибок:
// *NotFoundError, *TooManyResultsError, *MalformedInvocationError, ErrStoreUnavailable.
func (r *Resolver) Resolve(ctx context.Context, intent QueryIntent) (*Result, error) {
	switch intent.Kind {
	case IntentStoreByID:
		return r.resolveStore(ctx, intent)
	case IntentProductByID:
		return r.resolveProductByID(ctx, intent, intent.ID)
	case IntentProductByBarcode:
		return r.resolveBarcode(ctx, intent)
	case IntentProductByName:
		return r.resolveName(ctx, intent)
	}
	return nil, &MalformedInvocationError{Diagnostic: intent.Diagnostic}
}

func (r *Resolver) resolveStore(ctx context.Context, intent QueryIntent) (*Result, error) {
	store, err := r.repo.GetStore(ctx, intent.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Intent: intent}
	}
	if err != nil {
		return nil, unavailable("get store", err)
	}

	view := &StoreView{Store: store}
	if store.VendorID.Valid {
		view.VendorName = r.lookupName(ctx, repository.TableVendor, store.VendorID.Int64, "")
	}
	if store.BannerID.Valid {
		view.BannerName = r.lookupName(ctx, repository.TableBanner, store.BannerID.Int64, "")
	}

	return &Result{Intent: intent, Stores: []*StoreView{view}}, nil
}

func (r *Resolver) resolveProductByID(ctx context.Context, intent QueryIntent, id int64) (*Result, error) {
	product, err := r.repo.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Intent: intent}
	}
	if err != nil {
		return nil, unavailable("get product", err)
	}

	return &Result{Intent: intent, Products: []*ProductView{r.enrichProduct(ctx, product)}}, nil
}

func (r *Resolver) resolveBarcode(ctx context.Context, intent QueryIntent) (*Result, error) {
	id, err := r.repo.GetProductIDByBarcode(ctx, intent.Text)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Intent: intent, BarcodeUnknown: true}
	}
	if err != nil {
		return nil, unavailable("get barcode", err)
	}
	return r.resolveProductByID(ctx, intent, id)
}

func (r *Resolver) resolveName(ctx context.Context, intent QueryIntent) (*Result, error) {
	products, err := r.repo.FindProductsByExactName(ctx, intent.Text)
	if err != nil {
		return nil, unavailable("find by exact name", err)
	}
	if len(products) > r.maxResults {
		return nil, &TooManyResultsError{Query: intent.Text, Count: len(products), Max: r.maxResults}
	}

	if len(products) == 0 {
		// на один больше лимита, чтобы заметить переполнение
		products, err = r.repo.FindProductsByName(ctx, intent.Text, r.maxResults+1)
		if err != nil {
			return nil, unavailable("find by name", err)
		}
		if len(products) > r.maxResults {
			return nil, &TooManyResultsError{Query: intent.Text, Count: len(products), Max: r.maxResults, Capped: true}
		}
	}

	if len(products) == 0 {
		return nil, &NotFoundError{Intent: intent}
	}

	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, r.enrichProduct(ctx, p))
	}
	SortByReleaseDate(views)

	return &Result{Intent: intent, Products: views}, nil
}

func (r *Resolver) enrichProduct(ctx context.Context, p *models.Product) *ProductView {
	view := &ProductView{
		Product:    p,
		TypeName:   PlaceholderUnknown,
		RatingName: PlaceholderUnknown,
	}

	if p.ProductTypeID.Valid {
		view.TypeName = r.lookupName(ctx, repository.TableProductType, p.ProductTypeID.Int64, PlaceholderUnknown)
	}
	if p.RatingID.Valid {
		view.RatingName = r.lookupName(ctx, repository.TableRating, p.RatingID.Int64, PlaceholderUnknown)
	}
	for _, id := range p.GenreIDList() {
		view.Genres = append(view.Genres, r.lookupName(ctx, repository.TableGenre, id, PlaceholderNA))
	}

	if file := models.Text(p.ImageFile); file != "" {
		data, err := r.repo.GetImage(ctx, file)
		switch {
		case err == nil:
			view.Image = data
		case errors.Is(err, repository.ErrNotFound):
			logger.Warn("🖼️ Missing poster for %s: %s", p.LongName, file)
		default:
			logger.Warn("⚠️ Не удалось прочитать постер %s: %v", file, err)
		}
	}

	return view
}

// lookupName название из справочника; отсутствие или ошибка - fallback
func (r *Resolver) lookupName(ctx context.Context, table repository.LookupTable, id int64, fallback string) string {
	name, err := r.repo.GetLookupName(ctx, table, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Warn("⚠️ Справочник %s недоступен для id %d: %v", table, id, err)
		}
		return fallback
	}
	if name == "" {
		return fallback
	}
	return name
}
