// internal/core/domain/presentation/formatter.go
package presentation

import (
	"fmt"
	"strconv"
	"strings"

	"catalog-lookup-bot/assets"
	"catalog-lookup-bot/internal/core/domain/search"
	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/models"
	"catalog-lookup-bot/pkg/catalogdate"
)

// DefaultMovieTypeID тип продукта, для которого показывается заглушка фильма
const DefaultMovieTypeID = 1

const doNotRentMarker = " ⚠"

// Config настройки форматирования
type Config struct {
	DescriptionLimit int
	MovieTypeID      int64
	// Заглушки постеров; пустые - встроенные картинки
	MovieFallback *Attachment
	GameFallback  *Attachment
}

// Formatter строит карточки из найденных записей
type Formatter struct {
	descriptionLimit int
	movieTypeID      int64
	movieFallback    Attachment
	gameFallback     Attachment
}

func NewFormatter(cfg Config) *Formatter {
	f := &Formatter{
		descriptionLimit: cfg.DescriptionLimit,
		movieTypeID:      cfg.MovieTypeID,
		movieFallback:    Attachment{Name: assets.MovieMissingImageName, Data: assets.MovieMissingImage},
		gameFallback:     Attachment{Name: assets.GameMissingImageName, Data: assets.GameMissingImage},
	}
	if f.descriptionLimit <= 0 {
		f.descriptionLimit = DefaultDescriptionLimit
	}
	if f.movieTypeID == 0 {
		f.movieTypeID = DefaultMovieTypeID
	}
	if cfg.MovieFallback != nil {
		f.movieFallback = *cfg.MovieFallback
	}
	if cfg.GameFallback != nil {
		f.gameFallback = *cfg.GameFallback
	}
	return f
}

// FormatResult по карточке на каждую запись в порядке результата
func (f *Formatter) FormatResult(res *search.Result) []Unit {
	units := make([]Unit, 0, res.Len())
	for _, s := range res.Stores {
		units = append(units, f.FormatStore(s))
	}
	for _, p := range res.Products {
		units = append(units, f.FormatProduct(p))
	}
	return units
}

// FormatStore карточка магазина
func (f *Formatter) FormatStore(v *search.StoreView) Unit {
	s := v.Store
	title := fmt.Sprintf("Store %d", s.ID)

	var fields []Field
	if addr2 := models.Text(s.Address2); addr2 != "" {
		fields = append(fields, Field{Name: "Address 2", Value: addr2})
	}

	fields = append(fields,
		Field{Name: "City", Value: orNA(models.Text(s.City)), Inline: true},
		Field{Name: "State", Value: orNA(models.Text(s.State)), Inline: true},
		Field{Name: "County", Value: orNA(models.Text(s.County)), Inline: true},
		Field{Name: "Zip", Value: orNA(models.Text(s.Zip)), Inline: true},
	)

	switch {
	case v.VendorName != "":
		fields = append(fields, Field{Name: "Vendor", Value: v.VendorName, Inline: true})
	case v.BannerName != "":
		fields = append(fields, Field{Name: "Banner", Value: v.BannerName, Inline: true})
	}

	if open := models.Text(s.OpenDate); open != "" {
		fields = append(fields, Field{Name: "Open Date", Value: catalogdate.Format(open), Inline: true})
	}

	fields = append(fields, Field{Name: "Address", Value: orNA(models.Text(s.Address))})

	return Unit{
		Title:  title,
		Color:  Color,
		Fields: fields,
		Label:  title,
	}
}

// FormatProduct карточка продукта с постером или заглушкой
func (f *Formatter) FormatProduct(v *search.ProductView) Unit {
	p := v.Product

	title := p.LongName + " - " + strconv.FormatInt(p.ID, 10)
	if p.HasDoNotRent() {
		title += doNotRentMarker
	}

	genres := PlaceholderNA
	if len(v.Genres) > 0 {
		genres = strings.Join(v.Genres, ", ")
	}

	fields := []Field{
		{Name: "Product Type", Value: orDefault(v.TypeName, search.PlaceholderUnknown), Inline: true},
		{Name: "Rating", Value: orDefault(v.RatingName, search.PlaceholderUnknown), Inline: true},
		{Name: "Runtime", Value: orDefault(models.Text(p.RunningTime), search.PlaceholderUnknown), Inline: true},
		{Name: "Release Date", Value: formatDate(p.ReleaseDate.String), Inline: true},
		{Name: "National Street Date", Value: formatDate(p.NationalStreetDate.String), Inline: true},
		{Name: "Merchandise Date", Value: formatDate(p.MerchandiseDate.String), Inline: true},
	}
	if p.HasDoNotRent() {
		fields = append(fields, Field{Name: "DNR Date", Value: formatDate(p.DoNotRentDate.String), Inline: true})
	}
	fields = append(fields,
		Field{Name: "Genres", Value: genres, Inline: true},
		Field{Name: "Stars", Value: orNA(models.Text(p.Stars)), Inline: true},
		Field{Name: "Studio", Value: orNA(models.Text(p.Studio)), Inline: true},
	)

	description := models.Text(p.Description)
	if description == "" {
		description = PlaceholderNA
	}

	image := f.productImage(v)

	return Unit{
		Title:       title,
		Description: Truncate(description, f.descriptionLimit),
		Color:       Color,
		Fields:      fields,
		Image:       image,
		ImageURL:    AttachmentURL(image.Name),
		Label:       p.LongName,
	}
}

// productImage постер из кэша каталога или заглушка по типу продукта
func (f *Formatter) productImage(v *search.ProductView) *Attachment {
	name := models.Text(v.Product.ImageFile)
	if name != "" && len(v.Image) > 0 {
		return &Attachment{Name: name, Data: v.Image}
	}

	fallback := f.gameFallback
	if v.Product.ProductTypeID.Valid && v.Product.ProductTypeID.Int64 == f.movieTypeID {
		fallback = f.movieFallback
	}
	return &fallback
}

// PlaceholderNA значение по умолчанию для пустых полей
const PlaceholderNA = search.PlaceholderNA

func orNA(s string) string {
	return orDefault(s, PlaceholderNA)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func formatDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return PlaceholderNA
	}
	return catalogdate.Format(raw)
}
