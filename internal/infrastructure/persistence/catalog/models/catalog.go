// internal/infrastructure/persistence/catalog/models/catalog.go
package models

import (
	"database/sql"
	"encoding/json"
	"strings"
)

// Store магазин сети
type Store struct {
	ID       int64          `db:"id" json:"id"`
	Address  sql.NullString `db:"address" json:"address"`
	Address2 sql.NullString `db:"address2" json:"address2"`
	City     sql.NullString `db:"city" json:"city"`
	State    sql.NullString `db:"state" json:"state"`
	County   sql.NullString `db:"county" json:"county"`
	Zip      sql.NullString `db:"zip" json:"zip"`
	VendorID sql.NullInt64  `db:"vendor_id" json:"vendor_id"`
	BannerID sql.NullInt64  `db:"banner_id" json:"banner_id"`
	OpenDate sql.NullString `db:"open_date" json:"open_date"` // YYYYMMDDHHMMSS
}

// Product позиция каталога
type Product struct {
	ID                 int64          `db:"id" json:"id"`
	LongName           string         `db:"long_name" json:"long_name"`
	Description        sql.NullString `db:"description" json:"description"`
	ProductTypeID      sql.NullInt64  `db:"product_type_id" json:"product_type_id"`
	RatingID           sql.NullInt64  `db:"rating_id" json:"rating_id"`
	GenreIDs           sql.NullString `db:"genre_ids" json:"genre_ids"` // JSON-массив id
	ReleaseDate        sql.NullString `db:"release_date" json:"release_date"`
	MerchandiseDate    sql.NullString `db:"merchandise_date" json:"merchandise_date"`
	NationalStreetDate sql.NullString `db:"national_street_date" json:"national_street_date"`
	DoNotRentDate      sql.NullString `db:"do_not_rent_date" json:"do_not_rent_date"`
	ImageFile          sql.NullString `db:"image_file" json:"image_file"`
	Studio             sql.NullString `db:"studio" json:"studio"`
	RunningTime        sql.NullString `db:"running_time" json:"running_time"`
	Stars              sql.NullString `db:"stars" json:"stars"`
}

// Barcode связь штрихкода с продуктом
type Barcode struct {
	Barcode   string `db:"barcode" json:"barcode"`
	ProductID int64  `db:"product_id" json:"product_id"`
}

// LookupName строка справочника (Vendor, Banner, ProductType, ProductRating, Genres)
type LookupName struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// CachedImage картинка из таблицы Cache
type CachedImage struct {
	Name string `db:"name" json:"name"`
	Data []byte `db:"data" json:"-"`
}

// HasDoNotRent true если у продукта заполнена дата DNR
func (p *Product) HasDoNotRent() bool {
	return p.DoNotRentDate.Valid && strings.TrimSpace(p.DoNotRentDate.String) != ""
}

// GenreIDList разбирает сериализованный список жанров.
// Некорректный JSON считается пустым списком.
func (p *Product) GenreIDList() []int64 {
	if !p.GenreIDs.Valid || strings.TrimSpace(p.GenreIDs.String) == "" {
		return nil
	}

	var ids []int64
	if err := json.Unmarshal([]byte(p.GenreIDs.String), &ids); err != nil {
		return nil
	}
	return ids
}

// Text возвращает значение nullable-строки без пробелов по краям
func Text(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return strings.TrimSpace(v.String)
}
