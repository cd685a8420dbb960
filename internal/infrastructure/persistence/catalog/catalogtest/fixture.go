// internal/infrastructure/persistence/catalog/catalogtest/fixture.go
package catalogtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Schema схема каталога в том виде, в каком ее выгружает источник
const Schema = `
CREATE TABLE Store (
	Id INTEGER PRIMARY KEY, Address TEXT, Address2 TEXT, City TEXT, State TEXT,
	County TEXT, Zip TEXT, VendorId INTEGER, BannerId INTEGER, OpenDate TEXT
);
CREATE TABLE ProductCatalog (
	Id INTEGER PRIMARY KEY, LongName TEXT NOT NULL, Description TEXT,
	ProductTypeId INTEGER, RatingId INTEGER, GenreIds TEXT,
	ReleaseDate TEXT, MerchandiseDate TEXT, NationalStreetDate TEXT, DoNotRentDate TEXT,
	ImageFile TEXT, Studio TEXT, RunningTime TEXT, Stars TEXT
);
CREATE TABLE Barcodes (Barcode TEXT PRIMARY KEY, ProductId INTEGER NOT NULL);
CREATE TABLE Vendor (Id INTEGER PRIMARY KEY, Name TEXT);
CREATE TABLE Banner (Id INTEGER PRIMARY KEY, Name TEXT);
CREATE TABLE ProductType (Id INTEGER PRIMARY KEY, ProductTypeName TEXT);
CREATE TABLE ProductRating (Id INTEGER PRIMARY KEY, Name TEXT);
CREATE TABLE Genres (Id INTEGER PRIMARY KEY, Name TEXT);
CREATE TABLE Cache (Name TEXT PRIMARY KEY, Data BLOB);
`

var dbCounter atomic.Int64

// NewDB создает пустой каталог в памяти, общий для всех соединений пула
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:catalog%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

// Exec выполняет вставку фикстуры
func Exec(t testing.TB, db *sqlx.DB, query string, args ...interface{}) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("fixture %q: %v", query, err)
	}
}

// Product минимальные поля продукта для фикстур
type Product struct {
	ID            int64
	LongName      string
	Description   interface{}
	ProductTypeID interface{}
	RatingID      interface{}
	GenreIDs      interface{}
	ReleaseDate   interface{}
	DoNotRentDate interface{}
	ImageFile     interface{}
	Studio        interface{}
	RunningTime   interface{}
	Stars         interface{}
}

// InsertProduct добавляет продукт; nil-поля сохраняются как NULL
func InsertProduct(t testing.TB, db *sqlx.DB, p Product) {
	t.Helper()
	Exec(t, db, `INSERT INTO ProductCatalog
		(Id, LongName, Description, ProductTypeId, RatingId, GenreIds, ReleaseDate,
		 DoNotRentDate, ImageFile, Studio, RunningTime, Stars)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.LongName, p.Description, p.ProductTypeID, p.RatingID, p.GenreIDs,
		p.ReleaseDate, p.DoNotRentDate, p.ImageFile, p.Studio, p.RunningTime, p.Stars)
}
