package search

import (
	"context"
	"fmt"
	"testing"

	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/catalogtest"
	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/repository"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T) (*Resolver, *sqlx.DB) {
	db := catalogtest.NewDB(t)
	return NewResolver(repository.NewCatalogRepository(db), DefaultMaxResults), db
}

func TestResolve_StoreByID(t *testing.T) {
	r, db := newResolver(t)
	catalogtest.Exec(t, db, `INSERT INTO Vendor (Id, Name) VALUES (1, 'Acme')`)
	catalogtest.Exec(t, db, `INSERT INTO Store (Id, City, VendorId, BannerId) VALUES (12, 'Austin', 1, 9)`)

	res, err := r.Resolve(context.Background(), QueryIntent{Kind: IntentStoreByID, ID: 12})
	require.NoError(t, err)
	require.Len(t, res.Stores, 1)
	assert.Equal(t, "Acme", res.Stores[0].VendorName)
	assert.Empty(t, res.Stores[0].BannerName, "missing banner stays unresolved")
	assert.Equal(t, 1, res.Len())
}

func TestResolve_NotFoundMessages(t *testing.T) {
	r, _ := newResolver(t)
	ctx := context.Background()

	tests := []struct {
		intent QueryIntent
		msg    string
	}{
		{QueryIntent{Kind: IntentStoreByID, ID: 404}, "Store with ID 404 not found"},
		{QueryIntent{Kind: IntentProductByID, ID: 9}, "Product with ID '9' not found"},
		{QueryIntent{Kind: IntentProductByName, Text: "Nope"}, "Product with Name 'Nope' not found"},
		{QueryIntent{Kind: IntentProductByBarcode, Text: "000"}, "Barcode '000' not found"},
	}

	for _, tt := range tests {
		_, err := r.Resolve(ctx, tt.intent)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, tt.msg, err.Error())
	}
}

func TestResolve_BarcodeWithMissingProduct(t *testing.T) {
	r, db := newResolver(t)
	catalogtest.Exec(t, db, `INSERT INTO Barcodes (Barcode, ProductId) VALUES ('555', 77)`)

	_, err := r.Resolve(context.Background(), QueryIntent{Kind: IntentProductByBarcode, Text: "555"})
	require.Error(t, err)
	assert.Equal(t, "Product with Barcode '555' not found", err.Error())
}

func TestResolve_ProductEnrichment(t *testing.T) {
	r, db := newResolver(t)
	catalogtest.Exec(t, db, `INSERT INTO ProductType (Id, ProductTypeName) VALUES (1, 'Movie')`)
	catalogtest.Exec(t, db, `INSERT INTO Genres (Id, Name) VALUES (1, 'Action')`)
	catalogtest.Exec(t, db, `INSERT INTO Cache (Name, Data) VALUES ('heat.jpg', X'FFD8')`)
	catalogtest.InsertProduct(t, db, catalogtest.Product{
		ID: 7, LongName: "Heat", ProductTypeID: 1, RatingID: 3, GenreIDs: "[1, 2]", ImageFile: "heat.jpg",
	})
	catalogtest.Exec(t, db, `INSERT INTO Barcodes (Barcode, ProductId) VALUES ('0123', 7)`)

	res, err := r.Resolve(context.Background(), QueryIntent{Kind: IntentProductByBarcode, Text: "0123"})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)

	view := res.Products[0]
	assert.Equal(t, "Movie", view.TypeName)
	assert.Equal(t, PlaceholderUnknown, view.RatingName)
	assert.Equal(t, []string{"Action", PlaceholderNA}, view.Genres)
	assert.Equal(t, []byte{0xff, 0xd8}, view.Image)
}

func TestResolve_MalformedGenreListIsEmpty(t *testing.T) {
	r, db := newResolver(t)
	catalogtest.InsertProduct(t, db, catalogtest.Product{ID: 1, LongName: "Odd", GenreIDs: "not json", ImageFile: "gone.jpg"})

	res, err := r.Resolve(context.Background(), QueryIntent{Kind: IntentProductByID, ID: 1})
	require.NoError(t, err)
	assert.Empty(t, res.Products[0].Genres)
	assert.Nil(t, res.Products[0].Image)
}

func TestResolve_ExactNameWins(t *testing.T) {
	r, db := newResolver(t)
	catalogtest.Exec(t, db, `INSERT INTO ProductCatalog (Id, LongName) VALUES (1, 'Foo'), (2, 'Foo Fighters'), (3, 'The Foo')`)

	res, err := r.Resolve(context.Background(), QueryIntent{Kind: IntentProductByName, Text: "Foo"})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, int64(1), res.Products[0].Product.ID)
}

func TestResolve_SubstringMatchSortedByRelease(t *testing.T) {
	r, db := newResolver(t)
	catalogtest.InsertProduct(t, db, catalogtest.Product{ID: 1, LongName: "Saga One", ReleaseDate: "20200101000000"})
	catalogtest.InsertProduct(t, db, catalogtest.Product{ID: 2, LongName: "Saga Two"})
	catalogtest.InsertProduct(t, db, catalogtest.Product{ID: 3, LongName: "saga three", ReleaseDate: "20220615000000"})

	res, err := r.Resolve(context.Background(), QueryIntent{Kind: IntentProductByName, Text: "SAGA"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, ids(res.Products))
}

func TestResolve_ResultCountBoundary(t *testing.T) {
	r, db := newResolver(t)
	for i := 1; i <= 15; i++ {
		catalogtest.Exec(t, db, `INSERT INTO ProductCatalog (Id, LongName) VALUES (?, ?)`, i, fmt.Sprintf("Match %d", i))
	}
	ctx := context.Background()
	intent := QueryIntent{Kind: IntentProductByName, Text: "match"}

	res, err := r.Resolve(ctx, intent)
	require.NoError(t, err)
	assert.Len(t, res.Products, 15)

	catalogtest.Exec(t, db, `INSERT INTO ProductCatalog (Id, LongName) VALUES (16, 'Match 16')`)
	_, err = r.Resolve(ctx, intent)
	var tooMany *TooManyResultsError
	require.ErrorAs(t, err, &tooMany)
	assert.True(t, tooMany.Capped)
	assert.Equal(t, "Found 15+ products matching 'match', please narrow your search (max 15)", err.Error())
}

func TestResolve_TooManyExactMatches(t *testing.T) {
	db := catalogtest.NewDB(t)
	r := NewResolver(repository.NewCatalogRepository(db), 2)
	for i := 1; i <= 3; i++ {
		catalogtest.Exec(t, db, `INSERT INTO ProductCatalog (Id, LongName) VALUES (?, 'Same')`, i)
	}

	_, err := r.Resolve(context.Background(), QueryIntent{Kind: IntentProductByName, Text: "Same"})
	require.Error(t, err)
	assert.Equal(t, "Found 3 products matching 'Same', please narrow your search (max 2)", err.Error())
}

func TestResolve_Malformed(t *testing.T) {
	r, _ := newResolver(t)

	_, err := r.Resolve(context.Background(), QueryIntent{Kind: IntentMalformed, Diagnostic: DiagnosticUnknownCommand})
	var m *MalformedInvocationError
	require.ErrorAs(t, err, &m)
	assert.Equal(t, DiagnosticUnknownCommand, err.Error())
}

func TestResolve_StoreUnavailable(t *testing.T) {
	r, db := newResolver(t)
	require.NoError(t, db.Close())

	_, err := r.Resolve(context.Background(), QueryIntent{Kind: IntentProductByName, Text: "x"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestNewResolver_DefaultMax(t *testing.T) {
	r := NewResolver(nil, 0)
	assert.Equal(t, DefaultMaxResults, r.MaxResults())
}
