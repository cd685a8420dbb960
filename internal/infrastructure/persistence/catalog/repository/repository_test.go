package repository

import (
	"context"
	"fmt"
	"testing"

	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/catalogtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (CatalogRepository, func(string, ...interface{})) {
	db := catalogtest.NewDB(t)
	exec := func(q string, args ...interface{}) { catalogtest.Exec(t, db, q, args...) }
	return NewCatalogRepository(db), exec
}

func TestGetStore(t *testing.T) {
	repo, exec := newRepo(t)
	exec(`INSERT INTO Store (Id, Address, City, Zip, VendorId, OpenDate) VALUES (12, '1 Main St', 'Springfield', 12345, 3, '20200115000000')`)
	ctx := context.Background()

	store, err := repo.GetStore(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), store.ID)
	assert.Equal(t, "Springfield", store.City.String)
	assert.Equal(t, "12345", store.Zip.String)
	assert.False(t, store.Address2.Valid)
	assert.Equal(t, int64(3), store.VendorID.Int64)
	assert.False(t, store.BannerID.Valid)

	_, err = repo.GetStore(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProductAndBarcode(t *testing.T) {
	db := catalogtest.NewDB(t)
	repo := NewCatalogRepository(db)
	catalogtest.InsertProduct(t, db, catalogtest.Product{ID: 7, LongName: "Heat", GenreIDs: "[1,2]", ReleaseDate: "19951215000000"})
	catalogtest.Exec(t, db, `INSERT INTO Barcodes (Barcode, ProductId) VALUES ('0123', 7)`)
	ctx := context.Background()

	product, err := repo.GetProduct(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Heat", product.LongName)
	assert.Equal(t, []int64{1, 2}, product.GenreIDList())

	id, err := repo.GetProductIDByBarcode(ctx, "0123")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = repo.GetProductIDByBarcode(ctx, "9999")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetProduct(ctx, 8)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindProductsByName(t *testing.T) {
	repo, exec := newRepo(t)
	exec(`INSERT INTO ProductCatalog (Id, LongName) VALUES (1, 'Foo'), (2, 'The Foo Returns'), (3, 'Bar'), (4, '100% Foo_d')`)
	ctx := context.Background()

	exact, err := repo.FindProductsByExactName(ctx, "Foo")
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, int64(1), exact[0].ID)

	partial, err := repo.FindProductsByName(ctx, "foo", 10)
	require.NoError(t, err)
	assert.Len(t, partial, 3, "substring match ignores case")

	limited, err := repo.FindProductsByName(ctx, "foo", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	escaped, err := repo.FindProductsByName(ctx, "0% foo_", 10)
	require.NoError(t, err)
	require.Len(t, escaped, 1)
	assert.Equal(t, int64(4), escaped[0].ID)

	none, err := repo.FindProductsByName(ctx, "f_o", 10)
	require.NoError(t, err)
	assert.Empty(t, none, "underscore is not a wildcard")
}

func TestFindProductsByName_LimitBoundary(t *testing.T) {
	repo, exec := newRepo(t)
	for i := 1; i <= 16; i++ {
		exec(`INSERT INTO ProductCatalog (Id, LongName) VALUES (?, ?)`, i, fmt.Sprintf("Saga part %d", i))
	}

	got, err := repo.FindProductsByName(context.Background(), "saga", 16)
	require.NoError(t, err)
	assert.Len(t, got, 16)
}

func TestGetLookupName(t *testing.T) {
	repo, exec := newRepo(t)
	exec(`INSERT INTO Vendor (Id, Name) VALUES (1, 'Acme')`)
	exec(`INSERT INTO Banner (Id, Name) VALUES (2, 'Mega')`)
	exec(`INSERT INTO ProductType (Id, ProductTypeName) VALUES (1, 'Movie')`)
	exec(`INSERT INTO ProductRating (Id, Name) VALUES (4, 'PG-13')`)
	exec(`INSERT INTO Genres (Id, Name) VALUES (5, 'Drama'), (6, NULL)`)
	ctx := context.Background()

	cases := []struct {
		table LookupTable
		id    int64
		want  string
	}{
		{TableVendor, 1, "Acme"},
		{TableBanner, 2, "Mega"},
		{TableProductType, 1, "Movie"},
		{TableRating, 4, "PG-13"},
		{TableGenre, 5, "Drama"},
	}
	for _, tc := range cases {
		got, err := repo.GetLookupName(ctx, tc.table, tc.id)
		require.NoError(t, err, tc.table)
		assert.Equal(t, tc.want, got)
	}

	_, err := repo.GetLookupName(ctx, TableGenre, 6)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetLookupName(ctx, TableVendor, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetLookupName(ctx, LookupTable("nope"), 1)
	assert.Error(t, err)
}

func TestGetImage(t *testing.T) {
	repo, exec := newRepo(t)
	exec(`INSERT INTO Cache (Name, Data) VALUES ('poster.jpg', ?), ('empty.jpg', NULL)`, []byte{0xff, 0xd8})
	ctx := context.Background()

	data, err := repo.GetImage(ctx, "poster.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, data)

	_, err = repo.GetImage(ctx, "empty.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetImage(ctx, "absent.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClosedDatabaseIsOperationalFault(t *testing.T) {
	db := catalogtest.NewDB(t)
	repo := NewCatalogRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.GetStore(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
