package search

import (
	"database/sql"
	"testing"

	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/models"

	"github.com/stretchr/testify/assert"
)

func productWithDate(id int64, release string) *ProductView {
	p := &models.Product{ID: id}
	if release != "" {
		p.ReleaseDate = sql.NullString{String: release, Valid: true}
	}
	return &ProductView{Product: p}
}

func ids(views []*ProductView) []int64 {
	out := make([]int64, len(views))
	for i, v := range views {
		out[i] = v.Product.ID
	}
	return out
}

func TestSortByReleaseDate(t *testing.T) {
	views := []*ProductView{
		productWithDate(1, "20200101000000"),
		productWithDate(2, ""),
		productWithDate(3, "20220615000000"),
	}

	SortByReleaseDate(views)

	assert.Equal(t, []int64{3, 2, 1}, ids(views))
}

func TestSortByReleaseDate_UndatedKeepSlots(t *testing.T) {
	views := []*ProductView{
		productWithDate(1, "garbage"),
		productWithDate(2, "19990101000000"),
		productWithDate(3, "20050101000000"),
		productWithDate(4, ""),
		productWithDate(5, "20010101000000"),
	}

	SortByReleaseDate(views)

	assert.Equal(t, []int64{1, 3, 5, 4, 2}, ids(views))
}

func TestSortByReleaseDate_StableForEqualDates(t *testing.T) {
	views := []*ProductView{
		productWithDate(1, "20200101000000"),
		productWithDate(2, "20200101000000"),
		productWithDate(3, "20210101000000"),
	}

	SortByReleaseDate(views)

	assert.Equal(t, []int64{3, 1, 2}, ids(views))
}
