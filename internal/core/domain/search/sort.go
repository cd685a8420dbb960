// internal/core/domain/search/sort.go
package search

import (
	"sort"
	"time"

	"catalog-lookup-bot/internal/infrastructure/persistence/catalog/models"
	"catalog-lookup-bot/pkg/catalogdate"
)

// SortByReleaseDate упорядочивает продукты по дате выхода, новые первыми.
// Продукты без разбираемой даты остаются на своих позициях, датированные
// сортируются (стабильно) среди оставшихся позиций.
func SortByReleaseDate(views []*ProductView) {
	type dated struct {
		view *ProductView
		at   time.Time
	}

	var slots []int
	var items []dated
	for i, v := range views {
		at, err := catalogdate.Decode(models.Text(v.Product.ReleaseDate))
		if err != nil {
			continue
		}
		slots = append(slots, i)
		items = append(items, dated{view: v, at: at})
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].at.After(items[b].at)
	})

	for i, slot := range slots {
		views[slot] = items[i].view
	}
}
