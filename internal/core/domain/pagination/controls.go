// internal/core/domain/pagination/controls.go
package pagination

import (
	"fmt"

	"catalog-lookup-bot/internal/core/domain/presentation"
)

const (
	// DefaultSelectorLimit список выбора показывается, только если результатов не больше
	DefaultSelectorLimit = 25
	// DefaultSelectorEntries максимум пунктов в списке выбора
	DefaultSelectorEntries = 24

	LabelPrev           = "Previous"
	LabelNext           = "Next"
	SelectorPlaceholder = "Select Result"
)

// BuildControls элементы управления для страницы index из len(labels)
func BuildControls(index int, labels []string, selectorLimit, selectorEntries int) *presentation.Controls {
	count := len(labels)
	controls := &presentation.Controls{}

	if count <= selectorLimit {
		n := count
		if n > selectorEntries {
			n = selectorEntries
		}
		controls.Placeholder = SelectorPlaceholder
		controls.Selector = make([]presentation.SelectOption, 0, n)
		for i := 0; i < n; i++ {
			controls.Selector = append(controls.Selector, presentation.SelectOption{Label: labels[i], Index: i})
		}
	}

	controls.Buttons = []presentation.Button{
		{ID: presentation.ControlPrev, Label: LabelPrev, Disabled: index <= 0},
		{ID: presentation.ControlNext, Label: LabelNext, Disabled: index >= count-1},
	}

	return controls
}

// Footer подпись страницы
func Footer(index, count int) string {
	return fmt.Sprintf("Page %d/%d", index+1, count)
}
