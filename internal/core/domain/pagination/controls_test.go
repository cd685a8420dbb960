package pagination

import (
	"fmt"
	"testing"

	"catalog-lookup-bot/internal/core/domain/presentation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Result %d", i+1)
	}
	return out
}

func button(t *testing.T, c *presentation.Controls, id string) presentation.Button {
	t.Helper()
	for _, b := range c.Buttons {
		if b.ID == id {
			return b
		}
	}
	require.Failf(t, "button not found", "%s", id)
	return presentation.Button{}
}

func TestBuildControls_Boundaries(t *testing.T) {
	first := BuildControls(0, labels(3), DefaultSelectorLimit, DefaultSelectorEntries)
	assert.True(t, button(t, first, presentation.ControlPrev).Disabled)
	assert.False(t, button(t, first, presentation.ControlNext).Disabled)

	middle := BuildControls(1, labels(3), DefaultSelectorLimit, DefaultSelectorEntries)
	assert.False(t, button(t, middle, presentation.ControlPrev).Disabled)
	assert.False(t, button(t, middle, presentation.ControlNext).Disabled)

	last := BuildControls(2, labels(3), DefaultSelectorLimit, DefaultSelectorEntries)
	assert.False(t, button(t, last, presentation.ControlPrev).Disabled)
	assert.True(t, button(t, last, presentation.ControlNext).Disabled)
}

func TestBuildControls_Selector(t *testing.T) {
	small := BuildControls(0, labels(3), DefaultSelectorLimit, DefaultSelectorEntries)
	require.Len(t, small.Selector, 3)
	assert.Equal(t, presentation.SelectOption{Label: "Result 2", Index: 1}, small.Selector[1])
	assert.Equal(t, SelectorPlaceholder, small.Placeholder)

	full := BuildControls(0, labels(25), DefaultSelectorLimit, DefaultSelectorEntries)
	assert.Len(t, full.Selector, 24, "selector lists at most 24 entries")

	over := BuildControls(0, labels(26), DefaultSelectorLimit, DefaultSelectorEntries)
	assert.Empty(t, over.Selector)
	assert.Len(t, over.Buttons, 2)
}

func TestFooter(t *testing.T) {
	assert.Equal(t, "Page 1/3", Footer(0, 3))
	assert.Equal(t, "Page 3/3", Footer(2, 3))
}
