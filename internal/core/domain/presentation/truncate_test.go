package presentation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate_ShortTextUnchanged(t *testing.T) {
	exact := strings.Repeat("a", DefaultDescriptionLimit)
	assert.Equal(t, exact, Truncate(exact, DefaultDescriptionLimit))
	assert.Equal(t, "short text", Truncate("short text", DefaultDescriptionLimit))
}

func TestTruncate_CutsAtWordBoundary(t *testing.T) {
	long := strings.Repeat("word ", 1000) // 5000 символов
	got := Truncate(long, DefaultDescriptionLimit)

	assert.True(t, strings.HasSuffix(got, Ellipsis))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), DefaultDescriptionLimit)

	body := strings.TrimSuffix(got, Ellipsis)
	assert.True(t, strings.HasSuffix(body, "word"), "ends with a whole word")
	assert.True(t, strings.HasPrefix(long, body))
}

func TestTruncate_DropsSplitWord(t *testing.T) {
	got := Truncate("alpha beta gamma", 12)
	assert.Equal(t, "alpha...", got)
}

func TestTruncate_BoundaryOnSpace(t *testing.T) {
	// 9 символов помещаются, следующий символ - пробел
	got := Truncate("alpha bet gamma", 12)
	assert.Equal(t, "alpha bet...", got)
}

func TestTruncate_NewlineIsWordBoundary(t *testing.T) {
	long := strings.Repeat("abcdefg\n", 700)
	got := Truncate(long, DefaultDescriptionLimit)

	assert.LessOrEqual(t, utf8.RuneCountInString(got), DefaultDescriptionLimit)
	assert.True(t, strings.HasSuffix(got, "abcdefg"+Ellipsis), "ends with a whole line")

	assert.Equal(t, "alpha...", Truncate("alpha\tbeta\ngamma", 12))
}

func TestTruncate_NoSpaceHardCut(t *testing.T) {
	got := Truncate(strings.Repeat("x", 20), 10)
	assert.Equal(t, "xxxxxxx...", got)
}

func TestTruncate_CountsRunes(t *testing.T) {
	text := strings.Repeat("я", 10)
	assert.Equal(t, text, Truncate(text, 10))
	assert.Equal(t, "яяяяя...", Truncate(text+" ok", 8))
}
