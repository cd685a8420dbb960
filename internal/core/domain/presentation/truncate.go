// internal/core/domain/presentation/truncate.go
package presentation

import (
	"strings"
	"unicode"
)

const (
	DefaultDescriptionLimit = 4096
	Ellipsis                = "..."
)

// Truncate обрезает текст длиннее limit символов по последнему целому слову
// и добавляет многоточие. Результат не длиннее limit. Текст не длиннее
// limit возвращается без изменений.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	room := limit - len(Ellipsis)
	if room <= 0 {
		return string(runes[:limit])
	}

	cut := string(runes[:room])
	// слово, разрезанное границей, отбрасывается целиком
	if !unicode.IsSpace(runes[room]) {
		if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
			cut = cut[:idx]
		}
	}

	return strings.TrimRightFunc(cut, unicode.IsSpace) + Ellipsis
}
