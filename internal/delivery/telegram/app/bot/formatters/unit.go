// internal/delivery/telegram/app/bot/formatters/unit.go
package formatters

import (
	"html"
	"strings"
	"unicode/utf8"

	"catalog-lookup-bot/internal/core/domain/presentation"
)

const (
	inlineSeparator = " · "
	minDescription  = len(presentation.Ellipsis) + 1
)

// UnitFormatter превращает сообщение с карточкой в HTML для Bot API
type UnitFormatter struct{}

// NewUnitFormatter создает форматтер карточек
func NewUnitFormatter() *UnitFormatter {
	return &UnitFormatter{}
}

// Render HTML-текст сообщения. limit - лимит видимых символов
// (4096 для текста, 1024 для подписи к фото); при превышении
// сокращается описание карточки.
func (f *UnitFormatter) Render(msg presentation.Message, limit int) string {
	description := ""
	if msg.Unit != nil {
		description = msg.Unit.Description
	}

	if description != "" && limit > 0 {
		fixed := utf8.RuneCountInString(f.build(msg, "", false))
		budget := limit - fixed - 2 // пустая строка перед описанием
		switch {
		case budget < minDescription:
			description = ""
		case utf8.RuneCountInString(description) > budget:
			description = presentation.Truncate(description, budget)
		}
	}

	return f.build(msg, description, true)
}

// build собирает сообщение; markup=false дает видимый текст без разметки
func (f *UnitFormatter) build(msg presentation.Message, description string, markup bool) string {
	esc := func(s string) string {
		if markup {
			return html.EscapeString(s)
		}
		return s
	}
	wrap := func(tag, s string) string {
		if markup {
			return "<" + tag + ">" + s + "</" + tag + ">"
		}
		return s
	}

	var blocks []string

	if msg.Content != "" {
		blocks = append(blocks, esc(msg.Content))
	}

	if u := msg.Unit; u != nil {
		if u.Title != "" {
			blocks = append(blocks, wrap("b", esc(u.Title)))
		}
		if description != "" {
			blocks = append(blocks, esc(description))
		}
		if fields := f.fields(u.Fields, esc, wrap); fields != "" {
			blocks = append(blocks, fields)
		}
		if u.Footer != "" {
			blocks = append(blocks, wrap("i", esc(u.Footer)))
		}
	}

	return strings.Join(blocks, "\n\n")
}

// fields подряд идущие inline-поля выводятся в одну строку
func (f *UnitFormatter) fields(fields []presentation.Field, esc func(string) string, wrap func(string, string) string) string {
	var (
		lines  []string
		inline []string
	)

	flush := func() {
		if len(inline) > 0 {
			lines = append(lines, strings.Join(inline, inlineSeparator))
			inline = nil
		}
	}

	for _, field := range fields {
		text := wrap("b", esc(field.Name)+":") + " " + esc(field.Value)
		if field.Inline {
			inline = append(inline, text)
			continue
		}
		flush()
		lines = append(lines, text)
	}
	flush()

	return strings.Join(lines, "\n")
}
