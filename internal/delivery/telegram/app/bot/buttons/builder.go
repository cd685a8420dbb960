// internal/delivery/telegram/app/bot/buttons/builder.go
package buttons

import (
	"fmt"
	"strconv"

	"catalog-lookup-bot/internal/core/domain/presentation"
	"catalog-lookup-bot/internal/delivery/telegram"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/constants"
)

// ButtonBuilder - построитель кнопок
type ButtonBuilder struct{}

// NewButtonBuilder создает новый построитель кнопок
func NewButtonBuilder() *ButtonBuilder {
	return &ButtonBuilder{}
}

// CreateControlsKeyboard переводит элементы управления в inline-клавиатуру:
// сначала пункты списка выбора (по одному в строке), затем строка навигации.
// Для пустых элементов управления возвращает nil.
func (b *ButtonBuilder) CreateControlsKeyboard(controls *presentation.Controls) *telegram.InlineKeyboardMarkup {
	if controls.Empty() {
		return nil
	}

	rows := make([][]telegram.InlineKeyboardButton, 0, len(controls.Selector)+1)

	for _, opt := range controls.Selector {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         b.selectorLabel(opt),
			CallbackData: constants.CallbackPageSelect + strconv.Itoa(opt.Index),
		}})
	}

	if len(controls.Buttons) > 0 {
		nav := make([]telegram.InlineKeyboardButton, 0, len(controls.Buttons))
		for _, btn := range controls.Buttons {
			nav = append(nav, b.navButton(btn))
		}
		rows = append(rows, nav)
	}

	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// navButton кнопка навигации; у Telegram нет неактивных кнопок,
// поэтому неактивная получает приглушенную подпись и пустой callback
func (b *ButtonBuilder) navButton(btn presentation.Button) telegram.InlineKeyboardButton {
	if btn.Disabled {
		return telegram.InlineKeyboardButton{
			Text:         fmt.Sprintf(constants.ButtonTexts.DisabledFormat, btn.Label),
			CallbackData: constants.CallbackPageNoop,
		}
	}

	data := constants.CallbackPageNoop
	switch btn.ID {
	case presentation.ControlPrev:
		data = constants.CallbackPagePrev
	case presentation.ControlNext:
		data = constants.CallbackPageNext
	}
	return telegram.InlineKeyboardButton{Text: btn.Label, CallbackData: data}
}

func (b *ButtonBuilder) selectorLabel(opt presentation.SelectOption) string {
	label := []rune(opt.Label)
	if len(label) > constants.MaxSelectorLabel {
		label = append(label[:constants.MaxSelectorLabel-1], '…')
	}
	return fmt.Sprintf(constants.ButtonTexts.SelectorFormat, opt.Index+1, string(label))
}
