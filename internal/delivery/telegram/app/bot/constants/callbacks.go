// internal/delivery/telegram/app/bot/constants/callbacks.go
package constants

// Callback constants
const (
	// CallbackPagination общий префикс кнопок листания
	CallbackPagination = "pg:"

	CallbackPagePrev   = "pg:prev"
	CallbackPageNext   = "pg:next"
	CallbackPageSelect = "pg:sel:" // pg:sel:<индекс>
	CallbackPageNoop   = "pg:noop" // неактивная кнопка
)
