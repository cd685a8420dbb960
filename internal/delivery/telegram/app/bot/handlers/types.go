// internal/delivery/telegram/app/bot/handlers/types.go
package handlers

import "context"

// HandlerType тип хэндлера
type HandlerType string

const (
	TypeCommand  HandlerType = "command"
	TypeCallback HandlerType = "callback"
)

// Handler интерфейс для всех хэндлеров
type Handler interface {
	Execute(ctx context.Context, params HandlerParams) (HandlerResult, error)
	GetName() string
	GetCommand() string // Команда без / или префикс callback'а
	GetType() HandlerType
}

// HandlerParams базовые параметры для всех хэндлеров
type HandlerParams struct {
	UpdateID  int64
	ChatID    int64
	ChatType  string
	MessageID int64
	UserID    int64
	Username  string
	Text      string // текст сообщения
	Data      string // для callback данных
	// CallbackID пустой для команд
	CallbackID string
}

// HandlerResult базовый результат хэндлера.
// Непустой Message бот отправляет в чат как HTML.
type HandlerResult struct {
	Message string
}
