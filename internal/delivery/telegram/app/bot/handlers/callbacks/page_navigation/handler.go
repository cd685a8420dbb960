// internal/delivery/telegram/app/bot/handlers/callbacks/page_navigation/handler.go
package page_navigation

import (
	"context"
	"strconv"
	"strings"

	"catalog-lookup-bot/internal/core/domain/pagination"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/constants"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers/base"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/message_sender"
	"catalog-lookup-bot/pkg/logger"
)

// Navigator применяет нажатия к сессиям листания
type Navigator interface {
	HandleEvent(ctx context.Context, ev pagination.Event) (applied bool, err error)
}

// CallbackAnswerer закрывает индикатор загрузки на кнопке
type CallbackAnswerer interface {
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// pageNavigationHandler обработчик кнопок pg:*
type pageNavigationHandler struct {
	*base.BaseHandler
	navigator Navigator
	answerer  CallbackAnswerer
}

// NewHandler создает обработчик кнопок листания
func NewHandler(navigator Navigator, answerer CallbackAnswerer) handlers.Handler {
	return &pageNavigationHandler{
		BaseHandler: &base.BaseHandler{
			Name:    "page_navigation_handler",
			Command: constants.CallbackPagination,
			Type:    handlers.TypeCallback,
		},
		navigator: navigator,
		answerer:  answerer,
	}
}

// Execute переводит callback в событие пагинации. Ответ на callback
// отправляется всегда, даже если событие проигнорировано.
func (h *pageNavigationHandler) Execute(ctx context.Context, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	defer h.answer(ctx, params.CallbackID)

	action, index, ok := ParseCallback(params.Data)
	if !ok {
		if params.Data != constants.CallbackPageNoop {
			logger.Debug("Неизвестный callback листания: %q", params.Data)
		}
		return handlers.HandlerResult{}, nil
	}

	ev := pagination.Event{
		Ref:    message_sender.RefFor(params.ChatID, params.MessageID),
		UserID: h.UserKey(params),
		Action: action,
		Index:  index,
	}

	applied, err := h.navigator.HandleEvent(ctx, ev)
	if err != nil {
		return handlers.HandlerResult{}, err
	}
	if !applied {
		logger.Debug("Нажатие %q от %d на %s проигнорировано", params.Data, params.UserID, ev.Ref)
	}
	return handlers.HandlerResult{}, nil
}

func (h *pageNavigationHandler) answer(ctx context.Context, callbackID string) {
	if callbackID == "" {
		return
	}
	if err := h.answerer.AnswerCallback(ctx, callbackID, ""); err != nil {
		logger.Warn("⚠️ Не удалось ответить на callback %s: %v", callbackID, err)
	}
}

// ParseCallback разбирает pg:prev, pg:next и pg:sel:<индекс>
func ParseCallback(data string) (action pagination.Action, index int, ok bool) {
	switch data {
	case constants.CallbackPagePrev:
		return pagination.ActionPrev, 0, true
	case constants.CallbackPageNext:
		return pagination.ActionNext, 0, true
	}

	if raw, found := strings.CutPrefix(data, constants.CallbackPageSelect); found {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		return pagination.ActionSelect, n, true
	}
	return 0, 0, false
}
