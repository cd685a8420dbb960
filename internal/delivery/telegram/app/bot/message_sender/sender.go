// internal/delivery/telegram/app/bot/message_sender/sender.go
package message_sender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"catalog-lookup-bot/internal/core/domain/presentation"
	"catalog-lookup-bot/internal/delivery/telegram"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/buttons"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/constants"
	"catalog-lookup-bot/internal/delivery/telegram/app/bot/formatters"
	telegram_http "catalog-lookup-bot/internal/delivery/telegram/app/http_client"
	"catalog-lookup-bot/pkg/logger"
)

// photoField имя multipart-поля с картинкой
const photoField = "photo"

// MessageSender интерфейс для отправки сообщений
type MessageSender interface {
	// Основные методы отправки
	SendText(ctx context.Context, chatID int64, text string) error
	Send(ctx context.Context, chatID int64, msg presentation.Message) (presentation.MessageRef, error)
	SendChatAction(ctx context.Context, chatID int64, action string) error

	// Управление сообщениями
	Edit(ctx context.Context, ref presentation.MessageRef, msg presentation.Message) error
	StripControls(ctx context.Context, ref presentation.MessageRef) error
	AnswerCallback(ctx context.Context, callbackID, text string) error

	// ForChat канал ответа на вызов команды в чате
	ForChat(chatID int64) *ChatResponder
}

// MessageSenderImpl реализация MessageSender поверх Bot API
type MessageSenderImpl struct {
	client    *telegram_http.TelegramClient
	buttons   *buttons.ButtonBuilder
	formatter *formatters.UnitFormatter
}

// NewMessageSender создает новый MessageSender
func NewMessageSender(client *telegram_http.TelegramClient) *MessageSenderImpl {
	return &MessageSenderImpl{
		client:    client,
		buttons:   buttons.NewButtonBuilder(),
		formatter: formatters.NewUnitFormatter(),
	}
}

// ForChat канал ответа на вызов команды в чате
func (ms *MessageSenderImpl) ForChat(chatID int64) *ChatResponder {
	return &ChatResponder{sender: ms, chatID: chatID}
}

// SendText отправляет готовый HTML-текст
func (ms *MessageSenderImpl) SendText(ctx context.Context, chatID int64, text string) error {
	request := map[string]interface{}{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               constants.ParseModeHTML,
		"disable_web_page_preview": true,
	}
	return ms.client.Call(ctx, "sendMessage", request, nil)
}

// Send отправляет сообщение: с картинкой через sendPhoto, иначе sendMessage
func (ms *MessageSenderImpl) Send(ctx context.Context, chatID int64, msg presentation.Message) (presentation.MessageRef, error) {
	keyboard := ms.buttons.CreateControlsKeyboard(msg.Controls)

	var sent telegram.Message
	if image := attachment(msg); image != nil {
		fields := map[string]string{
			"chat_id":    strconv.FormatInt(chatID, 10),
			"caption":    ms.formatter.Render(msg, constants.MaxCaptionLength),
			"parse_mode": constants.ParseModeHTML,
		}
		if err := putKeyboard(fields, keyboard); err != nil {
			return presentation.MessageRef{}, err
		}

		file := telegram_http.InputFile{Field: photoField, Name: image.Name, Data: image.Data}
		if err := ms.client.Upload(ctx, "sendPhoto", fields, file, &sent); err != nil {
			return presentation.MessageRef{}, err
		}
	} else {
		request := map[string]interface{}{
			"chat_id":                  chatID,
			"text":                     ms.formatter.Render(msg, constants.MaxMessageLength),
			"parse_mode":               constants.ParseModeHTML,
			"disable_web_page_preview": true,
		}
		if keyboard != nil {
			request["reply_markup"] = keyboard
		}
		if err := ms.client.Call(ctx, "sendMessage", request, &sent); err != nil {
			return presentation.MessageRef{}, err
		}
	}

	return RefFor(chatID, sent.MessageID), nil
}

// Edit заменяет содержимое отправленного сообщения
func (ms *MessageSenderImpl) Edit(ctx context.Context, ref presentation.MessageRef, msg presentation.Message) error {
	chatID, messageID, err := parseRef(ref)
	if err != nil {
		return err
	}
	keyboard := ms.buttons.CreateControlsKeyboard(msg.Controls)

	if image := attachment(msg); image != nil {
		media, err := json.Marshal(telegram.InputMediaPhoto{
			Type:      "photo",
			Media:     "attach://" + photoField,
			Caption:   ms.formatter.Render(msg, constants.MaxCaptionLength),
			ParseMode: constants.ParseModeHTML,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal media: %w", err)
		}

		fields := map[string]string{
			"chat_id":    strconv.FormatInt(chatID, 10),
			"message_id": strconv.FormatInt(messageID, 10),
			"media":      string(media),
		}
		if err := putKeyboard(fields, keyboard); err != nil {
			return err
		}

		file := telegram_http.InputFile{Field: photoField, Name: image.Name, Data: image.Data}
		return ignoreNotModified(ms.client.Upload(ctx, "editMessageMedia", fields, file, nil))
	}

	request := map[string]interface{}{
		"chat_id":                  chatID,
		"message_id":               messageID,
		"text":                     ms.formatter.Render(msg, constants.MaxMessageLength),
		"parse_mode":               constants.ParseModeHTML,
		"disable_web_page_preview": true,
	}
	if keyboard != nil {
		request["reply_markup"] = keyboard
	}
	return ignoreNotModified(ms.client.Call(ctx, "editMessageText", request, nil))
}

// StripControls убирает клавиатуру, оставляя содержимое
func (ms *MessageSenderImpl) StripControls(ctx context.Context, ref presentation.MessageRef) error {
	chatID, messageID, err := parseRef(ref)
	if err != nil {
		return err
	}

	request := map[string]interface{}{
		"chat_id":      chatID,
		"message_id":   messageID,
		"reply_markup": telegram.EmptyKeyboard(),
	}
	return ignoreNotModified(ms.client.Call(ctx, "editMessageReplyMarkup", request, nil))
}

// SendChatAction показывает статус "печатает" / "отправляет фото"
func (ms *MessageSenderImpl) SendChatAction(ctx context.Context, chatID int64, action string) error {
	request := map[string]interface{}{
		"chat_id": chatID,
		"action":  action,
	}
	return ms.client.Call(ctx, "sendChatAction", request, nil)
}

// AnswerCallback отвечает на callback; пустой text просто убирает индикатор загрузки
func (ms *MessageSenderImpl) AnswerCallback(ctx context.Context, callbackID, text string) error {
	request := map[string]interface{}{
		"callback_query_id": callbackID,
	}
	if text != "" {
		request["text"] = text
	}
	return ms.client.Call(ctx, "answerCallbackQuery", request, nil)
}

func attachment(msg presentation.Message) *presentation.Attachment {
	if msg.Unit == nil || msg.Unit.Image == nil || len(msg.Unit.Image.Data) == 0 {
		return nil
	}
	return msg.Unit.Image
}

func putKeyboard(fields map[string]string, keyboard *telegram.InlineKeyboardMarkup) error {
	if keyboard == nil {
		return nil
	}
	data, err := json.Marshal(keyboard)
	if err != nil {
		return fmt.Errorf("failed to marshal keyboard: %w", err)
	}
	fields["reply_markup"] = string(data)
	return nil
}

func ignoreNotModified(err error) error {
	var apiErr *telegram_http.APIError
	if errors.As(err, &apiErr) && apiErr.IsNotModified() {
		logger.Debug("Сообщение не изменилось, правка пропущена")
		return nil
	}
	return err
}

// RefFor идентичность сообщения Telegram в терминах ядра
func RefFor(chatID, messageID int64) presentation.MessageRef {
	return presentation.MessageRef{
		ChatID:    strconv.FormatInt(chatID, 10),
		MessageID: strconv.FormatInt(messageID, 10),
	}
}

func parseRef(ref presentation.MessageRef) (chatID, messageID int64, err error) {
	chatID, err = strconv.ParseInt(ref.ChatID, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid chat id in %s: %w", ref, err)
	}
	messageID, err = strconv.ParseInt(ref.MessageID, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid message id in %s: %w", ref, err)
	}
	return chatID, messageID, nil
}
