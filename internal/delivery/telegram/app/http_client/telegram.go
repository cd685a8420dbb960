// internal/delivery/telegram/app/http_client/telegram.go
package http_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"catalog-lookup-bot/internal/delivery/telegram"
	"catalog-lookup-bot/pkg/logger"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryAfter = 5
	maxRateRetries    = 3

	// Bot API допускает около 30 сообщений в секунду на бота
	requestsPerSecond = 30
)

// APIError ошибка, которую вернул Bot API
type APIError struct {
	Method      string
	Code        int
	Description string
	RetryAfter  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error %d in %s: %s", e.Code, e.Method, e.Description)
}

// IsNotModified правка не изменила сообщение (тот же текст и клавиатура)
func (e *APIError) IsNotModified() bool {
	return e.Code == http.StatusBadRequest && strings.Contains(e.Description, "message is not modified")
}

// InputFile файл для multipart-запроса
type InputFile struct {
	Field string
	Name  string
	Data  []byte
}

// TelegramClient клиент для работы с Telegram API
type TelegramClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewTelegramClient создает новый клиент Telegram; baseURL вида https://api.telegram.org/bot<token>/
func NewTelegramClient(baseURL string) *TelegramClient {
	return &TelegramClient{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// SetTimeout устанавливает таймаут для клиента
func (c *TelegramClient) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// GetBaseURL возвращает базовый URL
func (c *TelegramClient) GetBaseURL() string {
	return c.baseURL
}

// Call вызывает метод с JSON-телом и раскладывает result в out (если out != nil)
func (c *TelegramClient) Call(ctx context.Context, method string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	return c.do(ctx, method, out, func() (io.Reader, string, error) {
		return bytes.NewReader(body), "application/json", nil
	})
}

// Upload вызывает метод с multipart-телом: строковые поля и один файл
func (c *TelegramClient) Upload(ctx context.Context, method string, fields map[string]string, file InputFile, out interface{}) error {
	return c.do(ctx, method, out, func() (io.Reader, string, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)

		for name, value := range fields {
			if err := w.WriteField(name, value); err != nil {
				return nil, "", err
			}
		}

		part, err := w.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", err
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	})
}

// do отправляет запрос; на 429 ждет retry_after (не дольше, чем позволяет ctx) и повторяет
func (c *TelegramClient) do(ctx context.Context, method string, out interface{}, build func() (io.Reader, string, error)) error {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}

		body, contentType, err := build()
		if err != nil {
			return fmt.Errorf("failed to build %s request: %w", method, err)
		}

		err = c.send(ctx, method, body, contentType, out)
		apiErr, ok := err.(*APIError)
		if !ok || apiErr.Code != http.StatusTooManyRequests || attempt >= maxRateRetries {
			return err
		}

		retryAfter := apiErr.RetryAfter
		if retryAfter <= 0 {
			retryAfter = defaultRetryAfter
		}
		logger.Warn("⚠️ Telegram API rate limit on %s, waiting %d seconds", method, retryAfter)

		timer := time.NewTimer(time.Duration(retryAfter) * time.Second)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: %w", method, ctx.Err())
		case <-timer.C:
		}
	}
}

func (c *TelegramClient) send(ctx context.Context, method string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+method, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var apiResp telegram.APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return fmt.Errorf("failed to parse %s response (HTTP %d): %w", method, resp.StatusCode, err)
	}

	if !apiResp.OK {
		apiErr := &APIError{
			Method:      method,
			Code:        apiResp.ErrorCode,
			Description: apiResp.Description,
		}
		if apiResp.Parameters != nil {
			apiErr.RetryAfter = apiResp.Parameters.RetryAfter
		}
		return apiErr
	}

	if out != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}
	return nil
}

// GetMe проверяет токен и возвращает профиль бота
func (c *TelegramClient) GetMe(ctx context.Context) (*telegram.User, error) {
	var me telegram.User
	if err := c.Call(ctx, "getMe", struct{}{}, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// SetMyCommands устанавливает меню команд
func (c *TelegramClient) SetMyCommands(ctx context.Context, commands []telegram.BotCommand) error {
	params := telegram.SetMyCommandsParams{
		Commands: commands,
		Scope:    &telegram.BotCommandScope{Type: "default"},
	}
	return c.Call(ctx, "setMyCommands", params, nil)
}

// SetWebhook регистрирует webhook с секретным токеном
func (c *TelegramClient) SetWebhook(ctx context.Context, url, secretToken string) error {
	params := map[string]interface{}{
		"url":             url,
		"allowed_updates": AllowedUpdates,
	}
	if secretToken != "" {
		params["secret_token"] = secretToken
	}
	return c.Call(ctx, "setWebhook", params, nil)
}

// DeleteWebhook снимает webhook (нужно перед getUpdates)
func (c *TelegramClient) DeleteWebhook(ctx context.Context) error {
	return c.Call(ctx, "deleteWebhook", map[string]interface{}{"drop_pending_updates": false}, nil)
}
