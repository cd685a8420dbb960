// internal/delivery/telegram/app/http_client/polling.go
package http_client

import (
	"context"
	"net/http"
	"time"

	"catalog-lookup-bot/internal/delivery/telegram"

	"golang.org/x/time/rate"
)

// AllowedUpdates типы обновлений, которые обрабатывает бот
var AllowedUpdates = []string{"message", "callback_query"}

// PollingClient клиент для polling запросов с увеличенным таймаутом
type PollingClient struct {
	client *TelegramClient
}

// NewPollingClient создает новый клиент для polling.
// HTTP-таймаут на 5 секунд больше long-polling таймаута Telegram.
func NewPollingClient(baseURL string, pollTimeout int) *PollingClient {
	return &PollingClient{
		client: &TelegramClient{
			httpClient: &http.Client{
				Timeout: time.Duration(pollTimeout+5) * time.Second,
			},
			baseURL: baseURL,
			limiter: rate.NewLimiter(rate.Inf, 0),
		},
	}
}

// GetUpdates получает обновления начиная с offset
func (c *PollingClient) GetUpdates(ctx context.Context, offset int64, timeout int) ([]telegram.Update, error) {
	params := map[string]interface{}{
		"offset":          offset,
		"timeout":         timeout,
		"allowed_updates": AllowedUpdates,
	}

	var updates []telegram.Update
	if err := c.client.Call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SetTimeout устанавливает таймаут для клиента
func (c *PollingClient) SetTimeout(timeout time.Duration) {
	c.client.SetTimeout(timeout)
}
