// internal/delivery/telegram/app/bot/polling.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"catalog-lookup-bot/internal/delivery/telegram"
	"catalog-lookup-bot/pkg/logger"
)

// UpdateSource источник обновлений для long polling
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]telegram.Update, error)
}

// UpdateDispatcher принимает обновление в обработку
type UpdateDispatcher interface {
	Dispatch(update telegram.Update)
}

// PollingClient - клиент для polling обновлений
type PollingClient struct {
	source        UpdateSource
	dispatcher    UpdateDispatcher
	timeout       int
	retryInterval time.Duration

	mu      sync.Mutex
	offset  int64
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPollingClient создает новый polling клиент
func NewPollingClient(source UpdateSource, dispatcher UpdateDispatcher, timeout int, retryInterval time.Duration) *PollingClient {
	if retryInterval <= 0 {
		retryInterval = 5 * time.Second
	}
	return &PollingClient{
		source:        source,
		dispatcher:    dispatcher,
		timeout:       timeout,
		retryInterval: retryInterval,
	}
}

// Start запускает polling обновлений
func (pc *PollingClient) Start() error {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.running {
		return fmt.Errorf("polling already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	pc.running = true
	pc.cancel = cancel
	pc.done = make(chan struct{})

	logger.Info("🔄 Starting Telegram bot polling...")
	go pc.pollLoop(ctx, pc.done)
	return nil
}

// Stop останавливает polling и прерывает текущий getUpdates
func (pc *PollingClient) Stop() error {
	pc.mu.Lock()
	if !pc.running {
		pc.mu.Unlock()
		return nil
	}
	pc.running = false
	pc.cancel()
	done := pc.done
	pc.mu.Unlock()

	<-done
	logger.Info("🛑 Telegram bot polling stopped")
	return nil
}

// IsRunning работает ли polling
func (pc *PollingClient) IsRunning() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.running
}

// pollLoop основной цикл polling
func (pc *PollingClient) pollLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		if ctx.Err() != nil {
			return
		}

		if err := pc.fetchUpdates(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Warn("❌ Error fetching updates: %v", err)

			select {
			case <-ctx.Done():
				return
			case <-time.After(pc.retryInterval):
			}
		}
	}
}

// fetchUpdates получает обновления и передает их диспетчеру
func (pc *PollingClient) fetchUpdates(ctx context.Context) error {
	updates, err := pc.source.GetUpdates(ctx, pc.offset, pc.timeout)
	if err != nil {
		return err
	}

	for _, update := range updates {
		logger.Debug("📩 [POLLING] Получено обновление ID=%d", update.UpdateID)
		pc.offset = update.UpdateID + 1
		pc.dispatcher.Dispatch(update)
	}
	return nil
}
