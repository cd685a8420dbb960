// internal/delivery/telegram/app/bot/webhook.go
package bot

import (
	"context"
	"crypto/subtle"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"catalog-lookup-bot/internal/delivery/telegram"
	"catalog-lookup-bot/internal/infrastructure/config"
	"catalog-lookup-bot/pkg/logger"
)

const (
	// SecretTokenHeader заголовок, в котором Telegram присылает секрет webhook
	SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

	maxWebhookBody = 1 << 20
)

// HealthReporter состояние для /health
type HealthReporter interface {
	HealthStatus() map[string]interface{}
}

// WebhookTarget то, что нужно webhook-серверу от бота
type WebhookTarget interface {
	UpdateDispatcher
	HealthReporter
}

// WebhookServer - сервер для обработки webhook запросов от Telegram
type WebhookServer struct {
	config *config.Config
	target WebhookTarget
	server *http.Server
}

// NewWebhookServer создает новый сервер webhook
func NewWebhookServer(cfg *config.Config, target WebhookTarget) *WebhookServer {
	return &WebhookServer{
		config: cfg,
		target: target,
	}
}

// Handler маршруты сервера: путь webhook и /health
func (ws *WebhookServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(ws.config.Webhook.Path, ws.handleWebhook)
	mux.HandleFunc("/health", ws.handleHealthCheck)
	return mux
}

// Start запускает сервер webhook с поддержкой TLS
func (ws *WebhookServer) Start() error {
	if ws.target == nil {
		return fmt.Errorf("telegram bot not initialized")
	}

	// Проверяем наличие сертификатов если используется TLS
	if ws.config.Webhook.UseTLS {
		if ws.config.Webhook.TLSCertPath == "" || ws.config.Webhook.TLSKeyPath == "" {
			return fmt.Errorf("TLS включен но пути к сертификатам не указаны")
		}
	}

	addr := fmt.Sprintf(":%d", ws.config.Webhook.Port)
	ws.server = &http.Server{
		Addr:         addr,
		Handler:      ws.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	if ws.config.Webhook.UseTLS {
		ws.server.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	logger.Info("🚀 Starting Telegram webhook server on %s%s", addr, ws.config.Webhook.Path)

	go func() {
		var err error
		if ws.config.Webhook.UseTLS {
			err = ws.server.ListenAndServeTLS(ws.config.Webhook.TLSCertPath, ws.config.Webhook.TLSKeyPath)
		} else {
			err = ws.server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			logger.Error("❌ Webhook server error: %v", err)
		}
	}()

	return nil
}

// Stop останавливает сервер webhook, дожидаясь текущих запросов
func (ws *WebhookServer) Stop(ctx context.Context) error {
	if ws.server != nil {
		return ws.server.Shutdown(ctx)
	}
	return nil
}

// handleWebhook обрабатывает входящие webhook запросы
func (ws *WebhookServer) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if secret := ws.config.Webhook.SecretToken; secret != "" {
		got := r.Header.Get(SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			logger.Warn("⚠️ Webhook запрос с неверным секретом от %s", r.RemoteAddr)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
	defer r.Body.Close()

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Warn("❌ Failed to parse webhook update: %v", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	// Отвечаем сразу, обработка идет в отдельной горутине
	ws.target.Dispatch(update)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleHealthCheck обрабатывает запросы проверки здоровья
func (ws *WebhookServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status := ws.target.HealthStatus()
	status["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		logger.Warn("Failed to write health response: %v", err)
	}
}
