// internal/delivery/telegram/app/bot/handlers/router/router.go
package router

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"catalog-lookup-bot/internal/delivery/telegram/app/bot/handlers"
	"catalog-lookup-bot/pkg/logger"
)

// ErrHandlerNotFound нет хэндлера для команды/callback
var ErrHandlerNotFound = errors.New("handler not found")

// routerImpl реализация Router: команды по точному имени,
// callback'и по самому длинному совпавшему префиксу
type routerImpl struct {
	mu        sync.RWMutex
	commands  map[string]handlers.Handler // ключ: /команда
	callbacks map[string]handlers.Handler // ключ: префикс callback data
}

// NewRouter создает новый роутер
func NewRouter() Router {
	return &routerImpl{
		commands:  make(map[string]handlers.Handler),
		callbacks: make(map[string]handlers.Handler),
	}
}

// RegisterHandler регистрирует хэндлер (использует GetCommand())
func (r *routerImpl) RegisterHandler(handler handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	command := handler.GetCommand()
	switch handler.GetType() {
	case handlers.TypeCommand:
		command = "/" + strings.TrimPrefix(strings.ToLower(command), "/")
		r.commands[command] = handler
	case handlers.TypeCallback:
		r.callbacks[command] = handler
	}

	logger.Debug("Зарегистрирован хэндлер: %s для %s: %s",
		handler.GetName(), handler.GetType(), command)
}

// Handle обрабатывает команду (/search) или callback data (pg:next)
func (r *routerImpl) Handle(ctx context.Context, command string, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	handler, ok := r.lookup(command)
	if !ok {
		return handlers.HandlerResult{}, ErrHandlerNotFound
	}

	logger.Debug("Вызов хэндлера: %s для: %s", handler.GetName(), command)

	result, err := handler.Execute(ctx, params)
	if err != nil {
		logger.Error("Ошибка в хэндлере %s для %s: %v", handler.GetName(), command, err)
		return handlers.HandlerResult{}, err
	}
	return result, nil
}

func (r *routerImpl) lookup(command string) (handlers.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.HasPrefix(command, "/") {
		handler, ok := r.commands[strings.ToLower(command)]
		return handler, ok
	}

	var (
		best    handlers.Handler
		bestLen = -1
	)
	for prefix, handler := range r.callbacks {
		if strings.HasPrefix(command, prefix) && len(prefix) > bestLen {
			best, bestLen = handler, len(prefix)
		}
	}
	return best, best != nil
}

// GetHandler возвращает хэндлер по команде/callback
func (r *routerImpl) GetHandler(command string) (handlers.Handler, bool) {
	return r.lookup(command)
}

// GetCommands возвращает список всех команд (с /), по алфавиту
func (r *routerImpl) GetCommands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]string, 0, len(r.commands))
	for cmd := range r.commands {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)
	return commands
}

var _ Router = (*routerImpl)(nil)
