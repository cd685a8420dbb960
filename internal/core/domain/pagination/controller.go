// internal/core/domain/pagination/controller.go
package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-lookup-bot/internal/core/domain/presentation"
	"catalog-lookup-bot/pkg/logger"
)

// DefaultTimeout окно бездействия, после которого сессия закрывается
const DefaultTimeout = 60 * time.Second

// expireTimeout ограничение на снятие кнопок после истечения сессии
const expireTimeout = 10 * time.Second

// Action навигационное действие пользователя
type Action int

const (
	ActionPrev Action = iota
	ActionNext
	ActionSelect
)

// Event нажатие на элемент управления под сообщением
type Event struct {
	Ref    presentation.MessageRef
	UserID string
	Action Action
	// Index выбранный пункт для ActionSelect
	Index int
}

// Sender отправляет новое сообщение и возвращает его идентичность
type Sender interface {
	FollowUp(ctx context.Context, msg presentation.Message) (presentation.MessageRef, error)
}

// Editor правит уже отправленное сообщение
type Editor interface {
	Edit(ctx context.Context, ref presentation.MessageRef, msg presentation.Message) error
	StripControls(ctx context.Context, ref presentation.MessageRef) error
}

// Config параметры пагинации
type Config struct {
	Timeout         time.Duration
	SelectorLimit   int
	SelectorEntries int
}

// Controller управляет сессиями листания
type Controller struct {
	cfg      Config
	editor   Editor
	registry *Registry
}

func NewController(cfg Config, editor Editor) *Controller {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.SelectorLimit <= 0 {
		cfg.SelectorLimit = DefaultSelectorLimit
	}
	if cfg.SelectorEntries <= 0 {
		cfg.SelectorEntries = DefaultSelectorEntries
	}
	return &Controller{
		cfg:      cfg,
		editor:   editor,
		registry: NewRegistry(),
	}
}

// Start отправляет первую страницу и открывает сессию
func (c *Controller) Start(ctx context.Context, sender Sender, owner string, units []presentation.Unit) (*Session, error) {
	if len(units) == 0 {
		return nil, errors.New("pagination requires at least one unit")
	}

	s := newSession(owner, units)

	s.mu.Lock()
	defer s.mu.Unlock()

	ref, err := sender.FollowUp(ctx, s.page(c.cfg.SelectorLimit, c.cfg.SelectorEntries))
	if err != nil {
		return nil, fmt.Errorf("send first page: %w", err)
	}

	s.Ref = ref
	c.registry.Add(s)
	c.arm(s)

	logger.Debug("📑 Сессия %s открыта: %s, %d страниц, владелец %s", s.ID, ref, len(units), owner)
	return s, nil
}

// HandleEvent применяет событие к сессии сообщения.
// События чужих пользователей, неизвестных и завершенных сессий
// игнорируются: applied == false, err == nil.
func (c *Controller) HandleEvent(ctx context.Context, ev Event) (applied bool, err error) {
	s, ok := c.registry.Get(ev.Ref)
	if !ok {
		return false, nil
	}
	if ev.UserID != s.Owner {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return false, nil
	}

	next, ok := s.target(ev)
	if !ok {
		return false, nil
	}

	s.index = next
	c.arm(s)

	if err := c.editor.Edit(ctx, s.Ref, s.page(c.cfg.SelectorLimit, c.cfg.SelectorEntries)); err != nil {
		return true, fmt.Errorf("render page %d of session %s: %w", next+1, s.ID, err)
	}
	return true, nil
}

// CloseAll закрывает все сессии и снимает кнопки (при остановке)
func (c *Controller) CloseAll(ctx context.Context) {
	for _, s := range c.registry.Snapshot() {
		c.finish(ctx, s, StateClosed)
	}
}

// Active количество открытых сессий
func (c *Controller) Active() int {
	return c.registry.Len()
}

// arm перезапускает таймер бездействия; вызывается под s.mu
func (c *Controller) arm(s *Session) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.generation++
	gen := s.generation
	s.timer = time.AfterFunc(c.cfg.Timeout, func() {
		c.expire(s, gen)
	})
}

func (c *Controller) expire(s *Session, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), expireTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	// таймер успели перезапустить, пока этот ждал блокировку
	if s.generation != gen {
		return
	}
	c.finishLocked(ctx, s, StateExpired)
}

// finish переводит сессию в конечное состояние и снимает кнопки
func (c *Controller) finish(ctx context.Context, s *Session, final State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.finishLocked(ctx, s, final)
}

func (c *Controller) finishLocked(ctx context.Context, s *Session, final State) {
	if s.state != StateActive {
		return
	}

	s.state = final
	if s.timer != nil {
		s.timer.Stop()
	}
	c.registry.Remove(s)

	if err := c.editor.StripControls(ctx, s.Ref); err != nil {
		logger.Warn("⚠️ Не удалось снять кнопки сессии %s (%s): %v", s.ID, s.Ref, err)
		return
	}
	logger.Debug("📑 Сессия %s завершена: %s", s.ID, final)
}
