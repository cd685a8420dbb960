// internal/core/domain/pagination/session.go
package pagination

import (
	"sync"
	"time"

	"catalog-lookup-bot/internal/core/domain/presentation"

	"github.com/google/uuid"
)

// State состояние сессии
type State int

const (
	StateActive State = iota
	StateClosed
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	case StateExpired:
		return "expired"
	}
	return "unknown"
}

// Session листание результатов одного сообщения.
// Все изменения индекса и перерисовка идут под mu.
type Session struct {
	ID    string
	Ref   presentation.MessageRef
	Owner string

	mu     sync.Mutex
	units  []presentation.Unit
	labels []string
	index  int
	state  State
	timer  *time.Timer
	// generation отличает актуальный таймер от сработавшего устаревшего
	generation uint64
}

func newSession(owner string, units []presentation.Unit) *Session {
	labels := make([]string, len(units))
	for i, u := range units {
		labels[i] = u.Label
	}
	return &Session{
		ID:     uuid.New().String(),
		Owner:  owner,
		units:  units,
		labels: labels,
		state:  StateActive,
	}
}

// Index текущая страница
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// State текущее состояние
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Count количество страниц
func (s *Session) Count() int {
	return len(s.units)
}

// target индекс после события; false - событие не применимо
func (s *Session) target(ev Event) (int, bool) {
	last := len(s.units) - 1
	switch ev.Action {
	case ActionPrev:
		if s.index > 0 {
			return s.index - 1, true
		}
		return 0, true
	case ActionNext:
		if s.index < last {
			return s.index + 1, true
		}
		return last, true
	case ActionSelect:
		if ev.Index < 0 || ev.Index > last {
			return 0, false
		}
		return ev.Index, true
	}
	return 0, false
}

// page сообщение для текущей страницы
func (s *Session) page(selectorLimit, selectorEntries int) presentation.Message {
	unit := s.units[s.index].WithFooter(Footer(s.index, len(s.units)))
	return presentation.Message{
		Unit:     &unit,
		Controls: BuildControls(s.index, s.labels, selectorLimit, selectorEntries),
	}
}
