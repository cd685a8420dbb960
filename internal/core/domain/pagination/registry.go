// internal/core/domain/pagination/registry.go
package pagination

import (
	"sync"

	"catalog-lookup-bot/internal/core/domain/presentation"
)

// Registry активные сессии по идентичности сообщения
type Registry struct {
	mu       sync.RWMutex
	sessions map[presentation.MessageRef]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[presentation.MessageRef]*Session)}
}

func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Ref] = s
}

func (r *Registry) Get(ref presentation.MessageRef) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[ref]
	return s, ok
}

// Remove удаляет сессию, только если по ref зарегистрирована именно она
func (r *Registry) Remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.sessions[s.Ref]; ok && cur == s {
		delete(r.sessions, s.Ref)
	}
}

// Snapshot копия списка сессий
func (r *Registry) Snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
