package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/matchcentre/internal/domain/session"
)

type SessionRepository struct {
	mu    sync.RWMutex
	items map[string]session.State
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{items: make(map[string]session.State)}
}

func (r *SessionRepository) Load(_ context.Context, sessionID string) (session.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[sessionID]
	if !ok {
		return session.State{}, false, nil
	}

	return item.Clone(), true, nil
}

func (r *SessionRepository) Save(_ context.Context, state session.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[state.SessionID] = state.Clone()
	return nil
}
