package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Listener receives the state after every successful Set.
type Listener func(State)

// Store holds one session's state in memory and writes every change through
// to its Persister before notifying listeners.
type Store struct {
	mu        sync.RWMutex
	state     State
	persister Persister
	now       func() time.Time

	listenerMu sync.Mutex
	nextID     int
	listeners  map[int]Listener
}

func NewStore(sessionID string, persister Persister) *Store {
	return &Store{
		state:     State{SessionID: sessionID, FollowedTeamIDs: []int64{}},
		persister: persister,
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
}

// Load restores the persisted state. A missing record keeps the empty state.
func (s *Store) Load(ctx context.Context) error {
	sessionID := s.Get().SessionID
	loaded, ok, err := s.persister.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if !ok {
		return nil
	}
	loaded.SessionID = sessionID
	if loaded.FollowedTeamIDs == nil {
		loaded.FollowedTeamIDs = []int64{}
	}

	s.mu.Lock()
	s.state = loaded.Clone()
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the current state.
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Set persists value and then publishes it. The in-memory state is left
// untouched when persisting fails.
func (s *Store) Set(ctx context.Context, value State) (State, error) {
	s.mu.Lock()
	next := value.Clone()
	next.SessionID = s.state.SessionID
	next.UpdatedAt = s.now().UTC()
	if err := s.persister.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return State{}, fmt.Errorf("save session %s: %w", next.SessionID, err)
	}
	s.state = next
	s.mu.Unlock()

	for _, listener := range s.snapshotListeners() {
		listener(next.Clone())
	}
	return next.Clone(), nil
}

// Subscribe registers listener and returns the function that removes it.
func (s *Store) Subscribe(listener Listener) func() {
	s.listenerMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.listenerMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenerMu.Lock()
			delete(s.listeners, id)
			s.listenerMu.Unlock()
		})
	}
}

func (s *Store) snapshotListeners() []Listener {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}
