package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/matchcentre/internal/domain/competition"
	"github.com/riskibarqy/matchcentre/internal/domain/session"
	"github.com/riskibarqy/matchcentre/internal/platform/id"
)

const (
	maxFollowedTeams   = 50
	sessionLoadTimeout = 5 * time.Second
)

// SessionUpdate is the full replacement value written by PUT.
type SessionUpdate struct {
	FavoriteTeamID      int64
	FavoriteCompetition string
	FollowedTeamIDs     []int64
	Timezone            string
	Locale              string
}

// SessionService keeps one session.Store per id while it is in use. Stores
// with live subscribers stay resident so every writer notifies them.
type SessionService struct {
	persister session.Persister
	idGen     id.Generator

	mu     sync.Mutex
	stores map[string]*sessionEntry
}

type sessionEntry struct {
	store *session.Store
	refs  int

	// ready is closed once the first Load returns; loadErr is set before.
	ready   chan struct{}
	loadErr error
}

func NewSessionService(persister session.Persister, idGen id.Generator) *SessionService {
	return &SessionService{
		persister: persister,
		idGen:     idGen,
		stores:    make(map[string]*sessionEntry),
	}
}

// Create allocates a new session id and persists its empty state.
func (s *SessionService) Create(ctx context.Context) (session.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Create")
	defer span.End()

	sessionID, err := s.idGen.NewID()
	if err != nil {
		return session.State{}, fmt.Errorf("generate session id: %w", err)
	}

	return s.withStore(ctx, sessionID, func(store *session.Store) (session.State, error) {
		return store.Set(ctx, store.Get())
	})
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (session.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Get")
	defer span.End()

	if err := validateSessionID(sessionID); err != nil {
		return session.State{}, err
	}

	return s.withStore(ctx, sessionID, func(store *session.Store) (session.State, error) {
		return store.Get(), nil
	})
}

func (s *SessionService) Update(ctx context.Context, sessionID string, input SessionUpdate) (session.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Update")
	defer span.End()

	if err := validateSessionID(sessionID); err != nil {
		return session.State{}, err
	}
	next, err := buildSessionState(input)
	if err != nil {
		return session.State{}, err
	}

	return s.withStore(ctx, sessionID, func(store *session.Store) (session.State, error) {
		return store.Set(ctx, next)
	})
}

// Subscribe delivers every change of the session to listener until the
// returned function is called. The current state is returned as well.
func (s *SessionService) Subscribe(ctx context.Context, sessionID string, listener session.Listener) (session.State, func(), error) {
	if err := validateSessionID(sessionID); err != nil {
		return session.State{}, nil, err
	}

	entry, err := s.acquire(ctx, sessionID)
	if err != nil {
		return session.State{}, nil, err
	}
	unsubscribe := entry.store.Subscribe(listener)

	var once sync.Once
	return entry.store.Get(), func() {
		once.Do(func() {
			unsubscribe()
			s.release(sessionID, entry)
		})
	}, nil
}

func (s *SessionService) withStore(
	ctx context.Context,
	sessionID string,
	fn func(store *session.Store) (session.State, error),
) (session.State, error) {
	entry, err := s.acquire(ctx, sessionID)
	if err != nil {
		return session.State{}, err
	}
	defer s.release(sessionID, entry)

	state, err := fn(entry.store)
	if err != nil {
		return session.State{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	return state, nil
}

// acquire pins the entry for sessionID and waits for its first load. s.mu
// only guards the map and refcounts; the persister is read outside it by the
// caller that created the entry.
func (s *SessionService) acquire(ctx context.Context, sessionID string) (*sessionEntry, error) {
	s.mu.Lock()
	entry, ok := s.stores[sessionID]
	if !ok {
		entry = &sessionEntry{
			store: session.NewStore(sessionID, s.persister),
			ready: make(chan struct{}),
		}
		s.stores[sessionID] = entry
	}
	entry.refs++
	s.mu.Unlock()

	if !ok {
		s.load(ctx, sessionID, entry)
	}

	select {
	case <-entry.ready:
	case <-ctx.Done():
		s.release(sessionID, entry)
		return nil, fmt.Errorf("%w: wait for session %s: %v", ErrDependencyUnavailable, sessionID, ctx.Err())
	}
	if entry.loadErr != nil {
		s.release(sessionID, entry)
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, entry.loadErr)
	}

	return entry, nil
}

// load runs once per entry. Waiters share the result, so the caller's
// cancellation is detached and a fixed timeout applies instead.
func (s *SessionService) load(ctx context.Context, sessionID string, entry *sessionEntry) {
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sessionLoadTimeout)
	defer cancel()

	entry.loadErr = entry.store.Load(loadCtx)
	if entry.loadErr != nil {
		s.mu.Lock()
		if s.stores[sessionID] == entry {
			delete(s.stores, sessionID)
		}
		s.mu.Unlock()
	}
	close(entry.ready)
}

func (s *SessionService) release(sessionID string, entry *sessionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.refs--
	if entry.refs <= 0 && s.stores[sessionID] == entry {
		delete(s.stores, sessionID)
	}
}

func validateSessionID(sessionID string) error {
	if !id.Valid(strings.TrimSpace(sessionID)) {
		return fmt.Errorf("%w: session id must be a UUID", ErrInvalidInput)
	}
	return nil
}

func buildSessionState(input SessionUpdate) (session.State, error) {
	if input.FavoriteTeamID < 0 {
		return session.State{}, fmt.Errorf("%w: favoriteTeamId must be >= 0", ErrInvalidInput)
	}
	if len(input.FollowedTeamIDs) > maxFollowedTeams {
		return session.State{}, fmt.Errorf("%w: at most %d followed teams", ErrInvalidInput, maxFollowedTeams)
	}

	followed := make([]int64, 0, len(input.FollowedTeamIDs))
	seen := make(map[int64]struct{}, len(input.FollowedTeamIDs))
	for _, teamID := range input.FollowedTeamIDs {
		if teamID <= 0 {
			return session.State{}, fmt.Errorf("%w: followed team ids must be > 0", ErrInvalidInput)
		}
		if _, ok := seen[teamID]; ok {
			continue
		}
		seen[teamID] = struct{}{}
		followed = append(followed, teamID)
	}

	timezone := strings.TrimSpace(input.Timezone)
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return session.State{}, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, timezone)
		}
	}

	return session.State{
		FavoriteTeamID:      input.FavoriteTeamID,
		FavoriteCompetition: competition.NormalizeCode(input.FavoriteCompetition),
		FollowedTeamIDs:     followed,
		Timezone:            timezone,
		Locale:              strings.TrimSpace(input.Locale),
	}, nil
}
