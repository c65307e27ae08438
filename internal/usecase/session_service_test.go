package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/matchcentre/internal/domain/session"
	sessionmock "github.com/riskibarqy/matchcentre/internal/mocks/domain/session"
)

const testSessionID = "4f9c2f4e-3a7b-4a57-9a53-6f7b0c1d2e3f"

func TestSessionService_CreatePersistsEmptyState(t *testing.T) {
	t.Parallel()

	persister := sessionmock.NewPersister(t)
	service := NewSessionService(persister, fixedIDGenerator{id: testSessionID})

	persister.On("Load", anyContext(), testSessionID).Return(session.State{}, false, nil).Once()
	persister.On("Save", anyContext(), mock.MatchedBy(func(s session.State) bool {
		return s.SessionID == testSessionID && len(s.FollowedTeamIDs) == 0
	})).Return(nil).Once()

	got, err := service.Create(context.Background())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if got.SessionID != testSessionID || got.UpdatedAt.IsZero() {
		t.Fatalf("unexpected created session: %+v", got)
	}
	if service.resident() != 0 {
		t.Fatalf("expected store released after create")
	}
}

func TestSessionService_UpdateNormalizesAndNotifiesSubscribers(t *testing.T) {
	t.Parallel()

	persister := sessionmock.NewPersister(t)
	service := NewSessionService(persister, fixedIDGenerator{})

	persister.On("Load", anyContext(), testSessionID).Return(session.State{
		SessionID:       testSessionID,
		FollowedTeamIDs: []int64{57},
	}, true, nil).Once()
	persister.On("Save", anyContext(), mock.Anything).Return(nil).Once()

	received := make(chan session.State, 1)
	current, unsubscribe, err := service.Subscribe(context.Background(), testSessionID, func(s session.State) {
		received <- s
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if len(current.FollowedTeamIDs) != 1 || current.FollowedTeamIDs[0] != 57 {
		t.Fatalf("expected persisted state on subscribe, got %+v", current)
	}

	updated, err := service.Update(context.Background(), testSessionID, SessionUpdate{
		FavoriteTeamID:      61,
		FavoriteCompetition: " pl ",
		FollowedTeamIDs:     []int64{61, 57, 61},
		Timezone:            "Europe/London",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FavoriteCompetition != "PL" || len(updated.FollowedTeamIDs) != 2 {
		t.Fatalf("unexpected normalized state: %+v", updated)
	}

	select {
	case got := <-received:
		if got.FavoriteTeamID != 61 {
			t.Fatalf("unexpected notified state: %+v", got)
		}
	default:
		t.Fatalf("expected subscriber to be notified synchronously")
	}

	if service.resident() != 1 {
		t.Fatalf("expected subscribed store to stay resident")
	}
	unsubscribe()
	unsubscribe()
	if service.resident() != 0 {
		t.Fatalf("expected store released after unsubscribe")
	}
}

func TestSessionService_InvalidInput(t *testing.T) {
	t.Parallel()

	service := NewSessionService(sessionmock.NewPersister(t), fixedIDGenerator{})

	if _, err := service.Get(context.Background(), "not-a-uuid"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad id, got %v", err)
	}
	cases := []SessionUpdate{
		{FavoriteTeamID: -1},
		{FollowedTeamIDs: []int64{0}},
		{Timezone: "Nowhere/Special"},
	}
	for _, input := range cases {
		if _, err := service.Update(context.Background(), testSessionID, input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestSessionService_PersistFailure(t *testing.T) {
	t.Parallel()

	persister := sessionmock.NewPersister(t)
	service := NewSessionService(persister, fixedIDGenerator{})

	persister.On("Load", anyContext(), testSessionID).Return(session.State{}, false, errors.New("redis down")).Once()
	if _, err := service.Get(context.Background(), testSessionID); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable on load failure, got %v", err)
	}
	if service.resident() != 0 {
		t.Fatalf("failed load must not leave a resident store")
	}

	persister.On("Load", anyContext(), testSessionID).Return(session.State{}, false, nil).Once()
	persister.On("Save", anyContext(), mock.Anything).Return(errors.New("redis down")).Once()
	if _, err := service.Update(context.Background(), testSessionID, SessionUpdate{}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable on save failure, got %v", err)
	}
}

func TestSessionService_SlowLoadDoesNotBlockOtherSessions(t *testing.T) {
	t.Parallel()

	const otherSessionID = "9d1e4b2a-6c3f-4e8d-8b7a-1f2e3d4c5b6a"

	persister := sessionmock.NewPersister(t)
	service := NewSessionService(persister, fixedIDGenerator{})

	started := make(chan struct{})
	unblock := make(chan struct{})
	persister.On("Load", anyContext(), testSessionID).
		Run(func(mock.Arguments) {
			close(started)
			<-unblock
		}).
		Return(session.State{SessionID: testSessionID, FavoriteTeamID: 57}, true, nil).
		Once()
	persister.On("Load", anyContext(), otherSessionID).Return(session.State{}, false, nil).Once()

	type result struct {
		state session.State
		err   error
	}
	slow := make(chan result, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, err := service.Get(context.Background(), testSessionID)
			slow <- result{state: state, err: err}
		}()
	}
	<-started
	waitForRefs(t, service, testSessionID, 2)

	done := make(chan error, 1)
	go func() {
		_, err := service.Get(context.Background(), otherSessionID)
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("get other session: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("get on another session blocked behind a slow load")
	}

	close(unblock)
	wg.Wait()
	close(slow)
	for got := range slow {
		if got.err != nil || got.state.FavoriteTeamID != 57 {
			t.Fatalf("unexpected shared load result: %+v", got)
		}
	}
	if service.resident() != 0 {
		t.Fatalf("expected stores released, got %d", service.resident())
	}
}

func TestSessionService_WaiterHonoursOwnContext(t *testing.T) {
	t.Parallel()

	persister := sessionmock.NewPersister(t)
	service := NewSessionService(persister, fixedIDGenerator{})

	started := make(chan struct{})
	unblock := make(chan struct{})
	persister.On("Load", anyContext(), testSessionID).
		Run(func(mock.Arguments) {
			close(started)
			<-unblock
		}).
		Return(session.State{}, false, nil).
		Once()

	first := make(chan error, 1)
	go func() {
		_, err := service.Get(context.Background(), testSessionID)
		first <- err
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := service.Get(ctx, testSessionID); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable for cancelled waiter, got %v", err)
	}

	close(unblock)
	if err := <-first; err != nil {
		t.Fatalf("first get: %v", err)
	}
	if service.resident() != 0 {
		t.Fatalf("expected stores released, got %d", service.resident())
	}
}
