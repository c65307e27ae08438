package redis

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/matchcentre/internal/domain/session"
)

func TestSessionKey(t *testing.T) {
	t.Parallel()

	if got := sessionKey("abc"); got != "matchcentre:session:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestDecodeState(t *testing.T) {
	t.Parallel()

	updatedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	raw, err := sonic.Marshal(session.State{
		SessionID:           "s1",
		FavoriteTeamID:      57,
		FavoriteCompetition: "PL",
		FollowedTeamIDs:     []int64{57, 61},
		Timezone:            "Europe/London",
		UpdatedAt:           updatedAt,
	})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	state, err := decodeState(raw)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if state.SessionID != "s1" || state.FavoriteTeamID != 57 || len(state.FollowedTeamIDs) != 2 || state.Timezone != "Europe/London" {
		t.Fatalf("unexpected state: %+v", state)
	}
	if !state.UpdatedAt.Equal(updatedAt) {
		t.Fatalf("unexpected updatedAt: %s", state.UpdatedAt)
	}
}

func TestDecodeState_DefaultsFollowedTeams(t *testing.T) {
	t.Parallel()

	state, err := decodeState([]byte(`{"sessionId":"s1","updatedAt":"2025-03-01T09:00:00Z"}`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if state.FollowedTeamIDs == nil {
		t.Fatalf("followed teams must decode to an empty slice")
	}
}

func TestDecodeState_RejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := decodeState([]byte(`not-json`)); err == nil {
		t.Fatalf("expected decode error")
	}
}
