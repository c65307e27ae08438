package session

import (
	"context"
	"time"
)

// State is the per-device preference context the app restores on start.
type State struct {
	SessionID           string    `json:"sessionId"`
	FavoriteTeamID      int64     `json:"favoriteTeamId,omitempty"`
	FavoriteCompetition string    `json:"favoriteCompetition,omitempty"`
	FollowedTeamIDs     []int64   `json:"followedTeamIds"`
	Timezone            string    `json:"timezone,omitempty"`
	Locale              string    `json:"locale,omitempty"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	out := s
	out.FollowedTeamIDs = append(make([]int64, 0, len(s.FollowedTeamIDs)), s.FollowedTeamIDs...)
	return out
}

// Persister stores session state outside the process.
type Persister interface {
	Load(ctx context.Context, sessionID string) (State, bool, error)
	Save(ctx context.Context, state State) error
}
