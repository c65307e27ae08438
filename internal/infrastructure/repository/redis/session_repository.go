package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/matchcentre/internal/domain/session"
)

const sessionKeyPrefix = "matchcentre:session:"

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// SessionRepository keeps session state as JSON values that expire after ttl
// without a write.
type SessionRepository struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewSessionRepository(client goredis.Cmdable, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Load(ctx context.Context, sessionID string) (session.State, bool, error) {
	raw, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return session.State{}, false, nil
		}
		return session.State{}, false, fmt.Errorf("load session id=%s: %w", sessionID, err)
	}

	state, err := decodeState(raw)
	if err != nil {
		return session.State{}, false, fmt.Errorf("decode session id=%s: %w", sessionID, err)
	}

	return state, true, nil
}

func (r *SessionRepository) Save(ctx context.Context, state session.State) error {
	raw, err := sonic.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session id=%s: %w", state.SessionID, err)
	}
	if err := r.client.Set(ctx, sessionKey(state.SessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session id=%s: %w", state.SessionID, err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func decodeState(raw []byte) (session.State, error) {
	var state session.State
	if err := sonic.Unmarshal(raw, &state); err != nil {
		return session.State{}, err
	}
	if state.FollowedTeamIDs == nil {
		state.FollowedTeamIDs = []int64{}
	}
	return state, nil
}
