package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/matchcentre/internal/config"
	"github.com/riskibarqy/matchcentre/internal/domain/session"
	"github.com/riskibarqy/matchcentre/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchcentre/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/matchcentre/internal/infrastructure/repository/redis"
)

// buildSessionPersister selects the session backend. The returned close
// func is nil when the backend owns no connection.
func buildSessionPersister(ctx context.Context, cfg config.Config, db *sqlx.DB) (session.Persister, func() error, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := redisrepo.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect session redis: %w", err)
		}
		return redisrepo.NewSessionRepository(client, cfg.SessionTTL), client.Close, nil
	case config.SessionBackendPostgres:
		if db == nil {
			return nil, nil, fmt.Errorf("session backend %q requires DB_ENABLED=true", cfg.SessionBackend)
		}
		return postgres.NewSessionRepository(db), nil, nil
	case config.SessionBackendMemory, "":
		return memory.NewSessionRepository(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session backend %q", cfg.SessionBackend)
	}
}
