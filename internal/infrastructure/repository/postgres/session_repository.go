package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/matchcentre/internal/domain/session"
	qb "github.com/riskibarqy/matchcentre/internal/platform/querybuilder"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Load(ctx context.Context, sessionID string) (session.State, bool, error) {
	query, args, err := qb.Select(qb.Columns(sessionTableModel{})...).
		From(sessionTable).
		Where(qb.Eq("session_id", sessionID)).
		ToSQL()
	if err != nil {
		return session.State{}, false, fmt.Errorf("build load session query: %w", err)
	}

	var row sessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return session.State{}, false, nil
		}
		return session.State{}, false, fmt.Errorf("load session id=%s: %w", sessionID, err)
	}

	return sessionFromRow(row), true, nil
}

func (r *SessionRepository) Save(ctx context.Context, state session.State) error {
	insertModel := sessionTableModel{
		SessionID:           state.SessionID,
		FavoriteTeamID:      nullInt64(state.FavoriteTeamID),
		FavoriteCompetition: nullString(state.FavoriteCompetition),
		FollowedTeamIDs:     pq.Int64Array(append([]int64{}, state.FollowedTeamIDs...)),
		Timezone:            nullString(state.Timezone),
		Locale:              nullString(state.Locale),
		UpdatedAt:           state.UpdatedAt,
	}

	query, args, err := qb.InsertModel(sessionTable, insertModel, "session_id")
	if err != nil {
		return fmt.Errorf("build save session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session id=%s: %w", state.SessionID, err)
	}

	return nil
}

func sessionFromRow(row sessionTableModel) session.State {
	return session.State{
		SessionID:           row.SessionID,
		FavoriteTeamID:      row.FavoriteTeamID.Int64,
		FavoriteCompetition: row.FavoriteCompetition.String,
		FollowedTeamIDs:     append([]int64{}, row.FollowedTeamIDs...),
		Timezone:            row.Timezone.String,
		Locale:              row.Locale.String,
		UpdatedAt:           row.UpdatedAt,
	}
}

func nullInt64(value int64) sql.NullInt64 {
	if value == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: value, Valid: true}
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
