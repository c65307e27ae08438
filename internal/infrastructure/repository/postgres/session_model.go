package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

const sessionTable = "app_sessions"

type sessionTableModel struct {
	SessionID           string         `db:"session_id"`
	FavoriteTeamID      sql.NullInt64  `db:"favorite_team_id"`
	FavoriteCompetition sql.NullString `db:"favorite_competition"`
	FollowedTeamIDs     pq.Int64Array  `db:"followed_team_ids"`
	Timezone            sql.NullString `db:"timezone"`
	Locale              sql.NullString `db:"locale"`
	UpdatedAt           time.Time      `db:"updated_at"`
}
