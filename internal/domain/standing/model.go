package standing

import (
	"strings"

	"github.com/riskibarqy/matchcentre/internal/domain/team"
)

const (
	TypeTotal = "TOTAL"
	TypeHome  = "HOME"
	TypeAway  = "AWAY"
)

// Table is one standings table of a competition stage.
type Table struct {
	Stage string `json:"stage"`
	Type  string `json:"type"`
	Group string `json:"group"`
	Rows  []Row  `json:"table"`
}

type Row struct {
	Position       int      `json:"position"`
	Team           team.Ref `json:"team"`
	PlayedGames    int      `json:"playedGames"`
	Won            int      `json:"won"`
	Draw           int      `json:"draw"`
	Lost           int      `json:"lost"`
	GoalsFor       int      `json:"goalsFor"`
	GoalsAgainst   int      `json:"goalsAgainst"`
	GoalDifference int      `json:"goalDifference"`
	Points         int      `json:"points"`
	Form           string   `json:"form"`
}

// SelectTotal returns the TOTAL tables, or every table when the provider did
// not label any of them. Group stages keep one table per group.
func SelectTotal(tables []Table) []Table {
	out := make([]Table, 0, len(tables))
	for _, item := range tables {
		if strings.EqualFold(strings.TrimSpace(item.Type), TypeTotal) {
			out = append(out, item)
		}
	}
	if len(out) > 0 {
		return out
	}
	return append(out, tables...)
}
