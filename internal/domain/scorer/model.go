package scorer

import "github.com/riskibarqy/matchcentre/internal/domain/team"

// Scorer is one row of a competition's scorers list.
type Scorer struct {
	Player        team.Player `json:"player"`
	Team          team.Ref    `json:"team"`
	PlayedMatches int         `json:"playedMatches"`
	Goals         int         `json:"goals"`
	Assists       *int        `json:"assists"`
	Penalties     *int        `json:"penalties"`
}
