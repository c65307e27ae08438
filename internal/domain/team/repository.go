package team

import "context"

// Repository exposes club read operations.
type Repository interface {
	ListByCompetition(ctx context.Context, competitionCode string) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
}
