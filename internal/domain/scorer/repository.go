package scorer

import "context"

type Repository interface {
	ListByCompetition(ctx context.Context, competitionCode string, limit int) ([]Scorer, error)
}
