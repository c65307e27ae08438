package standing

import "context"

type Repository interface {
	ListByCompetition(ctx context.Context, competitionCode string) ([]Table, error)
}
