package competition

import "context"

// Repository exposes the configured competition catalog.
type Repository interface {
	List(ctx context.Context) ([]Competition, error)
	GetByCode(ctx context.Context, code string) (Competition, bool, error)
}
