package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/matchcentre/internal/domain/competition"
)

type CompetitionRepository struct {
	mu     sync.RWMutex
	items  map[string]competition.Competition
	orders []string
}

func NewCompetitionRepository(items []competition.Competition) *CompetitionRepository {
	byCode := make(map[string]competition.Competition, len(items))
	orders := make([]string, 0, len(items))

	for _, item := range items {
		code := competition.NormalizeCode(item.Code)
		if code == "" {
			continue
		}
		if _, exists := byCode[code]; !exists {
			orders = append(orders, code)
		}
		item.Code = code
		byCode[code] = item
	}

	return &CompetitionRepository{
		items:  byCode,
		orders: orders,
	}
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.orders))
	for _, code := range r.orders {
		out = append(out, r.items[code])
	}

	return out, nil
}

func (r *CompetitionRepository) GetByCode(_ context.Context, code string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[competition.NormalizeCode(code)]
	if !ok {
		return competition.Competition{}, false, nil
	}

	return item, true, nil
}
