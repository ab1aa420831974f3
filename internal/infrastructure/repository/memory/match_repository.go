package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/match-predictor/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make([]match.Match, 0, len(matches))
	items = append(items, matches...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return &MatchRepository{matches: items}
}

func (r *MatchRepository) List(_ context.Context, limit, offset int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.matches) {
		return []match.Match{}, nil
	}

	end := len(r.matches)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]match.Match, 0, end-offset)
	out = append(out, r.matches[offset:end]...)
	return out, nil
}

func (r *MatchRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.matches), nil
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.matches {
		if item.ID == id {
			return item, true, nil
		}
	}
	return match.Match{}, false, nil
}
