package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/match-predictor/internal/domain/standing"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
)

type StandingRepository struct {
	mu        sync.RWMutex
	standings []standing.Standing
}

func NewStandingRepository(standings []standing.Standing) *StandingRepository {
	return &StandingRepository{standings: cloneStandings(standings)}
}

func (r *StandingRepository) List(_ context.Context) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneStandings(r.standings), nil
}

func cloneStandings(items []standing.Standing) []standing.Standing {
	out := make([]standing.Standing, 0, len(items))
	for _, item := range items {
		teams := make([]team.Team, 0, len(item.Teams))
		teams = append(teams, item.Teams...)
		out = append(out, standing.Standing{Group: item.Group, Teams: teams})
	}
	return out
}
