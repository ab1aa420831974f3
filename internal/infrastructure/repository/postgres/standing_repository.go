package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-predictor/internal/domain/standing"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
	qb "github.com/riskibarqy/match-predictor/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) List(ctx context.Context) ([]standing.Standing, error) {
	query, args, err := qb.Select("group_label", "id", "name", "crest").From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("group_label", "position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}

	return groupStandings(rows), nil
}

// groupStandings folds rows already ordered by group into one entry per group.
func groupStandings(rows []standingRowModel) []standing.Standing {
	out := make([]standing.Standing, 0)
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].Group != row.GroupLabel {
			out = append(out, standing.Standing{Group: row.GroupLabel})
		}
		last := &out[len(out)-1]
		last.Teams = append(last.Teams, team.Team{
			ID:    row.TeamID,
			Name:  row.Name,
			Crest: row.Crest.String,
		})
	}
	return out
}
