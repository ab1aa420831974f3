package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-predictor/internal/domain/match"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
	qb "github.com/riskibarqy/match-predictor/internal/platform/querybuilder"
)

var matchColumns = []string{
	"s.id",
	"s.group_label",
	"s.kickoff_at",
	"s.home_team_id",
	"ht.name AS home_team_name",
	"ht.crest AS home_team_crest",
	"s.away_team_id",
	"awt.name AS away_team_name",
	"awt.crest AS away_team_crest",
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context, limit, offset int) ([]match.Match, error) {
	query, args, err := selectMatches().
		Where(qb.IsNull("s.deleted_at")).
		OrderBy("s.id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*) AS total").From("schedules").
		Where(qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches query: %w", err)
	}

	var row countModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}

	return row.Total, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	query, args, err := selectMatches().
		Where(
			qb.Eq("s.id", id),
			qb.IsNull("s.deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchRowModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	return row.toDomain(), true, nil
}

// Teams are left joined so a schedule with an unknown team still lists.
func selectMatches() *qb.SelectBuilder {
	return qb.Select(matchColumns...).
		From("schedules s").
		Join("LEFT JOIN teams ht ON ht.id = s.home_team_id").
		Join("LEFT JOIN teams awt ON awt.id = s.away_team_id")
}

func (row matchRowModel) toDomain() match.Match {
	return match.Match{
		ID:    row.ID,
		Group: row.GroupLabel,
		HomeTeam: team.Team{
			ID:    row.HomeTeamID,
			Name:  row.HomeTeamName.String,
			Crest: row.HomeCrest.String,
		},
		AwayTeam: team.Team{
			ID:    row.AwayTeamID,
			Name:  row.AwayTeamName.String,
			Crest: row.AwayCrest.String,
		},
		KickoffAt: row.KickoffAt.UTC(),
	}
}
