package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-predictor/internal/domain/prediction"
	qb "github.com/riskibarqy/match-predictor/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Create(ctx context.Context, item prediction.Prediction) (prediction.Prediction, error) {
	insertModel := predictionInsertModel{
		MatchID:       item.MatchID,
		UserID:        item.UserID,
		HomeTeamGoals: item.HomeTeamGoals,
		AwayTeamGoals: item.AwayTeamGoals,
	}
	query, args, err := qb.InsertModel("predictions", insertModel,
		"RETURNING id, match_id, user_id, home_team_goals, away_team_goals, created_at, updated_at")
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("build insert prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return prediction.Prediction{}, fmt.Errorf("insert prediction: %w", err)
	}

	return prediction.Prediction{
		ID:            row.ID,
		MatchID:       row.MatchID,
		UserID:        nullStringPtr(row.UserID),
		HomeTeamGoals: row.HomeTeamGoals,
		AwayTeamGoals: row.AwayTeamGoals,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}, nil
}
