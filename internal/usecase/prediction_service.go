package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/match-predictor/internal/domain/match"
	"github.com/riskibarqy/match-predictor/internal/domain/prediction"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
)

// SubmitPredictionInput is a prediction that already passed request validation.
// UserID is nil for anonymous submissions.
type SubmitPredictionInput struct {
	MatchID       int64
	UserID        *string
	HomeTeamGoals int
	AwayTeamGoals int
}

// PredictionRecorder is notified after a prediction is stored.
type PredictionRecorder interface {
	PredictionRecorded(anonymous bool)
}

type PredictionService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	recorder       PredictionRecorder
	logger         *logging.Logger
}

func NewPredictionService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PredictionService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		logger:         logger,
	}
}

func (s *PredictionService) SetRecorder(recorder PredictionRecorder) {
	s.recorder = recorder
}

func (s *PredictionService) Submit(ctx context.Context, input SubmitPredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	if input.UserID != nil {
		userID := strings.TrimSpace(*input.UserID)
		input.UserID = &userID
		if userID == "" {
			input.UserID = nil
		}
	}

	item := prediction.Prediction{
		MatchID:       input.MatchID,
		UserID:        input.UserID,
		HomeTeamGoals: input.HomeTeamGoals,
		AwayTeamGoals: input.AwayTeamGoals,
	}
	if err := item.Validate(); err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		verr := NewValidationError()
		verr.Add("match_id", "The selected match id is invalid.")
		return prediction.Prediction{}, verr
	}

	created, err := s.predictionRepo.Create(ctx, item)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("create prediction: %w", err)
	}

	if s.recorder != nil {
		s.recorder.PredictionRecorded(created.IsAnonymous())
	}
	s.logger.InfoContext(ctx, "prediction recorded",
		"prediction_id", created.ID,
		"match_id", created.MatchID,
		"anonymous", created.IsAnonymous(),
	)

	return created, nil
}
