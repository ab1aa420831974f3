package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-predictor/internal/domain/match"
	"github.com/riskibarqy/match-predictor/internal/domain/prediction"
	matchmock "github.com/riskibarqy/match-predictor/internal/mocks/domain/match"
	predictionmock "github.com/riskibarqy/match-predictor/internal/mocks/domain/prediction"
	"github.com/stretchr/testify/mock"
)

type countingRecorder struct {
	anonymous     int
	authenticated int
}

func (r *countingRecorder) PredictionRecorded(anonymous bool) {
	if anonymous {
		r.anonymous++
		return
	}
	r.authenticated++
}

func storedPrediction(item prediction.Prediction, id int64) prediction.Prediction {
	now := time.Date(2018, 6, 14, 10, 0, 0, 0, time.UTC)
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return item
}

func TestPredictionService_Submit_Anonymous(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	predictionRepo := predictionmock.NewRepository(t)
	recorder := &countingRecorder{}

	service := NewPredictionService(matchRepo, predictionRepo, nil)
	service.SetRecorder(recorder)

	matchRepo.On("GetByID", ctx, int64(5)).Return(match.Match{ID: 5}, true, nil).Once()
	predictionRepo.
		On("Create", ctx, mock.MatchedBy(func(p prediction.Prediction) bool {
			return p.MatchID == 5 && p.UserID == nil && p.HomeTeamGoals == 2 && p.AwayTeamGoals == 1
		})).
		Return(func(_ context.Context, p prediction.Prediction) (prediction.Prediction, error) {
			return storedPrediction(p, 10), nil
		}).
		Once()

	got, err := service.Submit(ctx, SubmitPredictionInput{MatchID: 5, HomeTeamGoals: 2, AwayTeamGoals: 1})
	if err != nil {
		t.Fatalf("submit prediction: %v", err)
	}
	if got.ID != 10 || got.MatchID != 5 || got.UserID != nil {
		t.Fatalf("unexpected prediction: %+v", got)
	}
	if got.HomeTeamGoals != 2 || got.AwayTeamGoals != 1 {
		t.Fatalf("unexpected goals: %d-%d", got.HomeTeamGoals, got.AwayTeamGoals)
	}
	if recorder.anonymous != 1 || recorder.authenticated != 0 {
		t.Fatalf("unexpected recorder counts: %+v", recorder)
	}
}

func TestPredictionService_Submit_AuthenticatedUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	predictionRepo := predictionmock.NewRepository(t)
	service := NewPredictionService(matchRepo, predictionRepo, nil)

	userID := " user-42 "
	matchRepo.On("GetByID", ctx, int64(3)).Return(match.Match{ID: 3}, true, nil).Once()
	predictionRepo.
		On("Create", ctx, mock.MatchedBy(func(p prediction.Prediction) bool {
			return p.UserID != nil && *p.UserID == "user-42"
		})).
		Return(func(_ context.Context, p prediction.Prediction) (prediction.Prediction, error) {
			return storedPrediction(p, 11), nil
		}).
		Once()

	got, err := service.Submit(ctx, SubmitPredictionInput{MatchID: 3, UserID: &userID})
	if err != nil {
		t.Fatalf("submit prediction: %v", err)
	}
	if got.UserID == nil || *got.UserID != "user-42" {
		t.Fatalf("expected user id user-42, got %v", got.UserID)
	}
}

func TestPredictionService_Submit_BlankUserIsAnonymous(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	predictionRepo := predictionmock.NewRepository(t)
	service := NewPredictionService(matchRepo, predictionRepo, nil)

	blank := "   "
	matchRepo.On("GetByID", ctx, int64(3)).Return(match.Match{ID: 3}, true, nil).Once()
	predictionRepo.
		On("Create", ctx, mock.MatchedBy(func(p prediction.Prediction) bool { return p.UserID == nil })).
		Return(prediction.Prediction{ID: 1, MatchID: 3}, nil).
		Once()

	if _, err := service.Submit(ctx, SubmitPredictionInput{MatchID: 3, UserID: &blank}); err != nil {
		t.Fatalf("submit prediction: %v", err)
	}
}

func TestPredictionService_Submit_MissingMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	predictionRepo := predictionmock.NewRepository(t)
	service := NewPredictionService(matchRepo, predictionRepo, nil)

	matchRepo.On("GetByID", ctx, int64(99)).Return(match.Match{}, false, nil).Once()

	_, err := service.Submit(ctx, SubmitPredictionInput{MatchID: 99})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if msgs := verr.Fields["match_id"]; len(msgs) != 1 || msgs[0] != "The selected match id is invalid." {
		t.Fatalf("unexpected match_id messages: %v", msgs)
	}
	predictionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPredictionService_Submit_InvalidGoalsNeverReachStore(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	predictionRepo := predictionmock.NewRepository(t)
	service := NewPredictionService(matchRepo, predictionRepo, nil)

	_, err := service.Submit(context.Background(), SubmitPredictionInput{MatchID: 1, HomeTeamGoals: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPredictionService_Submit_StoreFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	predictionRepo := predictionmock.NewRepository(t)
	service := NewPredictionService(matchRepo, predictionRepo, nil)

	storeErr := errors.New("insert failed")
	matchRepo.On("GetByID", ctx, int64(5)).Return(match.Match{ID: 5}, true, nil).Once()
	predictionRepo.On("Create", ctx, mock.Anything).Return(prediction.Prediction{}, storeErr).Once()

	_, err := service.Submit(ctx, SubmitPredictionInput{MatchID: 5})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Fatalf("store failure must not be reported as invalid input")
	}
}

func TestPredictionService_Submit_RepeatedSubmissionsBothPersist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	predictionRepo := predictionmock.NewRepository(t)
	service := NewPredictionService(matchRepo, predictionRepo, nil)

	matchRepo.On("GetByID", ctx, int64(5)).Return(match.Match{ID: 5}, true, nil).Twice()
	predictionRepo.On("Create", ctx, mock.Anything).Return(prediction.Prediction{ID: 1, MatchID: 5}, nil).Once()
	predictionRepo.On("Create", ctx, mock.Anything).Return(prediction.Prediction{ID: 2, MatchID: 5}, nil).Once()

	first, err := service.Submit(ctx, SubmitPredictionInput{MatchID: 5, HomeTeamGoals: 1})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := service.Submit(ctx, SubmitPredictionInput{MatchID: 5, HomeTeamGoals: 1})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected two distinct records, got id %d twice", first.ID)
	}
}
