package memory

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/match-predictor/internal/domain/prediction"
)

type PredictionRepository struct {
	mu     sync.RWMutex
	clock  clockwork.Clock
	nextID int64
	items  []prediction.Prediction
}

func NewPredictionRepository(clock clockwork.Clock) *PredictionRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PredictionRepository{clock: clock, nextID: 1}
}

func (r *PredictionRepository) Create(_ context.Context, item prediction.Prediction) (prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now().UTC()
	item.ID = r.nextID
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.UserID != nil {
		userID := *item.UserID
		item.UserID = &userID
	}

	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

// List returns stored predictions in insertion order.
func (r *PredictionRepository) List() []prediction.Prediction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0, len(r.items))
	out = append(out, r.items...)
	return out
}
