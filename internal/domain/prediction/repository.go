package prediction

import "context"

// Repository persists predictions. Create returns the stored row with ID and
// timestamps assigned by the store.
type Repository interface {
	Create(ctx context.Context, item Prediction) (Prediction, error)
}
