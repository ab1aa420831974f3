package match

import "context"

// Repository exposes match read operations.
type Repository interface {
	List(ctx context.Context, limit, offset int) ([]Match, error)
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int64) (Match, bool, error)
}
