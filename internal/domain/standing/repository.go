package standing

import "context"

type Repository interface {
	List(ctx context.Context) ([]Standing, error)
}
