package observability

import "context"

// ShutdownFunc flushes and stops one observability backend.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }
