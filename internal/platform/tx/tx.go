package tx

import "context"

// Manager brackets operations that touch more than one collection, such as
// completing a session (session + book) or a cascading book delete. The
// execution model is single-writer, so the default manager is a no-op; a
// storage backend with real transactions can supply its own.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
