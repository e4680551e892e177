package out

import (
	"context"

	"qurtas/internal/modules/session/domain"
)

// SessionRepository persists the session collection. GetActive returns the
// single session for a book whose end time is unset, or
// apperrors.ErrNoActiveSession; uniqueness is enforced by the reading
// workflow, not by the repository.
type SessionRepository interface {
	GetAll(ctx context.Context, bookID string) ([]domain.Session, error)
	GetByID(ctx context.Context, id string) (domain.Session, error)
	GetActive(ctx context.Context, bookID string) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id string) (bool, error)
}

// ReviewStore renders a completed session into a markdown review note.
type ReviewStore interface {
	Save(ctx context.Context, session domain.Session, bookTitle string) (string, error)
}
