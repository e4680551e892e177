package out

import (
	"context"

	"qurtas/internal/modules/library/domain"
)

// BookRepository persists the book collection. Save is an upsert keyed by
// book id and is idempotent under repeated calls with identical data.
type BookRepository interface {
	GetAll(ctx context.Context, status domain.Status) ([]domain.Book, error)
	GetByID(ctx context.Context, id string) (domain.Book, error)
	Save(ctx context.Context, book domain.Book) error
	Delete(ctx context.Context, id string) (bool, error)
}

// SessionPurge removes every session owned by a book. It backs the cascade
// rule of book deletion and is implemented by the session repository.
type SessionPurge interface {
	DeleteForBook(ctx context.Context, bookID string) (int, error)
}

// BookIndexProjector maintains the derived SQLite index of the catalog.
type BookIndexProjector interface {
	Upsert(ctx context.Context, book domain.Book) error
	Delete(ctx context.Context, id string) error
	Reset(ctx context.Context) error
}

// BookIndex is the full index port: the projection plus the filtered
// listing the TUI browses with. List returns only the indexed columns;
// detail lookups stay on the repository.
type BookIndex interface {
	BookIndexProjector
	List(ctx context.Context, status domain.Status) ([]domain.Book, error)
}
