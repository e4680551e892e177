package service

import (
	"context"
	"fmt"

	"qurtas/internal/modules/library/domain"
	libraryout "qurtas/internal/modules/library/port/out"
	"qurtas/internal/platform/clock"
	apperrors "qurtas/internal/platform/errors"
	"qurtas/internal/platform/id"
	"qurtas/internal/platform/tx"
)

type BookService struct {
	clock clock.Clock
	idGen id.Generator
	repo  libraryout.BookRepository
	purge libraryout.SessionPurge
	index libraryout.BookIndex
	tx    tx.Manager
}

func NewBookService(clock clock.Clock, idGen id.Generator, repo libraryout.BookRepository, purge libraryout.SessionPurge, index libraryout.BookIndex, txm tx.Manager) *BookService {
	return &BookService{clock: clock, idGen: idGen, repo: repo, purge: purge, index: index, tx: txm}
}

// Add catalogs a new book. Drafts carry caller-supplied fields only; the id
// and the date added are assigned here. A draft without a status starts in
// the reading state, matching the tracker's "add and start" flow.
func (s *BookService) Add(ctx context.Context, draft domain.Book) (domain.Book, error) {
	if draft.Status == "" {
		draft.Status = domain.StatusReading
	}
	reasons := domain.ValidateBook(draft)
	if draft.Status != domain.StatusReading && draft.Status != domain.StatusToRead {
		reasons = append(reasons, fmt.Sprintf("a new book cannot start as %q", string(draft.Status)))
	}
	if err := apperrors.Validation(reasons); err != nil {
		return domain.Book{}, err
	}

	draft.ID = s.idGen.New()
	draft.DateAdded = s.clock.Now()
	if err := s.repo.Save(ctx, draft); err != nil {
		return domain.Book{}, err
	}
	if err := s.index.Upsert(ctx, draft); err != nil {
		return domain.Book{}, err
	}
	return draft, nil
}

func (s *BookService) Get(ctx context.Context, bookID string) (domain.Book, error) {
	return s.repo.GetByID(ctx, bookID)
}

func (s *BookService) List(ctx context.Context, status domain.Status) ([]domain.Book, error) {
	if status != "" {
		if err := status.Validate(); err != nil {
			return nil, err
		}
	}
	return s.repo.GetAll(ctx, status)
}

// Browse lists books from the derived SQLite index instead of the JSON
// collection. The index carries the listing columns only; Get serves the
// full record.
func (s *BookService) Browse(ctx context.Context, status domain.Status) ([]domain.Book, error) {
	if status != "" {
		if err := status.Validate(); err != nil {
			return nil, err
		}
	}
	return s.index.List(ctx, status)
}

// UpdateProgress moves the bookmark and persists the result. Over-range
// pages clamp; reaching the last page completes the book.
func (s *BookService) UpdateProgress(ctx context.Context, bookID string, page int) (domain.Book, error) {
	book, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return domain.Book{}, err
	}
	book.UpdateProgress(page, s.clock.Now())
	if err := s.repo.Save(ctx, book); err != nil {
		return domain.Book{}, err
	}
	if err := s.index.Upsert(ctx, book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// UpdateMetadata merges a partial edit over the stored book and re-checks
// structural rules before persisting.
func (s *BookService) UpdateMetadata(ctx context.Context, bookID string, patch domain.MetadataPatch) (domain.Book, error) {
	book, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return domain.Book{}, err
	}
	book.ApplyMetadata(patch)
	if err := apperrors.Validation(domain.ValidateBook(book)); err != nil {
		return domain.Book{}, err
	}
	if err := s.repo.Save(ctx, book); err != nil {
		return domain.Book{}, err
	}
	if err := s.index.Upsert(ctx, book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// ChangeStatus applies one edge of the status transition table. Completing
// pins the bookmark to the last page; a debrief, when supplied, is stored on
// the terminal transitions.
func (s *BookService) ChangeStatus(ctx context.Context, bookID string, target domain.Status, conclusion *domain.ConclusionNotes) (domain.Book, error) {
	if err := target.Validate(); err != nil {
		return domain.Book{}, err
	}
	book, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return domain.Book{}, err
	}
	if book.Status == target {
		return book, nil
	}
	if !book.Status.CanTransition(target) {
		return domain.Book{}, fmt.Errorf("cannot move book from %s to %s", book.Status, target)
	}

	switch target {
	case domain.StatusCompleted:
		book.MarkCompleted(s.clock.Now())
	default:
		book.Status = target
	}
	if conclusion != nil && (target == domain.StatusCompleted || target == domain.StatusDropped) {
		notes := *conclusion
		book.Conclusion = &notes
	}

	if err := s.repo.Save(ctx, book); err != nil {
		return domain.Book{}, err
	}
	if err := s.index.Upsert(ctx, book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// Delete removes a book and cascades to every session that references it.
func (s *BookService) Delete(ctx context.Context, bookID string) (bool, int, error) {
	removed := false
	purged := 0
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		ok, err := s.repo.Delete(ctx, bookID)
		if err != nil {
			return err
		}
		removed = ok
		if !ok {
			return nil
		}
		purged, err = s.purge.DeleteForBook(ctx, bookID)
		if err != nil {
			return err
		}
		return s.index.Delete(ctx, bookID)
	})
	if err != nil {
		return false, 0, err
	}
	return removed, purged, nil
}

// Reindex rebuilds the SQLite catalog index from the stored collection.
func (s *BookService) Reindex(ctx context.Context) error {
	if err := s.index.Reset(ctx); err != nil {
		return err
	}
	books, err := s.repo.GetAll(ctx, "")
	if err != nil {
		return err
	}
	for _, book := range books {
		if err := s.index.Upsert(ctx, book); err != nil {
			return err
		}
	}
	return nil
}
