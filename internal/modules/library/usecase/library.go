package usecase

import (
	"context"

	"qurtas/internal/modules/library/domain"
	"qurtas/internal/modules/library/dto"
	libraryin "qurtas/internal/modules/library/port/in"
	"qurtas/internal/modules/library/service"
)

type Interactor struct {
	svc *service.BookService
}

func NewInteractor(svc *service.BookService) libraryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddBookInput) (dto.BookOutput, error) {
	book, err := i.svc.Add(ctx, domain.Book{
		Title:         input.Title,
		Author:        input.Author,
		TotalPages:    input.TotalPages,
		CurrentPage:   input.CurrentPage,
		Status:        domain.Status(input.Status),
		CoverURL:      input.CoverURL,
		ISBN:          input.ISBN,
		Publisher:     input.Publisher,
		PublishedDate: input.PublishedDate,
		Description:   input.Description,
	})
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toOutput(book), nil
}

func (i *Interactor) List(ctx context.Context, status string) ([]dto.BookOutput, error) {
	books, err := i.svc.List(ctx, domain.Status(status))
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookOutput, 0, len(books))
	for _, book := range books {
		out = append(out, toOutput(book))
	}
	return out, nil
}

// Browse lists from the SQLite index, the fast path the TUI uses.
func (i *Interactor) Browse(ctx context.Context, status string) ([]dto.BookOutput, error) {
	books, err := i.svc.Browse(ctx, domain.Status(status))
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookOutput, 0, len(books))
	for _, book := range books {
		out = append(out, toOutput(book))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.BookDetailOutput, error) {
	book, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	detail := dto.BookDetailOutput{
		ID:             book.ID,
		Title:          book.Title,
		Author:         book.Author,
		TotalPages:     book.TotalPages,
		CurrentPage:    book.CurrentPage,
		Progress:       book.Progress(),
		PagesRemaining: book.PagesRemaining(),
		Status:         string(book.Status),
		DateAdded:      book.DateAdded,
		DateCompleted:  book.DateCompleted,
		CoverURL:       book.CoverURL,
		ISBN:           book.ISBN,
		Publisher:      book.Publisher,
		PublishedDate:  book.PublishedDate,
		Description:    book.Description,
	}
	if book.Conclusion != nil {
		detail.Conclusion = &dto.ConclusionOutput{
			Takeaway:    book.Conclusion.Takeaway,
			Advice:      book.Conclusion.Advice,
			Reason:      book.Conclusion.Reason,
			Gains:       book.Conclusion.Gains,
			ReturnLater: book.Conclusion.ReturnLater,
		}
	}
	return detail, nil
}

func (i *Interactor) UpdateProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.BookOutput, error) {
	book, err := i.svc.UpdateProgress(ctx, input.BookID, input.Page)
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toOutput(book), nil
}

func (i *Interactor) UpdateMetadata(ctx context.Context, input dto.UpdateMetadataInput) (dto.BookOutput, error) {
	book, err := i.svc.UpdateMetadata(ctx, input.BookID, domain.MetadataPatch{
		Title:         input.Title,
		Author:        input.Author,
		TotalPages:    input.TotalPages,
		CoverURL:      input.CoverURL,
		ISBN:          input.ISBN,
		Publisher:     input.Publisher,
		PublishedDate: input.PublishedDate,
		Description:   input.Description,
	})
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toOutput(book), nil
}

func (i *Interactor) ChangeStatus(ctx context.Context, input dto.ChangeStatusInput) (dto.BookOutput, error) {
	var conclusion *domain.ConclusionNotes
	if input.Conclusion != nil {
		conclusion = &domain.ConclusionNotes{
			Takeaway:    input.Conclusion.Takeaway,
			Advice:      input.Conclusion.Advice,
			Reason:      input.Conclusion.Reason,
			Gains:       input.Conclusion.Gains,
			ReturnLater: input.Conclusion.ReturnLater,
		}
	}
	book, err := i.svc.ChangeStatus(ctx, input.BookID, domain.Status(input.Status), conclusion)
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toOutput(book), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) (dto.DeleteOutput, error) {
	removed, purged, err := i.svc.Delete(ctx, id)
	if err != nil {
		return dto.DeleteOutput{}, err
	}
	return dto.DeleteOutput{Removed: removed, SessionsRemoved: purged}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toOutput(book domain.Book) dto.BookOutput {
	return dto.BookOutput{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		TotalPages:  book.TotalPages,
		CurrentPage: book.CurrentPage,
		Progress:    book.Progress(),
		Status:      string(book.Status),
	}
}
