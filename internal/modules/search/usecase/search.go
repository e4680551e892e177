package usecase

import (
	"context"

	librarydto "qurtas/internal/modules/library/dto"
	libraryin "qurtas/internal/modules/library/port/in"
	"qurtas/internal/modules/search/domain"
	"qurtas/internal/modules/search/dto"
	searchin "qurtas/internal/modules/search/port/in"
	"qurtas/internal/modules/search/service"
)

// Interactor implements the search inbound port. AddToLibrary hands the
// picked candidate to the library module, which owns validation and id
// assignment.
type Interactor struct {
	svc     *service.SearchService
	library libraryin.Usecase
}

func NewInteractor(svc *service.SearchService, library libraryin.Usecase) searchin.Usecase {
	return &Interactor{svc: svc, library: library}
}

func (i *Interactor) Search(ctx context.Context, query string, limit int) ([]dto.CandidateOutput, error) {
	candidates, err := i.svc.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CandidateOutput, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, toOutput(candidate))
	}
	return out, nil
}

func (i *Interactor) AddToLibrary(ctx context.Context, input dto.AddCandidateInput) (dto.AddedOutput, error) {
	candidate := input.Candidate
	book, err := i.library.Add(ctx, librarydto.AddBookInput{
		Title:         candidate.Title,
		Author:        candidate.Author,
		TotalPages:    candidate.TotalPages,
		Status:        input.Status,
		CoverURL:      candidate.CoverURL,
		ISBN:          candidate.ISBN,
		Publisher:     candidate.Publisher,
		PublishedDate: candidate.PublishedDate,
		Description:   candidate.Description,
	})
	if err != nil {
		return dto.AddedOutput{}, err
	}
	return dto.AddedOutput{BookID: book.ID, Title: book.Title}, nil
}

func toOutput(candidate domain.Candidate) dto.CandidateOutput {
	return dto.CandidateOutput{
		SourceID:      candidate.SourceID,
		Title:         candidate.Title,
		Author:        candidate.Author,
		TotalPages:    candidate.TotalPages,
		ISBN:          candidate.ISBN,
		CoverURL:      candidate.CoverURL,
		Publisher:     candidate.Publisher,
		PublishedDate: candidate.PublishedDate,
		Description:   candidate.Description,
	}
}
