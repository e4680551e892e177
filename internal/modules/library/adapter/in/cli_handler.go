package in

import (
	"context"

	"qurtas/internal/modules/library/dto"
	libraryin "qurtas/internal/modules/library/port/in"
)

type CLIHandler struct {
	usecase libraryin.Usecase
}

func NewCLIHandler(usecase libraryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, input dto.AddBookInput) (dto.BookOutput, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) List(ctx context.Context, status string) ([]dto.BookOutput, error) {
	return h.usecase.List(ctx, status)
}

func (h CLIHandler) Browse(ctx context.Context, status string) ([]dto.BookOutput, error) {
	return h.usecase.Browse(ctx, status)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.BookDetailOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) UpdateProgress(ctx context.Context, bookID string, page int) (dto.BookOutput, error) {
	return h.usecase.UpdateProgress(ctx, dto.UpdateProgressInput{BookID: bookID, Page: page})
}

func (h CLIHandler) UpdateMetadata(ctx context.Context, input dto.UpdateMetadataInput) (dto.BookOutput, error) {
	return h.usecase.UpdateMetadata(ctx, input)
}

func (h CLIHandler) ChangeStatus(ctx context.Context, input dto.ChangeStatusInput) (dto.BookOutput, error) {
	return h.usecase.ChangeStatus(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) (dto.DeleteOutput, error) {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
