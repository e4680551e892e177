package in

import (
	"context"

	"qurtas/internal/modules/library/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddBookInput) (dto.BookOutput, error)
	List(ctx context.Context, status string) ([]dto.BookOutput, error)
	Browse(ctx context.Context, status string) ([]dto.BookOutput, error)
	Get(ctx context.Context, id string) (dto.BookDetailOutput, error)
	UpdateProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.BookOutput, error)
	UpdateMetadata(ctx context.Context, input dto.UpdateMetadataInput) (dto.BookOutput, error)
	ChangeStatus(ctx context.Context, input dto.ChangeStatusInput) (dto.BookOutput, error)
	Delete(ctx context.Context, id string) (dto.DeleteOutput, error)
	Reindex(ctx context.Context) error
}
