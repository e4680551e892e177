package in

import (
	"context"

	"qurtas/internal/modules/search/dto"
)

type Usecase interface {
	Search(ctx context.Context, query string, limit int) ([]dto.CandidateOutput, error)
	AddToLibrary(ctx context.Context, input dto.AddCandidateInput) (dto.AddedOutput, error)
}
