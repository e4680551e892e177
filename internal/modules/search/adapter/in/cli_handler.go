package in

import (
	"context"

	"qurtas/internal/modules/search/dto"
	searchin "qurtas/internal/modules/search/port/in"
)

type CLIHandler struct {
	usecase searchin.Usecase
}

func NewCLIHandler(usecase searchin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Search(ctx context.Context, query string, limit int) ([]dto.CandidateOutput, error) {
	return h.usecase.Search(ctx, query, limit)
}

func (h CLIHandler) AddToLibrary(ctx context.Context, input dto.AddCandidateInput) (dto.AddedOutput, error) {
	return h.usecase.AddToLibrary(ctx, input)
}
