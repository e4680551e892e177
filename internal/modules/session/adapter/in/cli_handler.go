package in

import (
	"context"

	"qurtas/internal/modules/session/dto"
	sessionin "qurtas/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, bookID string) (dto.SessionOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{BookID: bookID})
}

func (h CLIHandler) Complete(ctx context.Context, sessionID string, endPage int, notes dto.NotesInput) (dto.SessionOutput, error) {
	return h.usecase.Complete(ctx, dto.CompleteInput{SessionID: sessionID, EndPage: endPage, Notes: notes})
}

func (h CLIHandler) SaveNotes(ctx context.Context, sessionID string, notes dto.NotesInput) (dto.SessionOutput, error) {
	return h.usecase.SaveNotes(ctx, dto.SaveNotesInput{SessionID: sessionID, Notes: notes})
}

func (h CLIHandler) Discard(ctx context.Context, sessionID string) error {
	return h.usecase.Discard(ctx, sessionID)
}

func (h CLIHandler) Active(ctx context.Context, bookID string) (dto.SessionOutput, error) {
	return h.usecase.Active(ctx, bookID)
}

func (h CLIHandler) List(ctx context.Context, bookID string) ([]dto.SessionOutput, error) {
	return h.usecase.List(ctx, bookID)
}

func (h CLIHandler) BookStats(ctx context.Context, bookID string) (dto.BookStatsOutput, error) {
	return h.usecase.BookStats(ctx, bookID)
}

func (h CLIHandler) GlobalStats(ctx context.Context) (dto.GlobalStatsOutput, error) {
	return h.usecase.GlobalStats(ctx)
}
