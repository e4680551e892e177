package in

import (
	"context"

	"qurtas/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	Complete(ctx context.Context, input dto.CompleteInput) (dto.SessionOutput, error)
	SaveNotes(ctx context.Context, input dto.SaveNotesInput) (dto.SessionOutput, error)
	Discard(ctx context.Context, sessionID string) error
	Active(ctx context.Context, bookID string) (dto.SessionOutput, error)
	List(ctx context.Context, bookID string) ([]dto.SessionOutput, error)
	BookStats(ctx context.Context, bookID string) (dto.BookStatsOutput, error)
	GlobalStats(ctx context.Context) (dto.GlobalStatsOutput, error)
}
