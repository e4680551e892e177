package out

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"qurtas/internal/modules/session/domain"
	sessionout "qurtas/internal/modules/session/port/out"
	apperrors "qurtas/internal/platform/errors"
	"qurtas/internal/platform/storage"
)

const sessionsCollection = "sessions"

type sessionRecord struct {
	ID        string      `json:"id"`
	BookID    string      `json:"bookId"`
	StartTime time.Time   `json:"startTime"`
	EndTime   *time.Time  `json:"endTime"`
	StartPage int         `json:"startPage"`
	EndPage   *int        `json:"endPage"`
	Notes     notesRecord `json:"notes"`
}

type notesRecord struct {
	WhatStoodOut    string `json:"whatStoodOut"`
	KeyIdeas        string `json:"keyIdeas"`
	QuestionsRaised string `json:"questionsRaised"`
}

// JSONSessionStore persists sessions and also implements the library
// module's SessionPurge port so book deletion can cascade.
type JSONSessionStore struct {
	store storage.Store
}

func NewJSONSessionStore(store storage.Store) *JSONSessionStore {
	return &JSONSessionStore{store: store}
}

var _ sessionout.SessionRepository = (*JSONSessionStore)(nil)

func (s *JSONSessionStore) GetAll(ctx context.Context, bookID string) ([]domain.Session, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(records))
	for _, record := range records {
		if bookID != "" && record.BookID != bookID {
			continue
		}
		out = append(out, fromRecord(record))
	}
	return out, nil
}

func (s *JSONSessionStore) GetByID(ctx context.Context, id string) (domain.Session, error) {
	records, err := s.load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for _, record := range records {
		if record.ID == id {
			return fromRecord(record), nil
		}
	}
	return domain.Session{}, apperrors.ErrNotFound
}

func (s *JSONSessionStore) GetActive(ctx context.Context, bookID string) (domain.Session, error) {
	records, err := s.load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for _, record := range records {
		if record.BookID == bookID && record.EndTime == nil {
			return fromRecord(record), nil
		}
	}
	return domain.Session{}, apperrors.ErrNoActiveSession
}

func (s *JSONSessionStore) Save(ctx context.Context, session domain.Session) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	record := toRecord(session)
	replaced := false
	for i := range records {
		if records[i].ID == session.ID {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}
	return s.persist(ctx, records)
}

func (s *JSONSessionStore) Delete(ctx context.Context, id string) (bool, error) {
	records, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	kept := records[:0]
	removed := false
	for _, record := range records {
		if record.ID == id {
			removed = true
			continue
		}
		kept = append(kept, record)
	}
	if !removed {
		return false, nil
	}
	return true, s.persist(ctx, kept)
}

// DeleteForBook removes every session owned by a book and reports how many
// were dropped. Sessions of other books are untouched.
func (s *JSONSessionStore) DeleteForBook(ctx context.Context, bookID string) (int, error) {
	records, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	kept := records[:0]
	removed := 0
	for _, record := range records {
		if record.BookID == bookID {
			removed++
			continue
		}
		kept = append(kept, record)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.persist(ctx, kept)
}

func (s *JSONSessionStore) load(ctx context.Context) ([]sessionRecord, error) {
	payload, err := s.store.Read(ctx, sessionsCollection)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}
	var records []sessionRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode sessions collection: %w", err)
	}
	return records, nil
}

func (s *JSONSessionStore) persist(ctx context.Context, records []sessionRecord) error {
	if records == nil {
		records = []sessionRecord{}
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sessions collection: %w", err)
	}
	return s.store.Write(ctx, sessionsCollection, payload)
}

func toRecord(session domain.Session) sessionRecord {
	return sessionRecord{
		ID:        session.ID,
		BookID:    session.BookID,
		StartTime: session.StartTime,
		EndTime:   session.EndTime,
		StartPage: session.StartPage,
		EndPage:   session.EndPage,
		Notes: notesRecord{
			WhatStoodOut:    session.Notes.WhatStoodOut,
			KeyIdeas:        session.Notes.KeyIdeas,
			QuestionsRaised: session.Notes.QuestionsRaised,
		},
	}
}

func fromRecord(record sessionRecord) domain.Session {
	return domain.Session{
		ID:        record.ID,
		BookID:    record.BookID,
		StartTime: record.StartTime,
		EndTime:   record.EndTime,
		StartPage: record.StartPage,
		EndPage:   record.EndPage,
		Notes: domain.Notes{
			WhatStoodOut:    record.Notes.WhatStoodOut,
			KeyIdeas:        record.Notes.KeyIdeas,
			QuestionsRaised: record.Notes.QuestionsRaised,
		},
	}
}
