package out

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"qurtas/internal/modules/library/domain"
	libraryout "qurtas/internal/modules/library/port/out"
	apperrors "qurtas/internal/platform/errors"
	"qurtas/internal/platform/storage"
)

const booksCollection = "books"

// bookRecord is the persisted shape of a book. Records are a serialization
// boundary concern only; everything above this adapter works with the typed
// entity.
type bookRecord struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Author        string            `json:"author"`
	TotalPages    int               `json:"totalPages"`
	CurrentPage   int               `json:"currentPage"`
	Status        string            `json:"status"`
	DateAdded     time.Time         `json:"dateAdded"`
	DateCompleted *time.Time        `json:"dateCompleted"`
	CoverURL      string            `json:"coverUrl,omitempty"`
	ISBN          string            `json:"isbn,omitempty"`
	Publisher     string            `json:"publisher,omitempty"`
	PublishedDate string            `json:"publishedDate,omitempty"`
	Description   string            `json:"description,omitempty"`
	Conclusion    *conclusionRecord `json:"conclusionNotes,omitempty"`
}

type conclusionRecord struct {
	Takeaway    string `json:"takeaway,omitempty"`
	Advice      string `json:"advice,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Gains       string `json:"gains,omitempty"`
	ReturnLater bool   `json:"returnLater,omitempty"`
}

type JSONBookStore struct {
	store storage.Store
}

func NewJSONBookStore(store storage.Store) libraryout.BookRepository {
	return &JSONBookStore{store: store}
}

func (s *JSONBookStore) GetAll(ctx context.Context, status domain.Status) ([]domain.Book, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Book, 0, len(records))
	for _, record := range records {
		book := fromRecord(record)
		if status != "" && book.Status != status {
			continue
		}
		out = append(out, book)
	}
	return out, nil
}

func (s *JSONBookStore) GetByID(ctx context.Context, id string) (domain.Book, error) {
	records, err := s.load(ctx)
	if err != nil {
		return domain.Book{}, err
	}
	for _, record := range records {
		if record.ID == id {
			return fromRecord(record), nil
		}
	}
	return domain.Book{}, apperrors.ErrNotFound
}

func (s *JSONBookStore) Save(ctx context.Context, book domain.Book) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	record := toRecord(book)
	replaced := false
	for i := range records {
		if records[i].ID == book.ID {
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

func (s *JSONBookStore) Delete(ctx context.Context, id string) (bool, error) {
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

func (s *JSONBookStore) load(ctx context.Context) ([]bookRecord, error) {
	payload, err := s.store.Read(ctx, booksCollection)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}
	var records []bookRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode books collection: %w", err)
	}
	return records, nil
}

func (s *JSONBookStore) persist(ctx context.Context, records []bookRecord) error {
	if records == nil {
		records = []bookRecord{}
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode books collection: %w", err)
	}
	return s.store.Write(ctx, booksCollection, payload)
}

func toRecord(book domain.Book) bookRecord {
	record := bookRecord{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		TotalPages:    book.TotalPages,
		CurrentPage:   book.CurrentPage,
		Status:        string(book.Status),
		DateAdded:     book.DateAdded,
		DateCompleted: book.DateCompleted,
		CoverURL:      book.CoverURL,
		ISBN:          book.ISBN,
		Publisher:     book.Publisher,
		PublishedDate: book.PublishedDate,
		Description:   book.Description,
	}
	if book.Conclusion != nil {
		record.Conclusion = &conclusionRecord{
			Takeaway:    book.Conclusion.Takeaway,
			Advice:      book.Conclusion.Advice,
			Reason:      book.Conclusion.Reason,
			Gains:       book.Conclusion.Gains,
			ReturnLater: book.Conclusion.ReturnLater,
		}
	}
	return record
}

func fromRecord(record bookRecord) domain.Book {
	book := domain.Book{
		ID:            record.ID,
		Title:         record.Title,
		Author:        record.Author,
		TotalPages:    record.TotalPages,
		CurrentPage:   record.CurrentPage,
		Status:        domain.Status(record.Status),
		DateAdded:     record.DateAdded,
		DateCompleted: record.DateCompleted,
		CoverURL:      record.CoverURL,
		ISBN:          record.ISBN,
		Publisher:     record.Publisher,
		PublishedDate: record.PublishedDate,
		Description:   record.Description,
	}
	if record.Conclusion != nil {
		book.Conclusion = &domain.ConclusionNotes{
			Takeaway:    record.Conclusion.Takeaway,
			Advice:      record.Conclusion.Advice,
			Reason:      record.Conclusion.Reason,
			Gains:       record.Conclusion.Gains,
			ReturnLater: record.Conclusion.ReturnLater,
		}
	}
	return book
}
