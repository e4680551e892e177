package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"qurtas/internal/modules/library/domain"
	libraryout "qurtas/internal/modules/library/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteBookIndex is a derived view of the catalog kept for fast listing.
// The JSON collection remains the source of truth; the index is rebuilt on
// demand via Reset plus a full upsert pass.
type SQLiteBookIndex struct {
	db *sql.DB
}

func NewSQLiteBookIndex(dbPath string) (libraryout.BookIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteBookIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return index, nil
}

func (s *SQLiteBookIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS books (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  author TEXT NOT NULL,
  status TEXT NOT NULL,
  total_pages INTEGER NOT NULL,
  current_page INTEGER NOT NULL,
  progress INTEGER NOT NULL,
  date_added TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	return nil
}

func (s *SQLiteBookIndex) Upsert(ctx context.Context, book domain.Book) error {
	const stmt = `
INSERT INTO books (id, title, author, status, total_pages, current_page, progress, date_added)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  author=excluded.author,
  status=excluded.status,
  total_pages=excluded.total_pages,
  current_page=excluded.current_page,
  progress=excluded.progress,
  date_added=excluded.date_added;
`
	_, err := s.db.ExecContext(ctx, stmt,
		book.ID,
		book.Title,
		book.Author,
		string(book.Status),
		book.TotalPages,
		book.CurrentPage,
		book.Progress(),
		book.DateAdded.Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("upsert book: %w", err)
	}
	return nil
}

// List serves the filtered catalog listing straight from the index,
// newest first.
func (s *SQLiteBookIndex) List(ctx context.Context, status domain.Status) ([]domain.Book, error) {
	query := `SELECT id, title, author, status, total_pages, current_page, date_added FROM books`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY date_added DESC, id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list indexed books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var book domain.Book
		var bookStatus, added string
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &bookStatus, &book.TotalPages, &book.CurrentPage, &added); err != nil {
			return nil, fmt.Errorf("scan indexed book: %w", err)
		}
		book.Status = domain.Status(bookStatus)
		book.DateAdded, err = time.Parse("2006-01-02T15:04:05Z07:00", added)
		if err != nil {
			return nil, fmt.Errorf("parse indexed date: %w", err)
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (s *SQLiteBookIndex) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete book from index: %w", err)
	}
	return nil
}

func (s *SQLiteBookIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("reset book index: %w", err)
	}
	return nil
}
