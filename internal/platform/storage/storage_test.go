package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"qurtas/internal/platform/storage"
)

func TestFileStoreMissingCollection(t *testing.T) {
	t.Parallel()
	store := storage.NewFileStore(t.TempDir())
	payload, err := store.Read(context.Background(), "books")
	if err != nil {
		t.Fatalf("missing collection should not error: %v", err)
	}
	if payload != nil {
		t.Fatalf("missing collection should read as nil, got %q", payload)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := storage.NewFileStore(dir)
	ctx := context.Background()

	if err := store.Write(ctx, "books", []byte(`[{"id":"b-1"}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	payload, err := store.Read(ctx, "books")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(payload) != `[{"id":"b-1"}]` {
		t.Fatalf("unexpected payload: %s", payload)
	}

	// A write replaces the whole collection document.
	if err := store.Write(ctx, "books", []byte(`[]`)); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	payload, err = store.Read(ctx, "books")
	if err != nil {
		t.Fatalf("read after rewrite: %v", err)
	}
	if string(payload) != `[]` {
		t.Fatalf("rewrite should replace the payload, got %s", payload)
	}

	if _, err := os.Stat(filepath.Join(dir, "books.json")); err != nil {
		t.Fatalf("collection file should exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "books.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file should not remain after write")
	}
}

func TestMemStoreCopiesPayloads(t *testing.T) {
	t.Parallel()
	store := storage.NewMemStore()
	ctx := context.Background()

	original := []byte(`{"theme":"dark"}`)
	if err := store.Write(ctx, "settings", original); err != nil {
		t.Fatalf("write: %v", err)
	}
	original[2] = 'X'

	payload, err := store.Read(ctx, "settings")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(payload) != `{"theme":"dark"}` {
		t.Fatalf("store should keep its own copy, got %s", payload)
	}

	payload[2] = 'Y'
	again, err := store.Read(ctx, "settings")
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if string(again) != `{"theme":"dark"}` {
		t.Fatalf("reads should not share backing arrays, got %s", again)
	}
}
