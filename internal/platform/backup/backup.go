// Package backup snapshots every collection into a single JSON document
// and restores from one. Payloads are copied verbatim so a round trip
// preserves records the running binary does not know about yet.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"qurtas/internal/platform/clock"
	"qurtas/internal/platform/storage"
)

// Collections lists every collection a snapshot covers, in export order.
var Collections = []string{"books", "sessions", "goals", "settings"}

type snapshot struct {
	Books      json.RawMessage `json:"books,omitempty"`
	Sessions   json.RawMessage `json:"sessions,omitempty"`
	Goals      json.RawMessage `json:"goals,omitempty"`
	Settings   json.RawMessage `json:"settings,omitempty"`
	ExportDate time.Time       `json:"exportDate"`
}

type Manager struct {
	store storage.Store
	clock clock.Clock
}

func NewManager(store storage.Store, clk clock.Clock) *Manager {
	return &Manager{store: store, clock: clk}
}

// Export bundles all collections into one JSON document. Missing
// collections are omitted rather than written as empty.
func (m *Manager) Export(ctx context.Context) ([]byte, error) {
	snap := snapshot{ExportDate: m.clock.Now()}
	for _, collection := range Collections {
		payload, err := m.store.Read(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", collection, err)
		}
		if len(payload) == 0 {
			continue
		}
		if err := snap.set(collection, payload); err != nil {
			return nil, err
		}
	}
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return out, nil
}

// Import writes the snapshot's collections back to the store. Collections
// absent from the snapshot are left untouched.
func (m *Manager) Import(ctx context.Context, payload []byte) error {
	var snap snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	for _, collection := range Collections {
		raw := snap.get(collection)
		if len(raw) == 0 {
			continue
		}
		if err := m.store.Write(ctx, collection, raw); err != nil {
			return fmt.Errorf("write %s: %w", collection, err)
		}
	}
	return nil
}

func (s *snapshot) set(collection string, payload []byte) error {
	switch collection {
	case "books":
		s.Books = payload
	case "sessions":
		s.Sessions = payload
	case "goals":
		s.Goals = payload
	case "settings":
		s.Settings = payload
	default:
		return fmt.Errorf("unknown collection %q", collection)
	}
	return nil
}

func (s *snapshot) get(collection string) json.RawMessage {
	switch collection {
	case "books":
		return s.Books
	case "sessions":
		return s.Sessions
	case "goals":
		return s.Goals
	case "settings":
		return s.Settings
	}
	return nil
}
