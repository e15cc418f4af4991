package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/golang/snappy"
	"go.uber.org/zap"
)

// snapshot is the serialized form of the whole store: every collection plus
// the active merchant session descriptor, written as one snappy-compressed
// JSON document.
type snapshot struct {
	Tables  map[string][]Row `json:"tables"`
	Session *Session         `json:"session,omitempty"`
}

// persist writes the current state to the snapshot file. Persistence failures
// are logged, not propagated: the in-memory state stays authoritative and the
// next mutation retries the write.
func (s *Store) persist() {
	if s.snapshotPath == "" {
		return
	}

	s.mu.Lock()
	snap := snapshot{Tables: make(map[string][]Row, len(s.tables))}
	for name, t := range s.tables {
		rows := make([]Row, len(t.rows))
		for i, r := range t.rows {
			rows[i] = cloneRow(r)
		}
		snap.Tables[name] = rows
	}
	if s.session != nil {
		cp := *s.session
		snap.Session = &cp
	}
	s.mu.Unlock()

	raw, err := json.Marshal(snap)
	if err != nil {
		s.log.Error("marshal snapshot", zap.Error(err))
		return
	}

	tmp := s.snapshotPath + ".tmp"
	if err := os.WriteFile(tmp, snappy.Encode(nil, raw), 0o644); err != nil {
		s.log.Error("write snapshot", zap.Error(err))
		return
	}
	if err := os.Rename(tmp, s.snapshotPath); err != nil {
		s.log.Error("replace snapshot", zap.Error(err))
	}
}

// load rehydrates the store from the snapshot file. A missing file starts the
// store empty; a corrupt file is an error so a bad deploy fails loudly instead
// of silently wiping state.
func (s *Store) load() error {
	if s.snapshotPath == "" {
		return nil
	}

	compressed, err := os.ReadFile(s.snapshotPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return fmt.Errorf("decompress snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = make(map[string]*table, len(snap.Tables))
	for name, rows := range snap.Tables {
		t := newTable()
		for i, r := range rows {
			t.rows = append(t.rows, r)
			if id, ok := r["id"].(string); ok {
				t.index[id] = i
			}
		}
		s.tables[name] = t
	}
	s.session = snap.Session

	total := 0
	for _, t := range s.tables {
		total += len(t.rows)
	}
	s.log.Info("snapshot loaded",
		zap.Int("tables", len(s.tables)),
		zap.Int("records", total),
	)
	return nil
}
