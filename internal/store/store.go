// Package store is the single source of truth for all entity collections. It
// keeps insertion-ordered tables of loosely shaped rows, assigns identifiers
// and creation timestamps on insert, persists a snapshot after every mutation
// and publishes each change on the realtime bus.
package store

import (
	"sync"
	"time"

	"github.com/bodega1738/SubiclifeClone-sub000/internal/clock"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/realtime"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

// Row is a single record. Values hold JSON-compatible types so rows round-trip
// through the snapshot file and the query facade's codec unchanged.
type Row = map[string]any

// Table names owned by the store.
const (
	TableUsers         = "users"
	TablePartners      = "partners"
	TableBookings      = "bookings"
	TableCounterOffers = "counter_offers"
	TableNotifications = "notifications"
)

// Session is the active merchant session descriptor, persisted alongside the
// record collections.
type Session struct {
	PartnerID  string    `json:"partner_id"`
	SignedInAt time.Time `json:"signed_in_at"`
}

type table struct {
	rows  []Row
	index map[string]int
}

func newTable() *table {
	return &table{index: make(map[string]int)}
}

// Store owns all entity collections. It is constructed explicitly and handed
// to collaborators by injection; there is no package-level instance.
type Store struct {
	mu      sync.Mutex
	tables  map[string]*table
	session *Session

	bus   *realtime.Bus
	clock clock.Clock
	genID *snowflake.Node
	log   *zap.Logger

	snapshotPath string

	// opMu serializes writers. Every public mutation holds it, and an open
	// unit of work holds it from backup to commit or rollback, so no
	// unrelated write can ever land inside a transaction's restore window.
	opMu sync.Mutex
}

// Params configures a Store.
type Params struct {
	Bus          *realtime.Bus
	Clock        clock.Clock
	GenID        *snowflake.Node
	Log          *zap.Logger
	SnapshotPath string
}

// New creates an empty store and rehydrates it from the snapshot file when one
// exists. An empty snapshot path disables persistence.
func New(p Params) (*Store, error) {
	s := &Store{
		tables:       make(map[string]*table),
		bus:          p.Bus,
		clock:        p.Clock,
		genID:        p.GenID,
		log:          p.Log.Named("store"),
		snapshotPath: p.SnapshotPath,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Insert appends a record, assigning "id" and "created_at" when absent, and
// returns the stored row. It never fails; no uniqueness constraints exist.
// The write blocks while a unit of work is open.
func (s *Store) Insert(tableName string, row Row) Row {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	out := s.insert(tableName, row)
	s.bus.Publish(tableName, realtime.EventInsert, out)
	s.persist()
	return out
}

// Update merges partial fields into the record with the given id and returns
// the post-merge row. A missing id is a silent no-op with no event, matching
// the remote client it emulates. The write blocks while a unit of work is
// open.
func (s *Store) Update(tableName, id string, partial Row) (Row, bool) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	out, ok := s.update(tableName, id, partial)
	if !ok {
		return nil, false
	}
	s.bus.Publish(tableName, realtime.EventUpdate, out)
	s.persist()
	return out, true
}

// insert mutates the table under mu. Event publication and persistence are
// the caller's responsibility: Insert handles them directly, a Tx defers them
// to commit.
func (s *Store) insert(tableName string, row Row) Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneRow(row)
	if _, ok := stored["id"]; !ok {
		stored["id"] = s.genID.Generate().String()
	}
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = s.clock.Now().Format(time.RFC3339Nano)
	}

	t := s.table(tableName)
	id, _ := stored["id"].(string)
	t.index[id] = len(t.rows)
	t.rows = append(t.rows, stored)
	return cloneRow(stored)
}

// update mutates the table under mu, cloning merged values so the caller's
// partial can never alias live store state.
func (s *Store) update(tableName, id string, partial Row) (Row, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(tableName)
	pos, ok := t.index[id]
	if !ok {
		return nil, false
	}
	for k, v := range partial {
		if k == "id" {
			continue
		}
		t.rows[pos][k] = cloneValue(v)
	}
	return cloneRow(t.rows[pos]), true
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(tableName, id string) (Row, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.table(tableName)
	pos, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return cloneRow(t.rows[pos]), true
}

// Rows returns copies of all records in insertion order.
func (s *Store) Rows(tableName string) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.table(tableName)
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = cloneRow(r)
	}
	return out
}

// SetSession records the active merchant session.
func (s *Store) SetSession(partnerID string) Session {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	sess := Session{PartnerID: partnerID, SignedInAt: s.clock.Now()}
	s.session = &sess
	s.mu.Unlock()

	s.persist()
	return sess
}

// Session returns the active merchant session, if any.
func (s *Store) Session() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// ClearSession drops the active merchant session.
func (s *Store) ClearSession() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	s.persist()
}

func (s *Store) table(name string) *table {
	t, ok := s.tables[name]
	if !ok {
		t = newTable()
		s.tables[name] = t
	}
	return t
}

// cloneRow deep-copies a row so callers and subscribers can never alias the
// store's backing maps through nested detail payloads.
func cloneRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = cloneValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = cloneValue(inner)
		}
		return out
	default:
		return v
	}
}
