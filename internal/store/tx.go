package store

import (
	"fmt"

	"github.com/bodega1738/SubiclifeClone-sub000/internal/realtime"
	"go.uber.org/zap"
)

type event struct {
	table string
	kind  realtime.Event
	row   Row
}

// Tx is the mutation handle inside a unit of work. Its writes land in the
// live tables as they happen, but the bus events and the snapshot write are
// held back until the unit of work commits.
type Tx struct {
	s      *Store
	events []event
}

// Insert appends a record through the open unit of work.
func (tx *Tx) Insert(tableName string, row Row) Row {
	out := tx.s.insert(tableName, row)
	tx.events = append(tx.events, event{table: tableName, kind: realtime.EventInsert, row: out})
	return out
}

// Update merges partial fields through the open unit of work.
func (tx *Tx) Update(tableName, id string, partial Row) (Row, bool) {
	out, ok := tx.s.update(tableName, id, partial)
	if !ok {
		return nil, false
	}
	tx.events = append(tx.events, event{table: tableName, kind: realtime.EventUpdate, row: out})
	return out, true
}

// Rows returns copies of all records in insertion order, including writes
// made earlier in the same unit of work.
func (tx *Tx) Rows(tableName string) []Row {
	return tx.s.Rows(tableName)
}

// Atomically runs fn as a unit of work. All mutations inside fn must go
// through the Tx handle; the store's own mutators block until the unit of
// work finishes, so a concurrent writer waits instead of landing inside the
// backup/restore window. Outbound bus events and the snapshot write are held
// back until fn returns. On error every table and the session descriptor are
// restored to their pre-transaction state and the held events are dropped, so
// a multi-record lifecycle operation can never leave the store partially
// applied.
//
// Units of work are serialized; nesting is not supported.
func (s *Store) Atomically(fn func(tx *Tx) error) (err error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	backup := s.backupLocked()
	s.mu.Unlock()

	tx := &Tx{s: s}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("store: unit of work panicked: %v", r)
		}

		if err != nil {
			s.mu.Lock()
			s.restoreLocked(backup)
			s.mu.Unlock()
			s.log.Warn("unit of work rolled back", zap.Error(err))
			return
		}
		for _, ev := range tx.events {
			s.bus.Publish(ev.table, ev.kind, ev.row)
		}
		s.persist()
	}()

	return fn(tx)
}

type storeBackup struct {
	tables  map[string]*table
	session *Session
}

func (s *Store) backupLocked() storeBackup {
	tables := make(map[string]*table, len(s.tables))
	for name, t := range s.tables {
		cp := newTable()
		cp.rows = make([]Row, len(t.rows))
		for i, r := range t.rows {
			cp.rows[i] = cloneRow(r)
		}
		for id, pos := range t.index {
			cp.index[id] = pos
		}
		tables[name] = cp
	}
	var sess *Session
	if s.session != nil {
		cp := *s.session
		sess = &cp
	}
	return storeBackup{tables: tables, session: sess}
}

func (s *Store) restoreLocked(b storeBackup) {
	s.tables = b.tables
	s.session = b.session
}
