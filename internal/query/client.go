// Package query exposes a chainable read/write interface over the record
// store that mimics a remote postgres-style client. Both the member and the
// merchant surfaces use it as their only data-access path, so neither ever
// touches the store's tables directly.
package query

import (
	"encoding/json"

	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
	"go.uber.org/fx"
)

// Datastore is the record surface the facade drives. Both the store itself
// and an open unit of work satisfy it, so lifecycle operations run the same
// queries inside and outside a transaction.
type Datastore interface {
	Insert(tableName string, row store.Row) store.Row
	Update(tableName, id string, partial store.Row) (store.Row, bool)
	Rows(tableName string) []store.Row
}

// Client builds queries against a record store.
type Client struct {
	store Datastore
}

// NewClient wraps the given datastore.
func NewClient(s Datastore) *Client {
	return &Client{store: s}
}

// From starts a query against the named table.
func (c *Client) From(tableName string) *Builder {
	return &Builder{store: c.store, table: tableName}
}

// Decode converts a row into a typed domain value through its JSON form.
func Decode(row store.Row, out any) error {
	raw, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// DecodeRows converts a row slice into a typed slice.
func DecodeRows[T any](rows []store.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var v T
		if err := Decode(row, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Encode converts a typed domain value into a row through its JSON form.
func Encode(v any) (store.Row, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var row store.Row
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return row, nil
}

// Module wires the query client over the record store.
var Module = fx.Module("query",
	fx.Provide(func(s *store.Store) *Client {
		return NewClient(s)
	}),
)
