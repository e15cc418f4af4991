package query

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
)

// ErrNoRows is returned by Single when the query matches nothing. It is the
// only error shape reads produce; empty result sets are not errors elsewhere.
var ErrNoRows = errors.New("no_rows")

type predicate struct {
	column string
	values []any
}

// Builder accumulates a query. Filter predicates compose conjunctively; each
// call narrows the working set.
type Builder struct {
	store Datastore
	table string

	selects  string
	preds    []predicate
	orderBy  string
	orderAsc bool
	ordered  bool
	limit    int
	limited  bool

	updatePartial store.Row
}

// Select records the column spec. Join syntax ("alias:table(*)") is resolved
// at execution time; plain column lists pass rows through whole, matching the
// emulated client's select("*") behavior.
func (b *Builder) Select(columns string) *Builder {
	b.selects = columns
	return b
}

// Eq keeps rows whose column equals value.
func (b *Builder) Eq(column string, value any) *Builder {
	b.preds = append(b.preds, predicate{column: column, values: []any{value}})
	return b
}

// In keeps rows whose column equals any of the given values.
func (b *Builder) In(column string, values ...any) *Builder {
	b.preds = append(b.preds, predicate{column: column, values: values})
	return b
}

// Order sorts by one column. The sort is stable: ties keep insertion order.
func (b *Builder) Order(column string, ascending bool) *Builder {
	b.orderBy = column
	b.orderAsc = ascending
	b.ordered = true
	return b
}

// Limit truncates the result after ordering.
func (b *Builder) Limit(n int) *Builder {
	b.limit = n
	b.limited = true
	return b
}

// Rows executes the query and returns every filtered, ordered and joined row.
// An empty result is not an error.
func (b *Builder) Rows() ([]store.Row, error) {
	rows := b.store.Rows(b.table)

	var filtered []store.Row
	for _, row := range rows {
		if b.matches(row) {
			filtered = append(filtered, row)
		}
	}

	if b.ordered {
		col := b.orderBy
		asc := b.orderAsc
		sort.SliceStable(filtered, func(i, j int) bool {
			less := compareValues(filtered[i][col], filtered[j][col]) < 0
			if asc {
				return less
			}
			return compareValues(filtered[i][col], filtered[j][col]) > 0
		})
	}

	if b.limited && b.limit >= 0 && len(filtered) > b.limit {
		filtered = filtered[:b.limit]
	}

	for _, row := range filtered {
		b.resolveJoins(row)
	}
	return filtered, nil
}

// Single returns the first match, or ErrNoRows when nothing matches.
func (b *Builder) Single() (store.Row, error) {
	rows, err := b.Rows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows[0], nil
}

// MaybeSingle returns the first match, or nil with no error when nothing
// matches.
func (b *Builder) MaybeSingle() (store.Row, error) {
	rows, err := b.Rows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Insert delegates each record to the store and returns the stored rows with
// generated fields populated.
func (b *Builder) Insert(rows ...store.Row) []store.Row {
	out := make([]store.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, b.store.Insert(b.table, row))
	}
	return out
}

// Update stages a partial update; combine with Eq to pick the target rows and
// finish with Exec.
func (b *Builder) Update(partial store.Row) *Builder {
	b.updatePartial = partial
	return b
}

// Exec applies a staged Update to every matching row and returns the first
// updated record, or ErrNoRows when nothing matched.
func (b *Builder) Exec() (store.Row, error) {
	if b.updatePartial == nil {
		return nil, errors.New("query: Exec without a staged update")
	}

	rows := b.store.Rows(b.table)
	var first store.Row
	for _, row := range rows {
		if !b.matches(row) {
			continue
		}
		id, _ := row["id"].(string)
		updated, ok := b.store.Update(b.table, id, b.updatePartial)
		if ok && first == nil {
			first = updated
		}
	}
	if first == nil {
		return nil, ErrNoRows
	}
	return first, nil
}

func (b *Builder) matches(row store.Row) bool {
	for _, p := range b.preds {
		got, ok := row[p.column]
		if !ok {
			return false
		}
		hit := false
		for _, want := range p.values {
			if valuesEqual(got, want) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// valuesEqual compares through canonical string form so callers can filter a
// JSON-decoded float against an int literal or a snowflake string id alike.
func valuesEqual(a, b any) bool {
	if a == b {
		return true
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// compareValues orders numbers numerically, timestamps chronologically,
// strings lexically and everything else by string form. Mixed types fall back
// to string comparison.
func compareValues(a, b any) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	// RFC3339 strings must not sort lexically: a whole-second timestamp
	// compares after a fractional one in the same second ('Z' > '.').
	if at, aok := toTime(a); aok {
		if bt, bok := toTime(b); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}

	as := fmt.Sprintf("%v", a)
	bs := fmt.Sprintf("%v", b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func toTime(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
