package query

import (
	"strings"

	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
)

type joinSpec struct {
	alias string
	table string
}

// parseJoins extracts "alias:table(*)" entries from a select spec. Plain
// columns are ignored; the facade always returns whole rows.
func parseJoins(selects string) []joinSpec {
	var joins []joinSpec
	for _, part := range strings.Split(selects, ",") {
		part = strings.TrimSpace(part)
		alias, rest, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		tableName, _, ok := strings.Cut(rest, "(")
		if !ok {
			continue
		}
		joins = append(joins, joinSpec{alias: alias, table: strings.TrimSpace(tableName)})
	}
	return joins
}

// resolveJoins attaches at most one related record per alias. The foreign key
// is the conventional "<singular>_id" field: forward when the source row
// carries it ("partner_id" on a booking joining partners), reverse when the
// target rows point back at the source ("booking_id" on counter_offers).
// First match wins; an unrecognized table leaves the alias nil.
func (b *Builder) resolveJoins(row store.Row) {
	if b.selects == "" {
		return
	}
	for _, j := range parseJoins(b.selects) {
		row[j.alias] = b.resolveAlias(row, j.table)
	}
}

func (b *Builder) resolveAlias(row store.Row, targetTable string) any {
	// Forward: the source row holds "<singular(target)>_id".
	if fk, ok := row[singular(targetTable)+"_id"]; ok {
		for _, candidate := range b.store.Rows(targetTable) {
			if valuesEqual(candidate["id"], fk) {
				return candidate
			}
		}
		return nil
	}

	// Reverse: target rows hold "<singular(source)>_id" back at us.
	backRef := singular(b.table) + "_id"
	id, ok := row["id"]
	if !ok {
		return nil
	}
	for _, candidate := range b.store.Rows(targetTable) {
		if fk, ok := candidate[backRef]; ok && valuesEqual(fk, id) {
			return candidate
		}
	}
	return nil
}

func singular(tableName string) string {
	return strings.TrimSuffix(tableName, "s")
}
