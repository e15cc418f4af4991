package realtime

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFilter = errors.New("invalid_filter")

// filter is a single-column equality check parsed from "column=eq.value".
type filter struct {
	column string
	value  string
}

func parseFilter(expr string) (*filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	column, rest, ok := strings.Cut(expr, "=")
	if !ok || column == "" {
		return nil, ErrInvalidFilter
	}
	value, ok := strings.CutPrefix(rest, "eq.")
	if !ok {
		return nil, ErrInvalidFilter
	}

	return &filter{column: column, value: value}, nil
}

// matches reports whether the row's column equals the filter value. Row values
// are compared through their canonical string form so numeric and string
// identifiers filter alike.
func (f *filter) matches(row map[string]any) bool {
	v, ok := row[f.column]
	if !ok {
		return false
	}
	return fmt.Sprintf("%v", v) == f.value
}
