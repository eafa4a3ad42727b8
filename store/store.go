// Package store is the persistence collaborator of the lifecycle
// controllers: a table of flat rows with create/insert/read/update/delete.
// Two drivers exist, a flat JSON document file and MongoDB; both speak the
// same equality-predicate contract so the layers above never know which
// one is wired in.
package store

import "context"

// Row is one flattened record. Values round-trip through JSON, so numbers
// read back as float64 and booleans as bool.
type Row = map[string]any

type Store interface {
	CreateTable(ctx context.Context, table string) error
	ReadTable(ctx context.Context, table string) ([]Row, error)
	InsertRow(ctx context.Context, table string, row Row) error
	// UpdateRows merges patch into every row matching the equality
	// predicate and reports how many matched.
	UpdateRows(ctx context.Context, table string, where Row, patch Row) (int64, error)
	DeleteRows(ctx context.Context, table string, where Row) (int64, error)
}

// Matches reports whether every predicate field equals the row's field.
// Numeric values are compared as float64 regardless of how the caller
// typed them.
func Matches(row Row, where Row) bool {
	for k, want := range where {
		if !looseEqual(row[k], want) {
			return false
		}
	}
	return true
}

func looseEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
