package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muthuvelan/orderdeskbackend/apperr"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "db.json"))
}

func TestFileStoreInsertAndRead(t *testing.T) {
	ctx := context.Background()
	fs := newTestStore(t)

	require.NoError(t, fs.CreateTable(ctx, "orders"))
	require.NoError(t, fs.InsertRow(ctx, "orders", Row{"order_id": "ORD-1", "status": "new_inquiry"}))
	require.NoError(t, fs.InsertRow(ctx, "orders", Row{"order_id": "ORD-2", "status": "confirmed"}))

	rows, err := fs.ReadTable(ctx, "orders")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ORD-1", rows[0]["order_id"])
}

func TestFileStoreUpdateRows(t *testing.T) {
	ctx := context.Background()
	fs := newTestStore(t)

	require.NoError(t, fs.InsertRow(ctx, "orders", Row{"order_id": "ORD-1", "status": "new_inquiry", "total_amount": 0}))
	require.NoError(t, fs.InsertRow(ctx, "orders", Row{"order_id": "ORD-2", "status": "new_inquiry"}))

	n, err := fs.UpdateRows(ctx, "orders", Row{"order_id": "ORD-1"}, Row{"status": "waiting_approval", "total_amount": 25.0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := fs.ReadTable(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, "waiting_approval", rows[0]["status"])
	assert.Equal(t, 25.0, rows[0]["total_amount"])
	// Untouched fields survive the patch merge.
	assert.Equal(t, "ORD-1", rows[0]["order_id"])
	assert.Equal(t, "new_inquiry", rows[1]["status"])
}

func TestFileStoreUpdateMissingTable(t *testing.T) {
	fs := newTestStore(t)
	_, err := fs.UpdateRows(context.Background(), "nope", Row{"id": "x"}, Row{"a": 1})
	assert.ErrorIs(t, err, apperr.ErrTableNotFound)
}

func TestFileStoreDeleteRows(t *testing.T) {
	ctx := context.Background()
	fs := newTestStore(t)

	require.NoError(t, fs.InsertRow(ctx, "orders", Row{"order_id": "ORD-1", "status": "new_inquiry"}))
	require.NoError(t, fs.InsertRow(ctx, "orders", Row{"order_id": "ORD-2", "status": "new_inquiry"}))
	require.NoError(t, fs.InsertRow(ctx, "orders", Row{"order_id": "ORD-3", "status": "closed"}))

	n, err := fs.DeleteRows(ctx, "orders", Row{"status": "new_inquiry"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	rows, err := fs.ReadTable(ctx, "orders")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ORD-3", rows[0]["order_id"])
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")

	fs := NewFileStore(path)
	require.NoError(t, fs.InsertRow(ctx, "orders", Row{"order_id": "ORD-1", "total_amount": 25.5}))

	reopened := NewFileStore(path)
	rows, err := reopened.ReadTable(ctx, "orders")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ORD-1", rows[0]["order_id"])
	assert.Equal(t, 25.5, rows[0]["total_amount"])
}

func TestFileStoreCorruptFileFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	fs := NewFileStore(path)
	rows, err := fs.ReadTable(context.Background(), "orders")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMatches(t *testing.T) {
	row := Row{"order_id": "ORD-1", "status": "confirmed", "rating": 5.0, "is_locked": true}

	assert.True(t, Matches(row, Row{}))
	assert.True(t, Matches(row, Row{"status": "confirmed"}))
	assert.True(t, Matches(row, Row{"order_id": "ORD-1", "is_locked": true}))
	// Numeric matching tolerates int-vs-float, the usual JSON round-trip skew.
	assert.True(t, Matches(row, Row{"rating": 5}))
	assert.False(t, Matches(row, Row{"status": "closed"}))
	assert.False(t, Matches(row, Row{"missing": "x"}))
}
