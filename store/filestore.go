package store

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/muthuvelan/orderdeskbackend/apperr"
)

// FileStore keeps every table in a single JSON document on disk,
// {"orders": [...], "products": [...]}. A read failure falls back to an
// empty document; a write failure is logged and surfaced, and the in-memory
// state may run ahead of disk until the next successful write. The mutex
// enforces the single-writer model: no two operations interleave.
type FileStore struct {
	path string

	mu sync.Mutex
	db map[string][]Row
}

func NewFileStore(path string) *FileStore {
	fs := &FileStore{path: path}
	fs.db = fs.load()
	return fs
}

func (fs *FileStore) load() map[string][]Row {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("filestore: error reading %s: %v", fs.path, err)
		}
		return map[string][]Row{"orders": {}}
	}
	db := make(map[string][]Row)
	if err := json.Unmarshal(data, &db); err != nil {
		log.Printf("filestore: error parsing %s: %v", fs.path, err)
		return map[string][]Row{"orders": {}}
	}
	return db
}

func (fs *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		log.Printf("filestore: error creating dir for %s: %v", fs.path, err)
		return err
	}
	data, err := json.MarshalIndent(fs.db, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(fs.path, data, 0o644); err != nil {
		log.Printf("filestore: error saving %s: %v", fs.path, err)
		return err
	}
	return nil
}

func (fs *FileStore) CreateTable(_ context.Context, table string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.db[table]; !ok {
		fs.db[table] = []Row{}
	}
	if err := fs.save(); err != nil {
		return apperr.Persistence("create-table", table, err)
	}
	return nil
}

func (fs *FileStore) ReadTable(_ context.Context, table string) ([]Row, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	rows := fs.db[table]
	out := make([]Row, len(rows))
	copy(out, rows)
	return out, nil
}

func (fs *FileStore) InsertRow(_ context.Context, table string, row Row) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.db[table] = append(fs.db[table], row)
	if err := fs.save(); err != nil {
		return apperr.Persistence("insert", table, err)
	}
	return nil
}

func (fs *FileStore) UpdateRows(_ context.Context, table string, where Row, patch Row) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	rows, ok := fs.db[table]
	if !ok {
		return 0, apperr.ErrTableNotFound
	}

	var updated int64
	for i, row := range rows {
		if !Matches(row, where) {
			continue
		}
		merged := make(Row, len(row)+len(patch))
		for k, v := range row {
			merged[k] = v
		}
		for k, v := range patch {
			merged[k] = v
		}
		rows[i] = merged
		updated++
	}
	if updated > 0 {
		if err := fs.save(); err != nil {
			return updated, apperr.Persistence("update", table, err)
		}
	}
	return updated, nil
}

func (fs *FileStore) DeleteRows(_ context.Context, table string, where Row) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	rows, ok := fs.db[table]
	if !ok {
		return 0, apperr.ErrTableNotFound
	}

	kept := rows[:0]
	var deleted int64
	for _, row := range rows {
		if Matches(row, where) {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	fs.db[table] = kept
	if deleted > 0 {
		if err := fs.save(); err != nil {
			return deleted, apperr.Persistence("delete", table, err)
		}
	}
	return deleted, nil
}
