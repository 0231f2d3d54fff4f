package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileStore persists the in-memory store to a JSON file after every
// mutation and reloads it on open. Good enough for a single process; the
// postgres backend is the durable option.
type FileStore struct {
	*MemoryStore
	path    string
	writeMu sync.Mutex
}

func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	fs := &FileStore{
		MemoryStore: NewMemoryStore(opts...),
		path:        path,
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) Create(ctx context.Context, collection string, doc Document) (string, error) {
	id, err := fs.MemoryStore.Create(ctx, collection, doc)
	if err != nil {
		return "", err
	}
	return id, fs.persist()
}

func (fs *FileStore) Update(ctx context.Context, path string, fields Document) error {
	if err := fs.MemoryStore.Update(ctx, path, fields); err != nil {
		return err
	}
	return fs.persist()
}

func (fs *FileStore) UpdateIf(ctx context.Context, path string, fields Document, field, expected string) (bool, error) {
	applied, err := fs.MemoryStore.UpdateIf(ctx, path, fields, field, expected)
	if err != nil || !applied {
		return applied, err
	}
	return true, fs.persist()
}

func (fs *FileStore) load() error {
	raw, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read store file: %w", err)
	}

	var state persistedState
	if err := json.Unmarshal(raw, &state); err != nil {
		return fmt.Errorf("failed to parse store file: %w", err)
	}
	fs.restoreState(state)
	return nil
}

func (fs *FileStore) persist() error {
	fs.writeMu.Lock()
	defer fs.writeMu.Unlock()

	raw, err := json.MarshalIndent(fs.exportState(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store state: %w", err)
	}
	if err := os.WriteFile(fs.path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}
