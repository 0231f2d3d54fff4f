package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("not found")

// Document is the schemaless payload of a stored record.
type Document map[string]any

// Snapshot is a read view of a single document. Data is a private copy;
// mutating it does not touch the store.
type Snapshot struct {
	ID         string
	Collection string
	Path       string
	Data       Document
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DataTo unmarshals the document payload into dst via its json tags.
func (s Snapshot) DataTo(dst any) error {
	raw, err := json.Marshal(s.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// Query scopes a read to one collection with at most one equality filter.
// An empty Field means no filter. Results carry no ordering guarantee;
// callers sort.
type Query struct {
	Collection string
	Field      string
	Value      string
}

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
)

// Event describes a single document mutation.
type Event struct {
	Type       EventType
	Collection string
	Path       string
	ID         string
	Snapshot   Snapshot
}

// Store is the document store capability injected into every component that
// persists or observes state. Collections are slash-separated namespaces;
// offers live under requests/{id}/offers. Create assigns the id and the
// server timestamps.
type Store interface {
	Create(ctx context.Context, collection string, doc Document) (string, error)
	Update(ctx context.Context, path string, fields Document) error

	// UpdateIf applies fields only when the named document field still
	// equals expected. It reports whether the update was applied; a stale
	// expectation is not an error.
	UpdateIf(ctx context.Context, path string, fields Document, field, expected string) (bool, error)

	Get(ctx context.Context, path string) (Snapshot, error)
	Query(ctx context.Context, q Query) ([]Snapshot, error)

	// Subscribe delivers the current result set immediately and again after
	// every change to the collection. The returned func releases the
	// subscription; it is safe to call more than once and no callback runs
	// after it returns.
	Subscribe(ctx context.Context, q Query, fn func([]Snapshot)) (func(), error)

	// Watch observes every mutation across all collections.
	Watch(fn func(Event)) func()
}

// DocPath joins a collection and an id into a document path.
func DocPath(collection, id string) string {
	return collection + "/" + id
}

// SplitPath splits a document path into its collection and id. The id is the
// final segment; everything before it is the collection.
func SplitPath(path string) (collection, id string, ok bool) {
	i := strings.LastIndex(path, "/")
	if i <= 0 || i == len(path)-1 {
		return "", "", false
	}
	return path[:i], path[i+1:], true
}

// ToDocument converts a struct into a Document via its json tags.
func ToDocument(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
