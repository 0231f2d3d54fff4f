package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type record struct {
	doc       Document
	createdAt time.Time
	updatedAt time.Time
}

// MemoryStore is the in-process store backend: a mutex-guarded map of
// collections with change fan-out through a Broker. Reads hand out copies.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[string]*record
	broker *Broker
	now    func() time.Time
}

type Option func(*MemoryStore)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		data:   make(map[string]map[string]*record),
		broker: NewBroker(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, collection string, doc Document) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	coll, ok := s.data[collection]
	if !ok {
		coll = make(map[string]*record)
		s.data[collection] = coll
	}
	now := s.now()
	rec := &record{doc: cloneDoc(doc), createdAt: now, updatedAt: now}
	coll[id] = rec
	snap := s.snapshotLocked(collection, id, rec)
	s.mu.Unlock()

	s.broker.Publish(Event{
		Type:       EventCreated,
		Collection: collection,
		Path:       snap.Path,
		ID:         id,
		Snapshot:   snap,
	})
	return id, nil
}

func (s *MemoryStore) Update(_ context.Context, path string, fields Document) error {
	collection, id, ok := SplitPath(path)
	if !ok {
		return ErrNotFound
	}

	s.mu.Lock()
	rec, ok := s.data[collection][id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	mergeDoc(rec.doc, fields)
	rec.updatedAt = s.now()
	snap := s.snapshotLocked(collection, id, rec)
	s.mu.Unlock()

	s.broker.Publish(Event{
		Type:       EventUpdated,
		Collection: collection,
		Path:       path,
		ID:         id,
		Snapshot:   snap,
	})
	return nil
}

func (s *MemoryStore) UpdateIf(_ context.Context, path string, fields Document, field, expected string) (bool, error) {
	collection, id, ok := SplitPath(path)
	if !ok {
		return false, ErrNotFound
	}

	s.mu.Lock()
	rec, ok := s.data[collection][id]
	if !ok {
		s.mu.Unlock()
		return false, ErrNotFound
	}
	current, _ := rec.doc[field].(string)
	if current != expected {
		s.mu.Unlock()
		return false, nil
	}
	mergeDoc(rec.doc, fields)
	rec.updatedAt = s.now()
	snap := s.snapshotLocked(collection, id, rec)
	s.mu.Unlock()

	s.broker.Publish(Event{
		Type:       EventUpdated,
		Collection: collection,
		Path:       path,
		ID:         id,
		Snapshot:   snap,
	})
	return true, nil
}

func (s *MemoryStore) Get(_ context.Context, path string) (Snapshot, error) {
	collection, id, ok := SplitPath(path)
	if !ok {
		return Snapshot{}, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[collection][id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return s.snapshotLocked(collection, id, rec), nil
}

func (s *MemoryStore) Query(_ context.Context, q Query) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snaps []Snapshot
	for id, rec := range s.data[q.Collection] {
		if q.Field != "" {
			value, _ := rec.doc[q.Field].(string)
			if value != q.Value {
				continue
			}
		}
		snaps = append(snaps, s.snapshotLocked(q.Collection, id, rec))
	}
	return snaps, nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, q Query, fn func([]Snapshot)) (func(), error) {
	cancel := s.broker.Subscribe(q.Collection, func() {
		snaps, err := s.Query(ctx, q)
		if err != nil {
			return
		}
		fn(snaps)
	})

	initial, err := s.Query(ctx, q)
	if err != nil {
		cancel()
		return nil, err
	}
	fn(initial)
	return cancel, nil
}

func (s *MemoryStore) Watch(fn func(Event)) func() {
	return s.broker.Watch(fn)
}

func (s *MemoryStore) snapshotLocked(collection, id string, rec *record) Snapshot {
	return Snapshot{
		ID:         id,
		Collection: collection,
		Path:       DocPath(collection, id),
		Data:       cloneDoc(rec.doc),
		CreatedAt:  rec.createdAt,
		UpdatedAt:  rec.updatedAt,
	}
}

type persistedRecord struct {
	Data      Document  `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type persistedState struct {
	Collections map[string]map[string]persistedRecord `json:"collections"`
}

func (s *MemoryStore) exportState() persistedState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := persistedState{Collections: make(map[string]map[string]persistedRecord, len(s.data))}
	for collection, coll := range s.data {
		out := make(map[string]persistedRecord, len(coll))
		for id, rec := range coll {
			out[id] = persistedRecord{
				Data:      cloneDoc(rec.doc),
				CreatedAt: rec.createdAt,
				UpdatedAt: rec.updatedAt,
			}
		}
		state.Collections[collection] = out
	}
	return state
}

func (s *MemoryStore) restoreState(state persistedState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]map[string]*record, len(state.Collections))
	for collection, coll := range state.Collections {
		in := make(map[string]*record, len(coll))
		for id, rec := range coll {
			in[id] = &record{
				doc:       cloneDoc(rec.Data),
				createdAt: rec.CreatedAt,
				updatedAt: rec.UpdatedAt,
			}
		}
		s.data[collection] = in
	}
}

func cloneDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneDoc(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}

func mergeDoc(dst, fields Document) {
	for k, v := range fields {
		dst[k] = cloneValue(v)
	}
}
