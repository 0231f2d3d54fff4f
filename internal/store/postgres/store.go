package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/store"
)

// Store keeps documents in a single jsonb table. Change fan-out goes through
// an in-process broker, so subscriptions only observe mutations made by this
// process; cross-instance consumers follow the Kafka change feed instead.
type Store struct {
	db     DB
	broker *store.Broker
	log    *zap.Logger
	now    func() time.Time
}

func New(db DB, log *zap.Logger) *Store {
	return &Store{
		db:     db,
		broker: store.NewBroker(),
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type documentRow struct {
	ID         string    `db:"id"`
	Collection string    `db:"collection"`
	Data       []byte    `db:"data"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r documentRow) snapshot() (store.Snapshot, error) {
	var doc store.Document
	if err := json.Unmarshal(r.Data, &doc); err != nil {
		return store.Snapshot{}, fmt.Errorf("failed to decode document %s/%s: %w", r.Collection, r.ID, err)
	}
	return store.Snapshot{
		ID:         r.ID,
		Collection: r.Collection,
		Path:       store.DocPath(r.Collection, r.ID),
		Data:       doc,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

func (s *Store) Create(ctx context.Context, collection string, doc store.Document) (string, error) {
	id := uuid.NewString()
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	now := s.now()
	_, err = s.db.Exec(ctx, `
        INSERT INTO documents (collection, id, data, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $4)
    `, collection, id, data, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	s.publish(ctx, store.EventCreated, collection, id)
	return id, nil
}

func (s *Store) Update(ctx context.Context, path string, fields store.Document) error {
	collection, id, ok := store.SplitPath(path)
	if !ok {
		return store.ErrNotFound
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode fields: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
        UPDATE documents
        SET data = data || $3::jsonb, updated_at = $4
        WHERE collection = $1 AND id = $2
    `, collection, id, data, s.now())
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	s.publish(ctx, store.EventUpdated, collection, id)
	return nil
}

func (s *Store) UpdateIf(ctx context.Context, path string, fields store.Document, field, expected string) (bool, error) {
	collection, id, ok := store.SplitPath(path)
	if !ok {
		return false, store.ErrNotFound
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return false, fmt.Errorf("failed to encode fields: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
        UPDATE documents
        SET data = data || $3::jsonb, updated_at = $4
        WHERE collection = $1 AND id = $2 AND data->>$5 = $6
    `, collection, id, data, s.now(), field, expected)
	if err != nil {
		return false, fmt.Errorf("failed to update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a stale expectation from a missing document.
		if _, err := s.Get(ctx, path); err != nil {
			return false, err
		}
		return false, nil
	}

	s.publish(ctx, store.EventUpdated, collection, id)
	return true, nil
}

func (s *Store) Get(ctx context.Context, path string) (store.Snapshot, error) {
	collection, id, ok := store.SplitPath(path)
	if !ok {
		return store.Snapshot{}, store.ErrNotFound
	}

	var row documentRow
	err := s.db.Get(ctx, &row, `
        SELECT collection, id, data, created_at, updated_at
        FROM documents
        WHERE collection = $1 AND id = $2
    `, collection, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Snapshot{}, store.ErrNotFound
		}
		return store.Snapshot{}, fmt.Errorf("failed to get document: %w", err)
	}
	return row.snapshot()
}

func (s *Store) Query(ctx context.Context, q store.Query) ([]store.Snapshot, error) {
	query := `
        SELECT collection, id, data, created_at, updated_at
        FROM documents
        WHERE collection = $1
    `
	args := []interface{}{q.Collection}
	if q.Field != "" {
		query += " AND data->>$2 = $3"
		args = append(args, q.Field, q.Value)
	}

	var rows []documentRow
	if err := s.db.Select(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}

	snaps := make([]store.Snapshot, 0, len(rows))
	for _, row := range rows {
		snap, err := row.snapshot()
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func (s *Store) Subscribe(ctx context.Context, q store.Query, fn func([]store.Snapshot)) (func(), error) {
	cancel := s.broker.Subscribe(q.Collection, func() {
		snaps, err := s.Query(ctx, q)
		if err != nil {
			s.log.Warn("subscription refresh failed", zap.String("collection", q.Collection), zap.Error(err))
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

func (s *Store) Watch(fn func(store.Event)) func() {
	return s.broker.Watch(fn)
}

func (s *Store) publish(ctx context.Context, typ store.EventType, collection, id string) {
	snap, err := s.Get(ctx, store.DocPath(collection, id))
	if err != nil {
		s.log.Warn("failed to load snapshot for change event",
			zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		return
	}
	s.broker.Publish(store.Event{
		Type:       typ,
		Collection: collection,
		Path:       snap.Path,
		ID:         id,
		Snapshot:   snap,
	})
}
