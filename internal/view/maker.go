package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/model"
	"github.com/gilboash/printlink/internal/request"
	"github.com/gilboash/printlink/internal/store"
)

// MakerView is the live open-job queue for one maker: every Pending request
// except the maker's own, oldest first so earlier jobs get seen first.
type MakerView struct {
	store    store.Store
	makerID  string
	log      *zap.Logger
	onChange func([]model.PrintRequest)

	mu       sync.Mutex
	closed   bool
	requests []model.PrintRequest
	cancel   func()

	closeOnce sync.Once
}

func NewMakerView(st store.Store, makerID string, log *zap.Logger) *MakerView {
	return &MakerView{store: st, makerID: makerID, log: log}
}

func (v *MakerView) Start(ctx context.Context, onChange func([]model.PrintRequest)) error {
	v.onChange = onChange

	cancel, err := v.store.Subscribe(ctx, store.Query{
		Collection: request.Collection,
		Field:      "status",
		Value:      string(model.StatusPending),
	}, func(snaps []store.Snapshot) {
		v.handleRequests(snaps)
	})
	if err != nil {
		return err
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		cancel()
		return nil
	}
	v.cancel = cancel
	v.mu.Unlock()
	return nil
}

func (v *MakerView) handleRequests(snaps []store.Snapshot) {
	decoded := decodeRequests(snaps, v.log)

	// A requester never sees an offer control on their own job.
	reqs := decoded[:0]
	for _, req := range decoded {
		if req.RequesterID != v.makerID {
			reqs = append(reqs, req)
		}
	}
	sortRequestsOldestFirst(reqs)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.requests = reqs
	fn := v.onChange
	out := make([]model.PrintRequest, len(reqs))
	copy(out, reqs)
	v.mu.Unlock()

	if fn != nil {
		fn(out)
	}
}

// Snapshot returns the current queue.
func (v *MakerView) Snapshot() []model.PrintRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.PrintRequest, len(v.requests))
	copy(out, v.requests)
	return out
}

// Close releases the subscription; idempotent.
func (v *MakerView) Close() {
	v.closeOnce.Do(func() {
		v.mu.Lock()
		v.closed = true
		cancel := v.cancel
		v.mu.Unlock()

		if cancel != nil {
			cancel()
		}
	})
}
