package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/model"
	"github.com/gilboash/printlink/internal/offer"
	"github.com/gilboash/printlink/internal/request"
	"github.com/gilboash/printlink/internal/store"
)

// RequesterView is the live projection of one requester's submissions,
// newest first, each annotated with its offers. It keeps a registry of one
// offer subscription per visible request, registered when the request enters
// the visible set and released when it leaves. A view is bound to one
// requester; changing the filter means closing it and starting a new one.
type RequesterView struct {
	store       store.Store
	requesterID string
	log         *zap.Logger
	onChange    func([]model.RequestWithOffers)

	mu         sync.Mutex
	closed     bool
	requests   []model.PrintRequest
	offers     map[string][]model.Offer
	offerSubs  map[string]func()
	cancelMain func()

	closeOnce sync.Once
}

func NewRequesterView(st store.Store, requesterID string, log *zap.Logger) *RequesterView {
	return &RequesterView{
		store:       st,
		requesterID: requesterID,
		log:         log,
		offers:      make(map[string][]model.Offer),
		offerSubs:   make(map[string]func()),
	}
}

// Start subscribes and delivers the first projection before returning.
func (v *RequesterView) Start(ctx context.Context, onChange func([]model.RequestWithOffers)) error {
	v.onChange = onChange

	cancel, err := v.store.Subscribe(ctx, store.Query{
		Collection: request.Collection,
		Field:      "requester_id",
		Value:      v.requesterID,
	}, func(snaps []store.Snapshot) {
		v.handleRequests(ctx, snaps)
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
	v.cancelMain = cancel
	v.mu.Unlock()
	return nil
}

func (v *RequesterView) handleRequests(ctx context.Context, snaps []store.Snapshot) {
	reqs := decodeRequests(snaps, v.log)
	sortRequestsNewestFirst(reqs)

	visible := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		visible[req.ID] = true
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.requests = reqs

	var removed []func()
	for id, cancel := range v.offerSubs {
		if !visible[id] {
			if cancel != nil {
				removed = append(removed, cancel)
			}
			delete(v.offerSubs, id)
			delete(v.offers, id)
		}
	}

	var added []string
	for _, req := range reqs {
		if _, ok := v.offerSubs[req.ID]; !ok {
			v.offerSubs[req.ID] = nil // reserved; replaced once the subscription exists
			added = append(added, req.ID)
		}
	}
	v.mu.Unlock()

	for _, cancel := range removed {
		cancel()
	}

	for _, id := range added {
		requestID := id
		cancel, err := v.store.Subscribe(ctx, store.Query{
			Collection: offer.CollectionFor(requestID),
		}, func(snaps []store.Snapshot) {
			v.handleOffers(requestID, snaps)
		})
		if err != nil {
			v.log.Warn("failed to subscribe to offers", zap.String("request_id", requestID), zap.Error(err))
			continue
		}

		v.mu.Lock()
		if v.closed {
			v.mu.Unlock()
			cancel()
			continue
		}
		v.offerSubs[requestID] = cancel
		v.mu.Unlock()
	}

	v.emit()
}

func (v *RequesterView) handleOffers(requestID string, snaps []store.Snapshot) {
	offers := decodeOffers(snaps, v.log)
	sortOffersOldestFirst(offers)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	if _, tracked := v.offerSubs[requestID]; !tracked {
		v.mu.Unlock()
		return
	}
	v.offers[requestID] = offers
	v.mu.Unlock()

	v.emit()
}

func (v *RequesterView) emit() {
	v.mu.Lock()
	if v.closed || v.onChange == nil {
		v.mu.Unlock()
		return
	}
	projected := v.projectLocked()
	fn := v.onChange
	v.mu.Unlock()

	fn(projected)
}

// Snapshot returns the current projection.
func (v *RequesterView) Snapshot() []model.RequestWithOffers {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.projectLocked()
}

func (v *RequesterView) projectLocked() []model.RequestWithOffers {
	projected := make([]model.RequestWithOffers, len(v.requests))
	for i, req := range v.requests {
		offers := make([]model.Offer, len(v.offers[req.ID]))
		copy(offers, v.offers[req.ID])
		projected[i] = model.RequestWithOffers{PrintRequest: req, Offers: offers}
	}
	return projected
}

// Close releases every live subscription. Safe to call more than once; no
// projection callback fires after it returns.
func (v *RequesterView) Close() {
	v.closeOnce.Do(func() {
		v.mu.Lock()
		v.closed = true
		cancels := make([]func(), 0, len(v.offerSubs)+1)
		if v.cancelMain != nil {
			cancels = append(cancels, v.cancelMain)
		}
		for _, cancel := range v.offerSubs {
			if cancel != nil {
				cancels = append(cancels, cancel)
			}
		}
		v.offerSubs = make(map[string]func())
		v.mu.Unlock()

		for _, cancel := range cancels {
			cancel()
		}
	})
}
