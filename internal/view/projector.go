package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/model"
	"github.com/gilboash/printlink/internal/offer"
	"github.com/gilboash/printlink/internal/request"
	"github.com/gilboash/printlink/internal/store"
)

// Projector builds the two role-specific read views, either as one-shot
// snapshots or as live watches backed by the view types above.
type Projector struct {
	store store.Store
	log   *zap.Logger
}

func NewProjector(st store.Store, log *zap.Logger) *Projector {
	return &Projector{store: st, log: log}
}

// RequesterSnapshot returns the requester's own requests, newest first, each
// with a one-shot read of its offers. Offers added after this read are only
// seen on the next refresh; that staleness window is part of the contract.
func (p *Projector) RequesterSnapshot(ctx context.Context, requesterID string) ([]model.RequestWithOffers, error) {
	snaps, err := p.store.Query(ctx, store.Query{
		Collection: request.Collection,
		Field:      "requester_id",
		Value:      requesterID,
	})
	if err != nil {
		return nil, &model.PersistenceError{Op: "query requests", Err: err}
	}

	reqs := decodeRequests(snaps, p.log)
	sortRequestsNewestFirst(reqs)

	projected := make([]model.RequestWithOffers, 0, len(reqs))
	for _, req := range reqs {
		offerSnaps, err := p.store.Query(ctx, store.Query{Collection: offer.CollectionFor(req.ID)})
		if err != nil {
			return nil, &model.PersistenceError{Op: "query offers", Err: err}
		}
		offers := decodeOffers(offerSnaps, p.log)
		sortOffersOldestFirst(offers)
		projected = append(projected, model.RequestWithOffers{PrintRequest: req, Offers: offers})
	}
	return projected, nil
}

// MakerSnapshot returns the open queue for a maker: Pending requests from
// other requesters, oldest first.
func (p *Projector) MakerSnapshot(ctx context.Context, makerID string) ([]model.PrintRequest, error) {
	snaps, err := p.store.Query(ctx, store.Query{
		Collection: request.Collection,
		Field:      "status",
		Value:      string(model.StatusPending),
	})
	if err != nil {
		return nil, &model.PersistenceError{Op: "query requests", Err: err}
	}

	decoded := decodeRequests(snaps, p.log)
	reqs := decoded[:0]
	for _, req := range decoded {
		if req.RequesterID != makerID {
			reqs = append(reqs, req)
		}
	}
	sortRequestsOldestFirst(reqs)
	return reqs, nil
}

// WatchRequester starts a live requester view. The returned func tears it
// down and is safe to call more than once.
func (p *Projector) WatchRequester(ctx context.Context, requesterID string, fn func([]model.RequestWithOffers)) (func(), error) {
	v := NewRequesterView(p.store, requesterID, p.log)
	if err := v.Start(ctx, fn); err != nil {
		return nil, err
	}
	return v.Close, nil
}

// WatchMaker starts a live maker view.
func (p *Projector) WatchMaker(ctx context.Context, makerID string, fn func([]model.PrintRequest)) (func(), error) {
	v := NewMakerView(p.store, makerID, p.log)
	if err := v.Start(ctx, fn); err != nil {
		return nil, err
	}
	return v.Close, nil
}
