package offer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/metrics"
	"github.com/gilboash/printlink/internal/model"
	"github.com/gilboash/printlink/internal/request"
	"github.com/gilboash/printlink/internal/store"
)

// CollectionFor returns the offer sub-collection of a request.
func CollectionFor(requestID string) string {
	return request.Collection + "/" + requestID + "/offers"
}

type offerDoc struct {
	RequestID string  `json:"request_id"`
	MakerID   string  `json:"maker_id"`
	Price     float64 `json:"price"`
	Message   string  `json:"message,omitempty"`
}

// FromSnapshot decodes a stored offer document.
func FromSnapshot(snap store.Snapshot) (model.Offer, error) {
	var doc offerDoc
	if err := snap.DataTo(&doc); err != nil {
		return model.Offer{}, fmt.Errorf("failed to decode offer %s: %w", snap.ID, err)
	}
	return model.Offer{
		ID:        snap.ID,
		RequestID: doc.RequestID,
		MakerID:   doc.MakerID,
		Price:     doc.Price,
		Message:   doc.Message,
		CreatedAt: snap.CreatedAt,
	}, nil
}

type Service struct {
	store store.Store
	log   *zap.Logger
}

func NewService(st store.Store, log *zap.Logger) *Service {
	return &Service{store: st, log: log}
}

// Submit appends an immutable offer under the request. The parent request is
// never touched, and nothing deduplicates repeat offers from the same maker.
func (s *Service) Submit(ctx context.Context, requestID, makerID string, price float64, message string) (string, error) {
	if makerID == "" {
		return "", &model.AuthError{Reason: "maker identity required"}
	}
	if price <= 0 {
		return "", &model.ValidationError{Field: "price", Reason: "must be positive"}
	}

	doc, err := store.ToDocument(offerDoc{
		RequestID: requestID,
		MakerID:   makerID,
		Price:     price,
		Message:   message,
	})
	if err != nil {
		return "", &model.PersistenceError{Op: "encode offer", Err: err}
	}

	id, err := s.store.Create(ctx, CollectionFor(requestID), doc)
	if err != nil {
		return "", &model.PersistenceError{Op: "create offer", Err: err}
	}

	metrics.OffersSubmittedTotal.Inc()
	s.log.Info("offer submitted",
		zap.String("offer_id", id),
		zap.String("request_id", requestID),
		zap.String("maker_id", makerID))
	return id, nil
}
