package request

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/metrics"
	"github.com/gilboash/printlink/internal/model"
	"github.com/gilboash/printlink/internal/store"
)

// Collection is the top-level request namespace in the document store.
const Collection = "requests"

type requestDoc struct {
	RequesterID    string               `json:"requester_id"`
	Title          string               `json:"title"`
	Material       string               `json:"material"`
	Quantity       int                  `json:"quantity"`
	UrgencyDays    int                  `json:"urgency_days"`
	Description    string               `json:"description,omitempty"`
	PriceRange     model.PriceRange     `json:"price_range"`
	Colors         []string             `json:"colors"`
	Model          model.ModelSource    `json:"model"`
	Shipping       model.ShippingOption `json:"shipping_option"`
	PickupLocation string               `json:"pickup_location,omitempty"`
	Status         model.RequestStatus  `json:"status"`
	MakerID        string               `json:"maker_id,omitempty"`
}

// FromSnapshot decodes a stored request document.
func FromSnapshot(snap store.Snapshot) (model.PrintRequest, error) {
	var doc requestDoc
	if err := snap.DataTo(&doc); err != nil {
		return model.PrintRequest{}, fmt.Errorf("failed to decode request %s: %w", snap.ID, err)
	}
	return model.PrintRequest{
		ID:             snap.ID,
		RequesterID:    doc.RequesterID,
		Title:          doc.Title,
		Material:       doc.Material,
		Quantity:       doc.Quantity,
		UrgencyDays:    doc.UrgencyDays,
		Description:    doc.Description,
		PriceRange:     doc.PriceRange,
		Colors:         doc.Colors,
		Model:          doc.Model,
		Shipping:       doc.Shipping,
		PickupLocation: doc.PickupLocation,
		Status:         doc.Status,
		MakerID:        doc.MakerID,
		CreatedAt:      snap.CreatedAt,
		UpdatedAt:      snap.UpdatedAt,
	}, nil
}

// Service is the request lifecycle manager.
type Service struct {
	store store.Store
	log   *zap.Logger
}

func NewService(st store.Store, log *zap.Logger) *Service {
	return &Service{store: st, log: log}
}

// Submit validates the form against the field schema and persists a new
// Pending request. On validation failure nothing is written.
func (s *Service) Submit(ctx context.Context, form Form, requesterID string) (string, error) {
	if requesterID == "" {
		return "", &model.AuthError{Reason: "requester identity required"}
	}
	if err := ValidateForm(form); err != nil {
		return "", err
	}

	doc, err := store.ToDocument(requestDoc{
		RequesterID:    requesterID,
		Title:          form.Title,
		Material:       form.Material,
		Quantity:       form.Quantity,
		UrgencyDays:    form.UrgencyDays,
		Description:    form.Description,
		PriceRange:     form.PriceRange,
		Colors:         form.Colors,
		Model:          form.Model,
		Shipping:       form.Shipping,
		PickupLocation: form.PickupLocation,
		Status:         model.StatusPending,
	})
	if err != nil {
		return "", &model.PersistenceError{Op: "encode request", Err: err}
	}

	id, err := s.store.Create(ctx, Collection, doc)
	if err != nil {
		return "", &model.PersistenceError{Op: "create request", Err: err}
	}

	metrics.RequestsCreatedTotal.Inc()
	s.log.Info("request submitted",
		zap.String("request_id", id),
		zap.String("requester_id", requesterID))
	return id, nil
}

// Forward-only edges of the status state machine. Complete is terminal.
var transitions = map[model.RequestStatus]model.RequestStatus{
	model.StatusPending:    model.StatusInProgress,
	model.StatusInProgress: model.StatusComplete,
}

// AdvanceStatus moves a request one step forward from its expected current
// status. The write is conditional on the status still matching, so a lost
// race is a silent no-op and a concurrent claim can never overwrite MakerID.
// MakerID is set only on the Pending -> InProgress edge.
func (s *Service) AdvanceStatus(ctx context.Context, id, makerID string, expected model.RequestStatus) error {
	next, ok := transitions[expected]
	if !ok {
		return nil
	}

	fields := store.Document{"status": string(next)}
	if expected == model.StatusPending {
		fields["maker_id"] = makerID
	}

	applied, err := s.store.UpdateIf(ctx, store.DocPath(Collection, id), fields, "status", string(expected))
	if err != nil {
		return &model.PersistenceError{Op: "advance status", Err: err}
	}
	if !applied {
		metrics.ClaimConflictsTotal.Inc()
		s.log.Debug("stale status transition ignored",
			zap.String("request_id", id),
			zap.String("maker_id", makerID),
			zap.String("expected", string(expected)))
		return nil
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(expected), string(next)).Inc()
	s.log.Info("request status advanced",
		zap.String("request_id", id),
		zap.String("from", string(expected)),
		zap.String("to", string(next)))
	return nil
}

// Get loads a single request by id.
func (s *Service) Get(ctx context.Context, id string) (*model.PrintRequest, error) {
	snap, err := s.store.Get(ctx, store.DocPath(Collection, id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, &model.PersistenceError{Op: "get request", Err: err}
	}
	req, err := FromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
