package view

import (
	"sort"

	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/model"
	"github.com/gilboash/printlink/internal/offer"
	"github.com/gilboash/printlink/internal/request"
	"github.com/gilboash/printlink/internal/store"
)

// Stable sorts keep equal-timestamp entries in a deterministic order within
// a single snapshot.

func sortRequestsNewestFirst(reqs []model.PrintRequest) {
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
}

func sortRequestsOldestFirst(reqs []model.PrintRequest) {
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt.Before(reqs[j].CreatedAt)
	})
}

func sortOffersOldestFirst(offers []model.Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].CreatedAt.Before(offers[j].CreatedAt)
	})
}

func decodeRequests(snaps []store.Snapshot, log *zap.Logger) []model.PrintRequest {
	reqs := make([]model.PrintRequest, 0, len(snaps))
	for _, snap := range snaps {
		req, err := request.FromSnapshot(snap)
		if err != nil {
			log.Warn("skipping undecodable request", zap.String("id", snap.ID), zap.Error(err))
			continue
		}
		reqs = append(reqs, req)
	}
	return reqs
}

func decodeOffers(snaps []store.Snapshot, log *zap.Logger) []model.Offer {
	offers := make([]model.Offer, 0, len(snaps))
	for _, snap := range snaps {
		off, err := offer.FromSnapshot(snap)
		if err != nil {
			log.Warn("skipping undecodable offer", zap.String("id", snap.ID), zap.Error(err))
			continue
		}
		offers = append(offers, off)
	}
	return offers
}
