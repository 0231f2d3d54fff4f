package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/model"
)

// The watch endpoints stream each projection update as one server-sent
// event. The subscription is released when the client goes away.

func (s *Server) handleRequesterWatch(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "no identity")
		return
	}

	s.stream(w, r, func(push func([]byte)) (func(), error) {
		return s.views.WatchRequester(r.Context(), identity.ID, func(list []model.RequestWithOffers) {
			payload, err := json.Marshal(list)
			if err != nil {
				s.log.Error("failed to marshal requester view", zap.Error(err))
				return
			}
			push(payload)
		})
	})
}

func (s *Server) handleMakerWatch(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "no identity")
		return
	}

	s.stream(w, r, func(push func([]byte)) (func(), error) {
		return s.views.WatchMaker(r.Context(), identity.ID, func(list []model.PrintRequest) {
			payload, err := json.Marshal(list)
			if err != nil {
				s.log.Error("failed to marshal maker view", zap.Error(err))
				return
			}
			push(payload)
		})
	})
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request, start func(push func([]byte)) (func(), error)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	updates := make(chan []byte, 8)
	push := func(payload []byte) {
		// Drop when the client is slow; the next update carries the full
		// projection anyway.
		select {
		case updates <- payload:
		default:
		}
	}

	cancel, err := start(push)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case payload := <-updates:
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
