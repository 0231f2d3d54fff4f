package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gilboash/printlink/internal/model"
	"github.com/gilboash/printlink/internal/request"
	"github.com/gilboash/printlink/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	var aerr *model.AuthError

	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Reason,
			"field": verr.Field,
		})
	case errors.As(err, &aerr):
		respondError(w, http.StatusUnauthorized, aerr.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "request not found")
	default:
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "no identity")
		return
	}

	var form request.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := s.requests.Submit(r.Context(), form, identity.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Request submitted successfully",
		"id":      id,
	})
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "Missing request ID")
		return
	}

	req, err := s.requests.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, req)
}

func (s *Server) handleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "no identity")
		return
	}

	id := mux.Vars(r)["id"]
	var body struct {
		ExpectedStatus model.RequestStatus `json:"expected_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ExpectedStatus == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.requests.AdvanceStatus(r.Context(), id, identity.ID, body.ExpectedStatus); err != nil {
		s.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Status transition accepted",
	})
}

func (s *Server) handleSubmitOffer(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "no identity")
		return
	}

	id := mux.Vars(r)["id"]
	var body struct {
		Price   float64 `json:"price"`
		Message string  `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	offerID, err := s.offers.Submit(r.Context(), id, identity.ID, body.Price, body.Message)
	if err != nil {
		s.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Offer submitted successfully",
		"id":      offerID,
	})
}

func (s *Server) handleRequesterView(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "no identity")
		return
	}

	requests, err := s.views.RequesterSnapshot(r.Context(), identity.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (s *Server) handleMakerView(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "no identity")
		return
	}

	requests, err := s.views.MakerSnapshot(r.Context(), identity.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}
