//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mocks
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/model"
	"github.com/gilboash/printlink/internal/request"
)

type RequestService interface {
	Submit(ctx context.Context, form request.Form, requesterID string) (string, error)
	AdvanceStatus(ctx context.Context, id, makerID string, expected model.RequestStatus) error
	Get(ctx context.Context, id string) (*model.PrintRequest, error)
}

type OfferService interface {
	Submit(ctx context.Context, requestID, makerID string, price float64, message string) (string, error)
}

type Views interface {
	RequesterSnapshot(ctx context.Context, requesterID string) ([]model.RequestWithOffers, error)
	MakerSnapshot(ctx context.Context, makerID string) ([]model.PrintRequest, error)
	WatchRequester(ctx context.Context, requesterID string, fn func([]model.RequestWithOffers)) (func(), error)
	WatchMaker(ctx context.Context, makerID string, fn func([]model.PrintRequest)) (func(), error)
}

type IdentityProvider interface {
	Resolve(ctx context.Context, token, sessionKey string) (model.Identity, error)
}

type Server struct {
	requests RequestService
	offers   OfferService
	views    Views
	identity IdentityProvider
	log      *zap.Logger
	server   *http.Server
}

func New(requests RequestService, offers OfferService, views Views, identity IdentityProvider, log *zap.Logger) *Server {
	return &Server{
		requests: requests,
		offers:   offers,
		views:    views,
		identity: identity,
		log:      log,
	}
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port string) error {
	s.server = &http.Server{
		Addr:    ":" + port,
		Handler: s.setupRoutes(),
		// No write timeout: the watch endpoints hold their connection open.
		ReadTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()
	s.log.Info("http server listening", zap.String("port", port))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down http server")
		return s.server.Shutdown(shutdownCtx)
	}
}

func (s *Server) setupRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(s.identityMiddleware)

	api.HandleFunc("/requests", s.handleSubmitRequest).Methods(http.MethodPost)
	api.HandleFunc("/requests/mine", s.handleRequesterView).Methods(http.MethodGet)
	api.HandleFunc("/requests/mine/watch", s.handleRequesterWatch).Methods(http.MethodGet)
	api.HandleFunc("/requests/open", s.handleMakerView).Methods(http.MethodGet)
	api.HandleFunc("/requests/open/watch", s.handleMakerWatch).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id}", s.handleGetRequest).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id}/advance", s.handleAdvanceStatus).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/offers", s.handleSubmitOffer).Methods(http.MethodPost)

	return r
}
