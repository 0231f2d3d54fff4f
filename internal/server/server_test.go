package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/model"
	"github.com/gilboash/printlink/internal/request"
	"github.com/gilboash/printlink/internal/server/mocks"
	"github.com/gilboash/printlink/internal/store"
)

func newTestServer(t *testing.T) (*Server, *mocks.MockRequestService, *mocks.MockOfferService, *mocks.MockViews, *mocks.MockIdentityProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	requests := mocks.NewMockRequestService(ctrl)
	offers := mocks.NewMockOfferService(ctrl)
	views := mocks.NewMockViews(ctrl)
	identities := mocks.NewMockIdentityProvider(ctrl)
	return New(requests, offers, views, identities, zap.NewNop()), requests, offers, views, identities
}

func withIdentity(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, model.Identity{ID: id, Ephemeral: true})
	return r.WithContext(ctx)
}

func TestHandleSubmitRequest(t *testing.T) {
	srv, requests, _, _, _ := newTestServer(t)

	tests := []struct {
		name           string
		body           string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful submission",
			body: `{"title":"bracket","quantity":2}`,
			setupMocks: func() {
				requests.EXPECT().
					Submit(gomock.Any(), gomock.Any(), "alice").
					DoAndReturn(func(_ context.Context, form request.Form, _ string) (string, error) {
						assert.Equal(t, "bracket", form.Title)
						assert.Equal(t, 2, form.Quantity)
						return "req-1", nil
					})
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"Request submitted successfully","id":"req-1"}`,
		},
		{
			name:           "malformed body",
			body:           `{not json`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
		{
			name: "validation failure names the field",
			body: `{"title":"bracket"}`,
			setupMocks: func() {
				requests.EXPECT().
					Submit(gomock.Any(), gomock.Any(), "alice").
					Return("", &model.ValidationError{Field: "quantity", Reason: "must be positive"})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"must be positive","field":"quantity"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewReader([]byte(tc.body)))
			req = withIdentity(req, "alice")
			rr := httptest.NewRecorder()

			srv.handleSubmitRequest(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandleGetRequest(t *testing.T) {
	srv, requests, _, _, _ := newTestServer(t)

	tests := []struct {
		name           string
		requestID      string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "request found",
			requestID: "req-1",
			setupMocks: func() {
				requests.EXPECT().
					Get(gomock.Any(), "req-1").
					Return(&model.PrintRequest{ID: "req-1", Title: "bracket", Status: model.StatusPending}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"req-1"`,
		},
		{
			name:      "request not found",
			requestID: "missing",
			setupMocks: func() {
				requests.EXPECT().
					Get(gomock.Any(), "missing").
					Return(nil, store.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"request not found"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodGet, "/requests/"+tc.requestID, nil)
			req = mux.SetURLVars(withIdentity(req, "alice"), map[string]string{"id": tc.requestID})
			rr := httptest.NewRecorder()

			srv.handleGetRequest(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Contains(t, rr.Body.String(), tc.expectedBody)
			} else {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestHandleAdvanceStatus(t *testing.T) {
	srv, requests, _, _, _ := newTestServer(t)

	tests := []struct {
		name           string
		body           string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "claim accepted",
			body: `{"expected_status":"Pending"}`,
			setupMocks: func() {
				requests.EXPECT().
					AdvanceStatus(gomock.Any(), "req-1", "maker-1", model.StatusPending).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Status transition accepted"}`,
		},
		{
			name:           "missing expected status",
			body:           `{}`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodPost, "/requests/req-1/advance", bytes.NewReader([]byte(tc.body)))
			req = mux.SetURLVars(withIdentity(req, "maker-1"), map[string]string{"id": "req-1"})
			rr := httptest.NewRecorder()

			srv.handleAdvanceStatus(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandleSubmitOffer(t *testing.T) {
	srv, _, offers, _, _ := newTestServer(t)

	tests := []struct {
		name           string
		body           string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "offer accepted",
			body: `{"price":12.5,"message":"by Friday"}`,
			setupMocks: func() {
				offers.EXPECT().
					Submit(gomock.Any(), "req-1", "maker-1", 12.5, "by Friday").
					Return("offer-1", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"Offer submitted successfully","id":"offer-1"}`,
		},
		{
			name: "non-positive price rejected",
			body: `{"price":0}`,
			setupMocks: func() {
				offers.EXPECT().
					Submit(gomock.Any(), "req-1", "maker-1", 0.0, "").
					Return("", &model.ValidationError{Field: "price", Reason: "must be positive"})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"must be positive","field":"price"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodPost, "/requests/req-1/offers", bytes.NewReader([]byte(tc.body)))
			req = mux.SetURLVars(withIdentity(req, "maker-1"), map[string]string{"id": "req-1"})
			rr := httptest.NewRecorder()

			srv.handleSubmitOffer(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandleRequesterView(t *testing.T) {
	srv, _, _, views, _ := newTestServer(t)

	views.EXPECT().
		RequesterSnapshot(gomock.Any(), "alice").
		Return([]model.RequestWithOffers{
			{PrintRequest: model.PrintRequest{ID: "req-1", Status: model.StatusPending}, Offers: []model.Offer{}},
		}, nil)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/requests/mine", nil), "alice")
	rr := httptest.NewRecorder()

	srv.handleRequesterView(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"req-1"`)
	assert.Contains(t, rr.Body.String(), `"offers":[]`)
}

func TestHandleMakerView(t *testing.T) {
	srv, _, _, views, _ := newTestServer(t)

	views.EXPECT().
		MakerSnapshot(gomock.Any(), "maker-1").
		Return([]model.PrintRequest{{ID: "req-1", Status: model.StatusPending}}, nil)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/requests/open", nil), "maker-1")
	rr := httptest.NewRecorder()

	srv.handleMakerView(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"req-1"`)
}

func TestIdentityMiddleware(t *testing.T) {
	srv, _, _, _, identities := newTestServer(t)

	tests := []struct {
		name           string
		authorization  string
		sessionKey     string
		setupMocks     func()
		expectedStatus int
		expectedID     string
	}{
		{
			name:          "bearer token resolves",
			authorization: "Bearer alice:s3cret",
			setupMocks: func() {
				identities.EXPECT().
					Resolve(gomock.Any(), "alice:s3cret", "").
					Return(model.Identity{ID: "alice"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedID:     "alice",
		},
		{
			name:       "session key resolves anonymous",
			sessionKey: "session-1",
			setupMocks: func() {
				identities.EXPECT().
					Resolve(gomock.Any(), "", "session-1").
					Return(model.Identity{ID: "anon-1", Ephemeral: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedID:     "anon-1",
		},
		{
			name: "no credentials rejected",
			setupMocks: func() {
				identities.EXPECT().
					Resolve(gomock.Any(), "", "").
					Return(model.Identity{}, &model.AuthError{Reason: "no credentials supplied"})
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			var seen model.Identity
			handler := srv.identityMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = identityFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/requests/mine", nil)
			if tc.authorization != "" {
				req.Header.Set("Authorization", tc.authorization)
			}
			if tc.sessionKey != "" {
				req.Header.Set("X-Session-Key", tc.sessionKey)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, tc.expectedID, seen.ID)
			}
		})
	}
}

// syncRecorder makes httptest.ResponseRecorder safe to read while the
// streaming handler is still writing.
type syncRecorder struct {
	mu sync.Mutex
	*httptest.ResponseRecorder
}

func (r *syncRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Write(b)
}

func (r *syncRecorder) WriteHeader(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ResponseRecorder.WriteHeader(code)
}

func (r *syncRecorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ResponseRecorder.Flush()
}

func (r *syncRecorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Body.String()
}

func TestWatchEndpointStreamsUpdates(t *testing.T) {
	srv, _, _, views, _ := newTestServer(t)

	views.EXPECT().
		WatchMaker(gomock.Any(), "maker-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fn func([]model.PrintRequest)) (func(), error) {
			fn([]model.PrintRequest{{ID: "req-1", Status: model.StatusPending}})
			return func() {}, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/requests/open/watch", nil).WithContext(ctx)
	req = withIdentity(req, "maker-1")
	rr := &syncRecorder{ResponseRecorder: httptest.NewRecorder()}

	done := make(chan struct{})
	go func() {
		srv.handleMakerWatch(rr, req)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(rr.body(), `"id":"req-1"`)
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	assert.Equal(t, "text/event-stream", rr.Result().Header.Get("Content-Type"))
	assert.Contains(t, rr.body(), "data: ")
}
