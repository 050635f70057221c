package nai_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/oauth2"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
	"github.com/hansajasandeepabadalge/naiterm/internal/token"
)

func newStore(t *testing.T, pair *oauth2.Token) *token.MemoryStore {
	t.Helper()

	store := token.NewMemoryStore()
	if pair != nil {
		if err := store.SetToken(t.Context(), pair); err != nil {
			t.Fatalf("failed to seed token store: %v", err)
		}
	}
	return store
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantDetail string
	}{
		{
			name:       "detail field from body",
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail": "category must be a PESTEL value"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "category must be a PESTEL value",
		},
		{
			name:       "non-JSON body falls back to status text",
			status:     http.StatusBadGateway,
			body:       "<html>upstream exploded</html>",
			wantStatus: http.StatusBadGateway,
			wantDetail: "Bad Gateway",
		},
		{
			name:       "JSON body without detail falls back to status text",
			status:     http.StatusInternalServerError,
			body:       `{"message": "wrong field name"}`,
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			client := nai.New(srv.URL, newStore(t, &oauth2.Token{AccessToken: "access"}))

			var out struct{}
			err := client.Get(t.Context(), "/indicators", nil, &out)

			var apiErr *nai.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Get() error = %v, want *APIError", err)
			}
			if apiErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if apiErr.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", apiErr.Detail, tt.wantDetail)
			}
		})
	}
}

func TestTransportErrorNormalizedToStatusZero(t *testing.T) {
	t.Parallel()

	// a closed server guarantees a connection failure
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := nai.New(srv.URL, newStore(t, &oauth2.Token{AccessToken: "access"}))

	err := client.Get(t.Context(), "/indicators", nil, &struct{}{})

	var apiErr *nai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Get() error = %v, want *APIError", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("Status = %d, want 0", apiErr.Status)
	}
}

func TestNoContentResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	client := nai.New(srv.URL, newStore(t, &oauth2.Token{AccessToken: "access"}))

	if err := client.Delete(t.Context(), "/indicators/gdp"); err != nil {
		t.Errorf("Delete() error = %v, want nil", err)
	}
}

func TestRefreshAndRetryOn401(t *testing.T) {
	t.Parallel()

	var (
		refreshCalls atomic.Int32
		dataCalls    atomic.Int32
	)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)

		// wire asymmetry: refresh token travels as a query parameter
		if got := r.URL.Query().Get("refresh_token"); got != "old-refresh" {
			t.Errorf("refresh_token query param = %q, want %q", got, "old-refresh")
		}
		if r.ContentLength > 0 {
			t.Error("refresh request has a body, want none")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"new-access","refresh_token":"new-refresh","token_type":"bearer","expires_in":1800}`))
	})
	mux.HandleFunc("GET /user/operations-data", func(w http.ResponseWriter, r *http.Request) {
		switch dataCalls.Add(1) {
		case 1:
			if got := r.Header.Get("Authorization"); got != "Bearer old-access" {
				t.Errorf("first Authorization = %q, want %q", got, "Bearer old-access")
			}
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"token expired"}`))
		default:
			if got := r.Header.Get("Authorization"); got != "Bearer new-access" {
				t.Errorf("retried Authorization = %q, want %q", got, "Bearer new-access")
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"indicators": [], "total": 0, "critical_count": 0, "warning_count": 0}`))
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := newStore(t, &oauth2.Token{AccessToken: "old-access", RefreshToken: "old-refresh"})
	client := nai.New(srv.URL, store)

	got, err := client.Operations.Data(t.Context())
	if err != nil {
		t.Fatalf("Data() error = %v, want retried response", err)
	}

	want := &nai.OperationsData{Indicators: []nai.Indicator{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Data() mismatch (-want +got):\n%s", diff)
	}

	if n := refreshCalls.Load(); n != 1 {
		t.Errorf("refresh calls = %d, want 1", n)
	}
	if n := dataCalls.Load(); n != 2 {
		t.Errorf("data calls = %d, want 2", n)
	}

	// the refreshed pair replaced the old one
	access, err := store.AccessToken(t.Context())
	if err != nil {
		t.Fatalf("AccessToken() error = %v", err)
	}
	if access != "new-access" {
		t.Errorf("stored access token = %q, want %q", access, "new-access")
	}
}

func TestFailedRefreshClearsTokens(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"refresh token revoked"}`))
	})
	mux.HandleFunc("GET /user/operations-data", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := newStore(t, &oauth2.Token{AccessToken: "old-access", RefreshToken: "old-refresh"})
	client := nai.New(srv.URL, store)

	_, err := client.Operations.Data(t.Context())

	var apiErr *nai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Data() error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", apiErr.Status)
	}

	authed, err := store.Authenticated(t.Context())
	if err != nil {
		t.Fatalf("Authenticated() error = %v", err)
	}
	if authed {
		t.Error("Authenticated() = true after failed refresh, want false")
	}
}

func TestRetryAfterRefreshDoesNotRefreshTwice(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"new-access","refresh_token":"new-refresh","token_type":"bearer","expires_in":1800}`))
	})
	mux.HandleFunc("GET /user/operations-data", func(w http.ResponseWriter, r *http.Request) {
		// the retry fails too: its error propagates without a second
		// refresh attempt
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"still unauthorized"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := newStore(t, &oauth2.Token{AccessToken: "old-access", RefreshToken: "old-refresh"})
	client := nai.New(srv.URL, store)

	_, err := client.Operations.Data(t.Context())

	var apiErr *nai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Data() error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", apiErr.Status)
	}
	if apiErr.Detail != "still unauthorized" {
		t.Errorf("Detail = %q, want %q", apiErr.Detail, "still unauthorized")
	}
	if n := refreshCalls.Load(); n != 1 {
		t.Errorf("refresh calls = %d, want exactly 1", n)
	}
}

func TestConcurrent401sShareOneRefresh(t *testing.T) {
	t.Parallel()

	const concurrency = 4

	var (
		refreshCalls atomic.Int32
		firstHits    atomic.Int32
		barrier      = make(chan struct{})
	)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		// hold the refresh open long enough for every 401 handler to
		// join the shared flight
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"new-access","refresh_token":"new-refresh","token_type":"bearer","expires_in":1800}`))
	})
	mux.HandleFunc("GET /user/operations-data", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer new-access" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"indicators": [], "total": 0, "critical_count": 0, "warning_count": 0}`))
			return
		}
		// release every first attempt's 401 at once
		if firstHits.Add(1) == concurrency {
			close(barrier)
		}
		<-barrier
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := newStore(t, &oauth2.Token{AccessToken: "old-access", RefreshToken: "old-refresh"})
	client := nai.New(srv.URL, store, nai.WithTimeout(5*time.Second))

	var wg sync.WaitGroup
	errs := make([]error, concurrency)
	for i := range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = client.Operations.Data(context.Background())
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("request %d error = %v, want nil", i, err)
		}
	}
	if n := refreshCalls.Load(); n != 1 {
		t.Errorf("refresh calls = %d, want 1 shared refresh", n)
	}
}

func TestSchemaValidationRejectsMalformedResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// impact_score is a string: must fail before reaching any
		// derived-metric computation
		_, _ = w.Write([]byte(`{"indicators": [{"id": "gdp", "name": "GDP", "category": "economic", "current_value": 1, "baseline_value": 1, "impact_score": "high", "trend": "up"}], "total": 1, "critical_count": 0, "warning_count": 0}`))
	}))
	t.Cleanup(srv.Close)

	client := nai.New(srv.URL, newStore(t, &oauth2.Token{AccessToken: "access"}))

	_, err := client.Operations.Data(t.Context())

	var decodeErr *nai.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Data() error = %v, want *DecodeError", err)
	}
	if decodeErr.Resource != "operations_data" {
		t.Errorf("Resource = %q, want %q", decodeErr.Resource, "operations_data")
	}
}

func TestLoginStoresTokens(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q, want /auth/login", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login sent Authorization = %q, want none", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-1","refresh_token":"refresh-1","token_type":"bearer","expires_in":1800}`))
	}))
	t.Cleanup(srv.Close)

	store := newStore(t, nil)
	client := nai.New(srv.URL, store)

	err := client.Auth.Login(t.Context(), nai.Credentials{Email: "a@b.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	tok, err := store.Token(t.Context())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok.AccessToken != "access-1" || tok.RefreshToken != "refresh-1" {
		t.Errorf("stored pair = %q/%q, want access-1/refresh-1", tok.AccessToken, tok.RefreshToken)
	}
	if tok.Expiry.IsZero() {
		t.Error("stored expiry is zero, want expires_in applied")
	}
}

func TestLogoutClearsTokensEvenWhenRemoteFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"backend on fire"}`))
	}))
	t.Cleanup(srv.Close)

	store := newStore(t, &oauth2.Token{AccessToken: "access", RefreshToken: "refresh"})
	client := nai.New(srv.URL, store)

	if err := client.Auth.Logout(t.Context()); err != nil {
		t.Fatalf("Logout() error = %v, want nil", err)
	}

	authed, err := store.Authenticated(t.Context())
	if err != nil {
		t.Fatalf("Authenticated() error = %v", err)
	}
	if authed {
		t.Error("Authenticated() = true after logout, want false")
	}
}
