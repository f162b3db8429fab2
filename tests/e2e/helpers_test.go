//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"auth-service/internal/adapter/postgres"
	"auth-service/internal/adapter/postgres/testhelper"
	userrepo "auth-service/internal/adapter/postgres/user"
	"auth-service/internal/adapter/provider/github"
	authpkg "auth-service/internal/auth"
	"auth-service/internal/config"
	authsvc "auth-service/internal/service/auth"
	"auth-service/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests, backed by a
// real PostgreSQL container and a fake GitHub provider.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	GitHub *fakeGitHub
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// fakeGitHub serves the token, profile and emails endpoints. The identity it
// hands out is settable per test; a unique one is generated by default.
// ---------------------------------------------------------------------------

type fakeGitHub struct {
	srv *httptest.Server

	login atomic.Value // string
	name  atomic.Value // string
	email atomic.Value // string
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()

	f := &fakeGitHub{}
	f.SetIdentity("e2e-octo", "Octo Cat", fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano()))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"access_token": "gho_e2e", "token_type": "bearer"})
	})
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":    4242,
			"login": f.login.Load(),
			"name":  f.name.Load(),
			"email": f.email.Load(),
		})
	})
	mux.HandleFunc("GET /user/emails", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

// SetIdentity controls the profile served on the next login.
func (f *fakeGitHub) SetIdentity(login, name, email string) {
	f.login.Store(login)
	f.name.Store(name)
	f.email.Store(email)
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack.
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	txm := postgres.NewTxManager(pool)
	users := userrepo.New(pool)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "auth-service-e2e", 15*time.Minute)

	gh := newFakeGitHub(t)
	ghClient := github.NewClient("e2e-client", "e2e-secret", "https://app.example.com/callback", github.Endpoints{
		AuthorizeURL: gh.srv.URL + "/login/oauth/authorize",
		TokenURL:     gh.srv.URL + "/login/oauth/access_token",
		UserURL:      gh.srv.URL + "/user",
		EmailsURL:    gh.srv.URL + "/user/emails",
	}, logger)

	svc := authsvc.NewService(logger, users, jwtMgr, ghClient, txm)

	router := rest.NewRouter(
		rest.NewAuthHandler(svc, logger),
		rest.NewHealthHandler(pool, "test-version"),
		jwtMgr,
		logger,
		config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		},
		true,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		GitHub: gh,
	}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

// postJSON sends a JSON POST and returns status + decoded body.
func (ts *testServer) postJSON(t *testing.T, path string, payload any, token string) (int, map[string]any) {
	t.Helper()

	jsonBody, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(jsonBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// getJSON sends a GET and returns status + decoded body.
func (ts *testServer) getJSON(t *testing.T, path, token string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// registerUser registers a fresh account and returns its email and token.
func registerUser(t *testing.T, ts *testServer) (email, token string) {
	t.Helper()

	email = fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	status, body := ts.postJSON(t, "/auth/register", map[string]string{
		"email":     email,
		"password":  "e2e-password-1",
		"firstName": "E2E",
		"lastName":  "User",
	}, "")
	require.Equal(t, http.StatusCreated, status, "register response: %v", body)

	token, ok := body["accessToken"].(string)
	require.True(t, ok, "expected accessToken in response")
	return email, token
}
