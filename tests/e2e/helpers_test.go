//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/rhymebook-backend/internal/adapter/provider/datamuse"
	"github.com/heartmarshall/rhymebook-backend/internal/app"
	"github.com/heartmarshall/rhymebook-backend/internal/config"
	"github.com/heartmarshall/rhymebook-backend/internal/service/lookup"
	"github.com/heartmarshall/rhymebook-backend/internal/service/session"
	"github.com/heartmarshall/rhymebook-backend/internal/transport/middleware"
	"github.com/heartmarshall/rhymebook-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// Fake word API. Serves canned Datamuse-shaped responses; any word not in
// the tables gets an empty result. The word "boom" always returns HTTP 500
// so upstream-failure paths can be exercised.
// ---------------------------------------------------------------------------

func newFakeWordAPI(t *testing.T) *httptest.Server {
	t.Helper()

	rhymes := map[string]string{
		"cat": `[
			{"word":"hat","score":4500,"numSyllables":1},
			{"word":"combat","score":900,"numSyllables":2},
			{"word":"bat","score":4000,"numSyllables":1}
		]`,
	}
	meansLike := map[string]string{
		"happy": `[
			{"word":"glad","score":9000},
			{"word":"joyful","score":8000}
		]`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var word, table string
		if word = q.Get("rel_rhy"); word != "" {
			table = rhymes[word]
		} else if word = q.Get("ml"); word != "" {
			table = meansLike[word]
		}
		if word == "boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if table == "" {
			table = `[]`
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, table)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack against a fake
// word API, with a fresh cookie jar so the session cookie survives across
// requests the way a browser keeps it.
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	wordAPI := newFakeWordAPI(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	words := datamuse.NewProviderWithURL(wordAPI.URL, 100, logger)

	lookupSvc := lookup.NewService(logger, words, 100, 64, time.Minute)

	sessionSvc := session.NewService(logger, 500, 30*time.Minute, time.Minute)
	t.Cleanup(sessionSvc.Stop)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(rateLimiter.Stop)

	router := rest.NewRouter(rest.RouterDeps{
		Lookup:   rest.NewLookupHandler(lookupSvc, sessionSvc, logger),
		Notebook: rest.NewNotebookHandler(sessionSvc, logger),
		Health:   rest.NewHealthHandler(words, app.BuildVersion()),
		Logger:   logger,
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Content-Type,X-Session-Id",
		},
		RateLimiter: rateLimiter,
		RatePerMin:  10000,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: newClient(t),
	}
}

// newClient returns an HTTP client with its own cookie jar, i.e. its own
// session.
func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

func (ts *testServer) get(t *testing.T, path string) (int, map[string]any) {
	t.Helper()

	resp, err := ts.Client.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, decodeBody(t, resp)
}

func (ts *testServer) post(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := ts.Client.Post(ts.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// stringsOf converts a JSON array of strings to []string.
func stringsOf(t *testing.T, v any) []string {
	t.Helper()

	items, ok := v.([]any)
	require.True(t, ok, "expected array, got %T", v)

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		require.True(t, ok, "expected string item, got %T", item)
		out = append(out, s)
	}
	return out
}
