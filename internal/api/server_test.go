package api

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favouritebooks/favouritebooks-server/internal/auth"
	"github.com/favouritebooks/favouritebooks-server/internal/mailer"
	"github.com/favouritebooks/favouritebooks-server/internal/search"
	"github.com/favouritebooks/favouritebooks-server/internal/service"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
	"github.com/favouritebooks/favouritebooks-server/internal/store/sqlite"
)

const testKeyHex = "0000000000000000000000000000000000000000000000000000000000000001"

type testServer struct {
	*Server
	store store.Store
	index *search.Index
}

// newTestServer wires a full server against a throwaway database and
// search index.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	idx, err := search.Open(filepath.Join(t.TempDir(), "search.bleve"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	tokens, err := auth.NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	m := mailer.NewLog(logger)

	services := &Services{
		Auth:     service.NewAuthService(st, tokens, m, "http://localhost:8080", 24*time.Hour, logger),
		Book:     service.NewBookService(st, idx, logger),
		Comment:  service.NewCommentService(st, logger),
		Genre:    service.NewGenreService(st, logger),
		Feedback: service.NewFeedbackService(m, "team@example.com", logger),
		Search:   service.NewSearchService(st, idx, logger),
	}

	// Generous login limits so only the dedicated test trips them.
	limits := RateLimits{LoginRPS: 100, LoginBurst: 100, FeedbackRPS: 100, FeedbackBurst: 100}

	srv := NewServer(st, services, tokens, limits, logger)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, store: st, index: idx}
}

// do runs a request through the router and returns the recorder.
func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	return rec
}

// postForm submits an urlencoded form, optionally with a session cookie.
func (ts *testServer) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return ts.do(req)
}

// postJSON submits a JSON body, optionally with a session cookie.
func (ts *testServer) postJSON(path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return ts.do(req)
}

// get issues a GET, optionally with a session cookie.
func (ts *testServer) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return ts.do(req)
}

// register creates an account through the HTTP surface and returns the
// session cookie.
func (ts *testServer) register(t *testing.T, username string) *http.Cookie {
	t.Helper()

	rec := ts.postForm("/users/register", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"password123"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set on register")
	return nil
}

// promoteStaff flips the staff bit for the named user directly in the
// store.
func (ts *testServer) promoteStaff(t *testing.T, username string) {
	t.Helper()

	user, err := ts.store.GetUserByUsername(context.Background(), username)
	require.NoError(t, err)
	user.IsStaff = true
	user.Touch()
	require.NoError(t, ts.store.UpdateUser(context.Background(), user))
}

// createBook posts a book through the form flow and returns its slug.
func (ts *testServer) createBook(t *testing.T, cookie *http.Cookie, title string, publish bool) string {
	t.Helper()

	form := url.Values{"title": {title}}
	if publish {
		form.Set("publish", "on")
	}
	rec := ts.postForm("/addbook", form, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/book/"), location)
	return strings.TrimPrefix(location, "/book/")
}

// decodeBody unmarshals a JSON response body into a generic map.
func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.UnmarshalRead(body, &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec.Body)
	assert.Equal(t, true, body["success"])
}

func TestHomeListsPublishedBooks(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice")

	ts.createBook(t, cookie, "Visible Book", true)
	ts.createBook(t, cookie, "Hidden Draft", false)

	rec := ts.get("/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Visible Book")
	assert.NotContains(t, body, "Hidden Draft")
}

func TestUnknownRouteReturns404(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/no/such/route", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
