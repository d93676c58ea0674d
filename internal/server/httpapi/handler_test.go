package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Alok0227/rallly/internal/logging"
	"github.com/Alok0227/rallly/internal/server/auth"
	"github.com/Alok0227/rallly/internal/server/housekeeping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeSweeper struct {
	result *housekeeping.Result
	err    error
	calls  int
}

func (f *fakeSweeper) Run(ctx context.Context) (*housekeeping.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestServer(t *testing.T, sw *fakeSweeper) *httptest.Server {
	t.Helper()
	s := NewServer(":0", testSecret, sw, discardLogger())
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func doSweep(t *testing.T, ts *httptest.Server, authHeader string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/housekeeping", nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.GenerateToken(auth.ScopeHousekeeping, []byte(testSecret), time.Minute)
	require.NoError(t, err)
	return tok
}

func TestHandleSweep_ReturnsAggregateResult(t *testing.T) {
	sw := &fakeSweeper{result: &housekeeping.Result{SoftDeleted: 2, Deleted: 5}}
	ts := newTestServer(t, sw)

	resp := doSweep(t, ts, "Bearer "+validToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(2), body["softDeleted"])
	assert.Equal(t, int64(5), body["deleted"])
	assert.Equal(t, 1, sw.calls)
}

func TestHandleSweep_MissingToken(t *testing.T) {
	sw := &fakeSweeper{result: &housekeeping.Result{}}
	ts := newTestServer(t, sw)

	resp := doSweep(t, ts, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, sw.calls, "sweep must not run without authorization")
}

func TestHandleSweep_MalformedHeader(t *testing.T) {
	sw := &fakeSweeper{result: &housekeeping.Result{}}
	ts := newTestServer(t, sw)

	resp := doSweep(t, ts, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, sw.calls)
}

func TestHandleSweep_WrongSecret(t *testing.T) {
	sw := &fakeSweeper{result: &housekeeping.Result{}}
	ts := newTestServer(t, sw)

	tok, err := auth.GenerateToken(auth.ScopeHousekeeping, []byte("other-secret"), time.Minute)
	require.NoError(t, err)

	resp := doSweep(t, ts, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, sw.calls)
}

func TestHandleSweep_WrongScope(t *testing.T) {
	sw := &fakeSweeper{result: &housekeeping.Result{}}
	ts := newTestServer(t, sw)

	tok, err := auth.GenerateToken("reporting", []byte(testSecret), time.Minute)
	require.NoError(t, err)

	resp := doSweep(t, ts, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, sw.calls)
}

func TestHandleSweep_SweeperError(t *testing.T) {
	sw := &fakeSweeper{err: errors.New("store unavailable")}
	ts := newTestServer(t, sw)

	resp := doSweep(t, ts, "Bearer "+validToken(t))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandleSweep_GetNotAllowed(t *testing.T) {
	sw := &fakeSweeper{result: &housekeeping.Result{}}
	ts := newTestServer(t, sw)

	resp, err := http.Get(ts.URL + "/api/housekeeping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleHealthz(t *testing.T) {
	ts := newTestServer(t, &fakeSweeper{result: &housekeeping.Result{}})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, &fakeSweeper{result: &housekeeping.Result{}})

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
