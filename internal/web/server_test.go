package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbtahub/gtfs-ingest/internal/config"
)

type fakeService struct {
	startErr error
	runID    string
	latest   *RunStatus
}

func (f *fakeService) StartRun(ctx context.Context) (string, error) {
	if f.startErr != nil {
		return "", f.startErr
	}
	return f.runID, nil
}

func (f *fakeService) LatestRun() (RunStatus, bool) {
	if f.latest == nil {
		return RunStatus{}, false
	}
	return *f.latest, true
}

func newTestServer(svc Service) *Server {
	return NewServer(svc, config.ServerConfig{Host: "127.0.0.1", Port: 0})
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeService{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestIngest_Accepted(t *testing.T) {
	srv := newTestServer(&fakeService{runID: "run-1"})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ingest", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-1", body["run_id"])
}

func TestIngest_Conflict(t *testing.T) {
	srv := newTestServer(&fakeService{startErr: ErrRunInFlight})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ingest", nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "already in flight")
}

func TestLatestRun_NotFound(t *testing.T) {
	srv := newTestServer(&fakeService{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/latest", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLatestRun_OK(t *testing.T) {
	finished := time.Now().UTC()
	srv := newTestServer(&fakeService{latest: &RunStatus{
		RunID:      "run-2",
		State:      RunSucceeded,
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: &finished,
	}})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/latest", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body RunStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-2", body.RunID)
	assert.Equal(t, RunSucceeded, body.State)
}
