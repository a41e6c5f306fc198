package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mbtahub/gtfs-ingest/internal/ingest"
	"github.com/mbtahub/gtfs-ingest/internal/logging"
)

// ErrRunInFlight is returned by StartRun when an ingestion run is
// already active. Runs are strictly sequential.
var ErrRunInFlight = errors.New("ingestion run already in flight")

// RunState is the lifecycle phase of an ingestion run.
type RunState string

const (
	RunRunning   RunState = "running"
	RunSucceeded RunState = "succeeded"
	RunFailed    RunState = "failed"
)

// RunStatus is the externally visible state of one ingestion run.
type RunStatus struct {
	RunID      string              `json:"run_id"`
	State      RunState            `json:"state"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt *time.Time          `json:"finished_at,omitempty"`
	Error      string              `json:"error,omitempty"`
	Tables     []ingest.TableStats `json:"tables,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	runID, err := s.service.StartRun(r.Context())
	if err != nil {
		if errors.Is(err, ErrRunInFlight) {
			s.respondError(w, r, err, http.StatusConflict)
			return
		}
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	logging.FromContext(r.Context()).Info("ingestion run accepted", "run_id", runID)
	respondJSON(w, http.StatusAccepted, map[string]string{"run_id": runID})
}

func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	status, ok := s.service.LatestRun()
	if !ok {
		s.respondError(w, r, errors.New("no ingestion run recorded"), http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
