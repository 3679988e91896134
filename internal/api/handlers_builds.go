package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dgallion1/docsite/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleSubmitBuild queues a rebuild of the site. ?force=true rebuilds even
// when the source is unchanged.
func (s *Server) handleSubmitBuild(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	job := pipeline.NewJob(pipeline.TriggerAPI, force)
	if err := s.orchestrator.Submit(job); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrQueueFull) {
			code = http.StatusServiceUnavailable
		}
		jsonError(w, err.Error(), code)
		return
	}

	snap := job.Snapshot()
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   snap.ID,
		"status":   snap.Status,
		"force":    snap.Force,
		"poll_url": fmt.Sprintf("/api/builds/%s", snap.ID),
	})
}

func (s *Server) handleBuildStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}
