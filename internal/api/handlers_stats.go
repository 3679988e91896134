package api

import (
	"net/http"
)

func (s *Server) handleBuildStats(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"builds":      s.orchestrator.Stats(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"sections":    s.engine.Index().Len(),
	}
	if s.watcher != nil {
		resp["watch"] = s.watcher.Stats()
	}
	writeJSON(w, http.StatusOK, resp)
}
