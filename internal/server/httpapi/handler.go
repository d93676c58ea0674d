package httpapi

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s.logger.Info(ctx, "Sweep requested")

	result, err := s.sweeper.Run(ctx)
	if err != nil {
		s.logger.Error(ctx, "sweep failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "sweep failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
