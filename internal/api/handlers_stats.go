package api

import "net/http"

func (s *Server) handleComplianceStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"window": s.cfg.StatsWindow.String(),
		"stats":  s.stats.Snapshot(),
	})
}
