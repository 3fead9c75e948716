package flightmonitor

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status           string `json:"status"`
	Stream           string `json:"stream"`
	TrackedFlights   int    `json:"tracked_flights"`
	LeaderboardSize  int    `json:"leaderboard_size"`
	LatestUpdateUnix int64  `json:"latest_update_epoch"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	st := s.monitor.Stats()
	resp := healthResponse{
		Status:          "ok",
		Stream:          s.StreamStatus(),
		TrackedFlights:  st.Tracked,
		LeaderboardSize: st.Ranked,
	}
	if !st.LastUpdate.IsZero() {
		resp.LatestUpdateUnix = st.LastUpdate.Unix()
	}
	_ = json.NewEncoder(w).Encode(resp)
}
