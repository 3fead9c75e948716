package flightmonitor

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/flightsim-monitor/formatter"
)

func buildErrorPayload(call, msg string) []byte {
	type apiErr struct {
		Error struct {
			Call        string `json:"call"`
			Description string `json:"description"`
		} `json:"error"`
	}
	var e apiErr
	e.Error.Call = call
	e.Error.Description = msg
	b, _ := json.Marshal(e)
	return b
}

func writeError(w http.ResponseWriter, status int, call string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buildErrorPayload(call, err.Error()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleLeaderboard(format string) http.HandlerFunc {
	contentType := "application/json"
	if format == "xml" {
		contentType = "application/xml"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		buf, err := s.cache.GetLeaderboardResponse(format)
		if err != nil {
			writeError(w, statusFor(err), "leaderboard", err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(buf)
	}
}

func (s *Server) handleFlightsGeoJSON(w http.ResponseWriter, r *http.Request) {
	buf, err := s.cache.GetFlightsGeoJSON()
	if err != nil {
		writeError(w, statusFor(err), "flights", err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(buf)
}

func (s *Server) handleFlight(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e, err := s.monitor.Entity(id)
	if err != nil {
		writeError(w, statusFor(err), "flight", err)
		return
	}
	res := formatter.WrapFlight(e, s.monitor.Rank(id), time.Now())
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(formatter.NewResponseBuilder().BuildFlightJSON(res))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	e, err := s.monitor.SelectEntity(id)
	if err != nil {
		writeError(w, statusFor(err), "select", err)
		return
	}
	if id == "" {
		log.Printf("selection cleared")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	log.Printf("selected flight %s at %.5f,%.5f", e.ID, e.Position.Lat, e.Position.Lon)
	res := formatter.WrapFlight(e, s.monitor.Rank(id), time.Now())
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(formatter.NewResponseBuilder().BuildFlightJSON(res))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.monitor.Reset()
	log.Printf("monitor reset")
	w.WriteHeader(http.StatusNoContent)
}
