package formatter

import (
	"time"

	"github.com/theoremus-urban-solutions/flightsim-monitor/ranking"
	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
	"github.com/theoremus-urban-solutions/flightsim-monitor/utils"
)

// RankedEntry is a leaderboard row with its 1-based rank.
type RankedEntry struct {
	Rank   int    `json:"rank"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Symbol string `json:"symbol"`
}

// LeaderboardResponse is the serialized leaderboard snapshot.
type LeaderboardResponse struct {
	ResponseTimestamp string        `json:"responseTimestamp"`
	Capacity          int           `json:"capacity"`
	Selected          string        `json:"selected,omitempty"`
	Entries           []RankedEntry `json:"entries"`
}

// FlightResponse wraps a single tracked flight.
type FlightResponse struct {
	ResponseTimestamp string          `json:"responseTimestamp"`
	Flight            tracking.Entity `json:"flight"`
	Rank              int             `json:"rank,omitempty"`
}

// WrapLeaderboard numbers the entries and stamps the response with now.
func WrapLeaderboard(entries []ranking.Entry, capacity int, selected string, now time.Time) *LeaderboardResponse {
	res := &LeaderboardResponse{
		ResponseTimestamp: utils.Iso8601FromTime(now),
		Capacity:          capacity,
		Selected:          selected,
		Entries:           make([]RankedEntry, 0, len(entries)),
	}
	for i, e := range entries {
		res.Entries = append(res.Entries, RankedEntry{
			Rank:   i + 1,
			ID:     e.ID,
			Name:   e.Name,
			Score:  e.Score,
			Symbol: e.Symbol,
		})
	}
	return res
}

// WrapFlight builds a flight response; rank is 1-based, 0 when unranked.
func WrapFlight(e tracking.Entity, rank int, now time.Time) *FlightResponse {
	return &FlightResponse{
		ResponseTimestamp: utils.Iso8601FromTime(now),
		Flight:            e,
		Rank:              rank,
	}
}
