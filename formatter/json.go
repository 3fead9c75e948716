package formatter

import (
	"encoding/json"
)

type responseBuilder struct{}

func newResponseBuilder() *responseBuilder { return &responseBuilder{} }

// NewResponseBuilder creates a new response builder for formatting snapshots
func NewResponseBuilder() *responseBuilder {
	return newResponseBuilder()
}

// BuildJSON serializes a leaderboard response to JSON
func (rb *responseBuilder) BuildJSON(res *LeaderboardResponse) []byte {
	b, _ := json.Marshal(res)
	return b
}

// BuildFlightJSON serializes a flight response to JSON
func (rb *responseBuilder) BuildFlightJSON(res *FlightResponse) []byte {
	b, _ := json.Marshal(res)
	return b
}
