package tracking

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when a flight id is not tracked.
var ErrNotFound = errors.New("flight not found")

// Position is a WGS84 coordinate in degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate is inside WGS84 bounds.
func (p Position) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Update is one decoded position/score event for a flight.
type Update struct {
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Heading  float64  `json:"heading"`
	Score    int      `json:"score"`
}

var validate = validator.New()

// Validate checks the update carries everything the registry keys on.
func (u Update) Validate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("invalid update: %w", err)
	}
	return nil
}

// Entity is a tracked flight.
type Entity struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Heading  float64  `json:"heading"`
	Score    int      `json:"score"`
	Selected bool     `json:"selected"`
}
