package render

import (
	"sort"
	"sync"

	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
)

// Marker is the drawn state of one flight.
type Marker struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Position tracking.Position `json:"position"`
	Score    int               `json:"score"`
	Selected bool              `json:"selected"`
	Symbol   Symbol            `json:"symbol"`
}

// Layer is an in-memory marker layer. It is safe for concurrent readers.
type Layer struct {
	mu      sync.RWMutex
	markers map[string]*Marker
}

func NewLayer() *Layer {
	return &Layer{markers: map[string]*Marker{}}
}

func (l *Layer) EntityCreated(e tracking.Entity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.markers[e.ID] = markerFor(e)
}

// PositionUpdated moves the marker and turns its symbol to the new heading.
// The symbol variant is only switched by SelectionChanged.
func (l *Layer) PositionUpdated(e tracking.Entity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.markers[e.ID]
	if !ok {
		l.markers[e.ID] = markerFor(e)
		return
	}
	m.Position = e.Position
	m.Score = e.Score
	m.Symbol.Angle = e.Heading
}

func (l *Layer) SelectionChanged(e tracking.Entity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.markers[e.ID]
	if !ok {
		return
	}
	m.Selected = e.Selected
	m.Symbol = SymbolFor(e)
}

func (l *Layer) Cleared() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.markers = map[string]*Marker{}
}

func (l *Layer) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.markers)
}

func (l *Layer) Marker(id string) (Marker, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.markers[id]
	if !ok {
		return Marker{}, false
	}
	return *m, true
}

// Markers returns a copy of all markers ordered by id.
func (l *Layer) Markers() []Marker {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Marker, 0, len(l.markers))
	for _, m := range l.markers {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func markerFor(e tracking.Entity) *Marker {
	return &Marker{
		ID:       e.ID,
		Name:     e.Name,
		Position: e.Position,
		Score:    e.Score,
		Selected: e.Selected,
		Symbol:   SymbolFor(e),
	}
}
