package flightmonitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/flightsim-monitor/ranking"
	"github.com/theoremus-urban-solutions/flightsim-monitor/render"
	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
)

// ErrNotFound is returned when a flight id is not tracked.
var ErrNotFound = tracking.ErrNotFound

// Outcome reports what a single update did.
type Outcome struct {
	Created      bool // first update for this id
	ScoreChanged bool // new flight or score differs from the last update
	RankChanged  bool // leaderboard content changed
	Dropped      bool // update failed validation and was ignored
}

// Monitor merges the update stream into the flight registry and the
// leaderboard. It is the only writer of both; every operation runs under one
// lock so readers only ever see settled states.
type Monitor struct {
	mu       sync.RWMutex
	registry *tracking.Registry
	table    *ranking.Table
	selected string
	renderer render.Renderer
	metrics  *Metrics

	version    uint64
	lastUpdate time.Time
}

// NewMonitor creates a monitor with a leaderboard of the given capacity.
// renderer and metrics may be nil.
func NewMonitor(capacity int, renderer render.Renderer, metrics *Metrics) *Monitor {
	if renderer == nil {
		renderer = render.Nop{}
	}
	return &Monitor{
		registry: tracking.NewRegistry(),
		table:    ranking.New(capacity),
		renderer: renderer,
		metrics:  metrics,
	}
}

// OnUpdate applies one decoded update. Updates must be passed in the order
// they were received.
func (m *Monitor) OnUpdate(u tracking.Update) Outcome {
	if err := u.Validate(); err != nil {
		m.metrics.observeUpdate(Outcome{Dropped: true})
		return Outcome{Dropped: true}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev, _ := m.registry.Get(u.ID)
	e, isNew := m.registry.Upsert(u)
	out := Outcome{Created: isNew}
	if isNew || prev.Score != e.Score {
		out.ScoreChanged = true
		out.RankChanged = m.table.Upsert(summary(e))
	}
	if isNew {
		m.renderer.EntityCreated(e)
	}
	m.renderer.PositionUpdated(e)

	m.version++
	m.lastUpdate = time.Now()
	m.metrics.observeUpdate(out)
	m.metrics.observeSizes(m.registry.Len(), m.table.Len())
	return out
}

// SelectEntity highlights one flight and returns it so the caller can center
// a view on it. An empty id only clears the current selection. An unknown id
// fails with ErrNotFound and leaves the selection as it was.
func (m *Monitor) SelectEntity(id string) (tracking.Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		if m.clearSelection() {
			m.version++
		}
		return tracking.Entity{}, nil
	}
	if !m.registry.Has(id) {
		return tracking.Entity{}, fmt.Errorf("select %q: %w", id, ErrNotFound)
	}
	m.clearSelection()
	if err := m.registry.SetSelected(id, true); err != nil {
		return tracking.Entity{}, fmt.Errorf("select %q: %w", id, err)
	}
	m.selected = id
	e, _ := m.registry.Get(id)
	m.renderer.SelectionChanged(e)
	m.version++
	return e, nil
}

// clearSelection unsets the selected flight, if any, and reports whether
// anything changed. Caller holds m.mu.
func (m *Monitor) clearSelection() bool {
	if m.selected == "" {
		return false
	}
	prev := m.selected
	m.selected = ""
	if err := m.registry.SetSelected(prev, false); err != nil {
		return true
	}
	e, _ := m.registry.Get(prev)
	m.renderer.SelectionChanged(e)
	return true
}

// Reset drops every tracked flight, the leaderboard and the selection.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registry.Clear()
	m.table.Clear()
	m.selected = ""
	m.renderer.Cleared()
	m.version++
	m.metrics.observeSizes(0, 0)
}

// Leaderboard returns a copy of the ranked entries, highest score first.
func (m *Monitor) Leaderboard() []ranking.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.table.Entries()
}

func (m *Monitor) Entity(id string) (tracking.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, err := m.registry.Get(id)
	if err != nil {
		return tracking.Entity{}, fmt.Errorf("flight %q: %w", id, err)
	}
	return e, nil
}

func (m *Monitor) Entities() []tracking.Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registry.Entities()
}

// Selected returns the id of the highlighted flight, or "".
func (m *Monitor) Selected() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selected
}

// Capacity is the configured leaderboard size.
func (m *Monitor) Capacity() int {
	return m.table.Cap()
}

// Stats is a consistent view of the monitor counters.
type Stats struct {
	Tracked    int
	Ranked     int
	Version    uint64
	LastUpdate time.Time
}

func (m *Monitor) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Tracked:    m.registry.Len(),
		Ranked:     m.table.Len(),
		Version:    m.version,
		LastUpdate: m.lastUpdate,
	}
}

// Version increases every time an observable part of the monitor changes.
func (m *Monitor) Version() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

func summary(e tracking.Entity) ranking.Entry {
	return ranking.Entry{
		ID:     e.ID,
		Name:   e.Name,
		Score:  e.Score,
		Symbol: render.DefaultSymbolPath,
	}
}
