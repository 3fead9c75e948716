package flightmonitor

import "github.com/theoremus-urban-solutions/flightsim-monitor/ranking"

// Snapshot is a consistent read of the leaderboard and the selection.
type Snapshot struct {
	Entries  []ranking.Entry
	Selected string
	Capacity int
	Version  uint64
}

func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		Entries:  m.table.Entries(),
		Selected: m.selected,
		Capacity: m.table.Cap(),
		Version:  m.version,
	}
}

// Rank returns the 1-based leaderboard position of id, or 0 when unranked.
func (m *Monitor) Rank(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.table.Position(id) + 1
}
