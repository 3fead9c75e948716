package render

import "github.com/theoremus-urban-solutions/flightsim-monitor/tracking"

// Renderer receives flight notifications from the monitor. Calls arrive in
// the order the monitor settled them, while the monitor holds its lock, so
// implementations must not call back into the monitor.
type Renderer interface {
	EntityCreated(e tracking.Entity)
	PositionUpdated(e tracking.Entity)
	SelectionChanged(e tracking.Entity)
	Cleared()
}

// Nop discards every notification.
type Nop struct{}

func (Nop) EntityCreated(tracking.Entity)    {}
func (Nop) PositionUpdated(tracking.Entity)  {}
func (Nop) SelectionChanged(tracking.Entity) {}
func (Nop) Cleared()                         {}

// Multi fans notifications out to several renderers in order.
type Multi []Renderer

func (m Multi) EntityCreated(e tracking.Entity) {
	for _, r := range m {
		r.EntityCreated(e)
	}
}

func (m Multi) PositionUpdated(e tracking.Entity) {
	for _, r := range m {
		r.PositionUpdated(e)
	}
}

func (m Multi) SelectionChanged(e tracking.Entity) {
	for _, r := range m {
		r.SelectionChanged(e)
	}
}

func (m Multi) Cleared() {
	for _, r := range m {
		r.Cleared()
	}
}
