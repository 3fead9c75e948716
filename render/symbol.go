package render

import "github.com/theoremus-urban-solutions/flightsim-monitor/tracking"

const (
	DefaultSymbolPath  = "assets/plane_blue.png"
	SelectedSymbolPath = "assets/plane_red.png"

	defaultSymbolSize  = 20
	selectedSymbolSize = 26
)

// Symbol describes the picture marker drawn for a flight.
type Symbol struct {
	Path   string  `json:"path"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Angle  float64 `json:"angle"`
}

// SymbolFor picks the marker for a flight from its selection flag and heading.
func SymbolFor(e tracking.Entity) Symbol {
	if e.Selected {
		return Symbol{Path: SelectedSymbolPath, Width: selectedSymbolSize, Height: selectedSymbolSize, Angle: e.Heading}
	}
	return Symbol{Path: DefaultSymbolPath, Width: defaultSymbolSize, Height: defaultSymbolSize, Angle: e.Heading}
}
