package formatter

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/theoremus-urban-solutions/flightsim-monitor/render"
)

// BuildGeoJSON renders markers as a FeatureCollection of points.
func (rb *responseBuilder) BuildGeoJSON(markers []render.Marker) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewPointFeature([]float64{m.Position.Lon, m.Position.Lat})
		f.ID = m.ID
		f.SetProperty("name", m.Name)
		f.SetProperty("score", m.Score)
		f.SetProperty("selected", m.Selected)
		f.SetProperty("symbol", m.Symbol.Path)
		f.SetProperty("symbolWidth", m.Symbol.Width)
		f.SetProperty("symbolHeight", m.Symbol.Height)
		f.SetProperty("angle", m.Symbol.Angle)
		fc.AddFeature(f)
	}
	return fc.MarshalJSON()
}
