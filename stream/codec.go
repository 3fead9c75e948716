package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
)

// Attribute names used by the flight simulator stream service.
const (
	FieldID     = "id"
	FieldTScore = "tscore"
)

const (
	WKIDWGS84         = 4326
	WKIDWebMercator   = 102100
	WKIDWebMercatorV2 = 3857

	earthRadiusM = 6378137.0
)

// ErrMalformed marks a message that cannot become an update.
var ErrMalformed = errors.New("malformed stream message")

type spatialReference struct {
	WKID       int `json:"wkid,omitempty"`
	LatestWKID int `json:"latestWkid,omitempty"`
}

type geometry struct {
	X                *float64          `json:"x"`
	Y                *float64          `json:"y"`
	SpatialReference *spatialReference `json:"spatialReference,omitempty"`
}

type attributes struct {
	ID     string       `json:"id" validate:"required"`
	Name   string       `json:"name"`
	Lat    *float64     `json:"lat,omitempty"`
	Long   *float64     `json:"long,omitempty"`
	Angle  *float64     `json:"angle,omitempty"`
	TScore *json.Number `json:"tscore" validate:"required"`
}

// Graphic is one ArcGIS feature message.
type Graphic struct {
	Geometry   *geometry  `json:"geometry,omitempty"`
	Attributes attributes `json:"attributes"`
}

var validate = validator.New()

// Decode parses one stream message into an update.
func Decode(b []byte) (tracking.Update, error) {
	if len(b) == 0 {
		return tracking.Update{}, fmt.Errorf("%w: empty message", ErrMalformed)
	}
	var g Graphic
	if err := json.Unmarshal(b, &g); err != nil {
		return tracking.Update{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := validate.Struct(g.Attributes); err != nil {
		return tracking.Update{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	score, err := parseScore(*g.Attributes.TScore)
	if err != nil {
		return tracking.Update{}, fmt.Errorf("%w: %s: %v", ErrMalformed, FieldTScore, err)
	}
	pos, err := g.position()
	if err != nil {
		return tracking.Update{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	u := tracking.Update{
		ID:       g.Attributes.ID,
		Name:     g.Attributes.Name,
		Position: pos,
		Score:    score,
	}
	if g.Attributes.Angle != nil {
		u.Heading = *g.Attributes.Angle
	}
	return u, nil
}

// Encode renders an update as a WGS84 stream message.
func Encode(u tracking.Update) ([]byte, error) {
	if u.ID == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformed, FieldID)
	}
	lat, lon, angle := u.Position.Lat, u.Position.Lon, u.Heading
	score := json.Number(fmt.Sprintf("%d", u.Score))
	g := Graphic{
		Geometry: &geometry{X: &lon, Y: &lat, SpatialReference: &spatialReference{WKID: WKIDWGS84}},
		Attributes: attributes{
			ID:     u.ID,
			Name:   u.Name,
			Lat:    &lat,
			Long:   &lon,
			Angle:  &angle,
			TScore: &score,
		},
	}
	return json.Marshal(g)
}

// position prefers the point geometry and falls back to the lat/long
// attributes.
func (g Graphic) position() (tracking.Position, error) {
	var p tracking.Position
	switch {
	case g.Geometry != nil && g.Geometry.X != nil && g.Geometry.Y != nil:
		x, y := *g.Geometry.X, *g.Geometry.Y
		switch g.Geometry.wkid() {
		case WKIDWebMercator, WKIDWebMercatorV2:
			p = fromWebMercator(x, y)
		default:
			p = tracking.Position{Lat: y, Lon: x}
		}
	case g.Attributes.Lat != nil && g.Attributes.Long != nil:
		p = tracking.Position{Lat: *g.Attributes.Lat, Lon: *g.Attributes.Long}
	default:
		return tracking.Position{}, errors.New("missing position")
	}
	if !p.Valid() {
		return tracking.Position{}, fmt.Errorf("position %v out of range", p)
	}
	return p, nil
}

func (g *geometry) wkid() int {
	if g.SpatialReference == nil {
		return WKIDWGS84
	}
	if g.SpatialReference.LatestWKID != 0 {
		return g.SpatialReference.LatestWKID
	}
	if g.SpatialReference.WKID != 0 {
		return g.SpatialReference.WKID
	}
	return WKIDWGS84
}

func fromWebMercator(x, y float64) tracking.Position {
	lon := x / earthRadiusM * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(y/earthRadiusM)) - math.Pi/2) * 180 / math.Pi
	return tracking.Position{Lat: lat, Lon: lon}
}

// parseScore accepts integral numbers, including ones written as floats,
// within the 32-bit range the stream service stores scores in.
func parseScore(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		if i < math.MinInt32 || i > math.MaxInt32 {
			return 0, fmt.Errorf("score %s out of range", n)
		}
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid score %s", n)
	}
	f = math.Round(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("score %s out of range", n)
	}
	return int(f), nil
}
