package gtfsrt

import (
	"fmt"
	"math"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
)

const (
	ScoreOdometer = "odometer"
	ScoreSpeed    = "speed"
)

// Feed is a decoded VehiclePositions snapshot.
type Feed struct {
	Timestamp int64
	Updates   []tracking.Update
	Skipped   int // entities without a vehicle id or position
}

// Decode parses a VehiclePositions FeedMessage.
func Decode(data []byte, scoreField string) (Feed, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return Feed{}, fmt.Errorf("decode feed message: %w", err)
	}
	feed := Feed{Updates: make([]tracking.Update, 0, len(fm.GetEntity()))}
	if fm.GetHeader() != nil {
		feed.Timestamp = int64(fm.GetHeader().GetTimestamp())
	}
	for _, e := range fm.GetEntity() {
		u, ok := vehicleUpdate(e, scoreField)
		if !ok {
			feed.Skipped++
			continue
		}
		feed.Updates = append(feed.Updates, u)
	}
	return feed, nil
}

func vehicleUpdate(e *gtfsrtpb.FeedEntity, scoreField string) (tracking.Update, bool) {
	vp := e.GetVehicle()
	if vp == nil || vp.GetPosition() == nil {
		return tracking.Update{}, false
	}
	id := vp.GetVehicle().GetId()
	if id == "" {
		id = e.GetId()
	}
	if id == "" {
		return tracking.Update{}, false
	}
	name := vp.GetVehicle().GetLabel()
	if name == "" {
		name = vp.GetVehicle().GetLicensePlate()
	}
	if name == "" {
		name = id
	}
	pos := vp.GetPosition()
	u := tracking.Update{
		ID:       id,
		Name:     name,
		Position: tracking.Position{Lat: float64(pos.GetLatitude()), Lon: float64(pos.GetLongitude())},
		Heading:  float64(pos.GetBearing()),
		Score:    score(pos, scoreField),
	}
	if !u.Position.Valid() {
		return tracking.Update{}, false
	}
	return u, true
}

// score turns the odometer (metres) into whole kilometres, or the speed (m/s)
// into km/h.
func score(pos *gtfsrtpb.Position, field string) int {
	if field == ScoreSpeed {
		return int(math.Round(float64(pos.GetSpeed()) * 3.6))
	}
	return int(math.Round(pos.GetOdometer() / 1000))
}
