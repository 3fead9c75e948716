package gtfsrt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/flightsim-monitor/config"
	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
)

type vehicle struct {
	entityID, id, label string
	lat, lon, bearing   float32
	odometer            float64
	speed               float32
	noPosition          bool
}

// buildFeed marshals a VehiclePositions FeedMessage for the given vehicles.
func buildFeed(t *testing.T, ts uint64, vehicles ...vehicle) []byte {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(ts),
		},
	}
	for _, v := range vehicles {
		vp := &gtfsrtpb.VehiclePosition{}
		if v.id != "" || v.label != "" {
			vp.Vehicle = &gtfsrtpb.VehicleDescriptor{}
			if v.id != "" {
				vp.Vehicle.Id = proto.String(v.id)
			}
			if v.label != "" {
				vp.Vehicle.Label = proto.String(v.label)
			}
		}
		if !v.noPosition {
			vp.Position = &gtfsrtpb.Position{
				Latitude:  proto.Float32(v.lat),
				Longitude: proto.Float32(v.lon),
				Bearing:   proto.Float32(v.bearing),
				Odometer:  proto.Float64(v.odometer),
				Speed:     proto.Float32(v.speed),
			}
		}
		fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{Id: proto.String(v.entityID), Vehicle: vp})
	}
	data, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}
	return data
}

func TestDecode_VehiclesToUpdates(t *testing.T) {
	data := buildFeed(t, 100,
		vehicle{entityID: "e1", id: "V1", label: "Line 9", lat: 42.5, lon: 23.25, bearing: 90, odometer: 12400, speed: 10},
		vehicle{entityID: "e2", lat: 42.75, lon: 23.5, odometer: 600},
		vehicle{entityID: "e3", id: "V3", noPosition: true},
	)
	feed, err := Decode(data, ScoreOdometer)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if feed.Timestamp != 100 || feed.Skipped != 1 || len(feed.Updates) != 2 {
		t.Fatalf("feed = %+v", feed)
	}
	want := tracking.Update{ID: "V1", Name: "Line 9", Position: tracking.Position{Lat: 42.5, Lon: 23.25}, Heading: 90, Score: 12}
	if feed.Updates[0] != want {
		t.Errorf("first update = %+v, want %+v", feed.Updates[0], want)
	}
	if u := feed.Updates[1]; u.ID != "e2" || u.Name != "e2" || u.Score != 1 {
		t.Errorf("entity id fallback = %+v", u)
	}

	bySpeed, err := Decode(data, ScoreSpeed)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if bySpeed.Updates[0].Score != 36 {
		t.Errorf("speed score = %d, want 36", bySpeed.Updates[0].Score)
	}
	t.Logf("✓ decoded %d vehicles, skipped %d", len(feed.Updates), feed.Skipped)
}

func TestDecode_Garbage(t *testing.T) {
	if _, err := Decode([]byte{0xff, 0xff, 0xff}, ScoreOdometer); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPoller_FileSourceSkipsStaleFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicle-positions.pb")
	if err := os.WriteFile(path, buildFeed(t, 50, vehicle{entityID: "e1", id: "V1", lat: 1, lon: 1}), 0644); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	p := NewPoller(config.GTFSRTConfig{VehiclePositionsURL: path})

	var got []string
	h := func(u tracking.Update) { got = append(got, u.ID) }
	n, err := p.Poll(context.Background(), h)
	if err != nil || n != 1 {
		t.Fatalf("first Poll = (%d, %v)", n, err)
	}
	n, err = p.Poll(context.Background(), h)
	if err != nil || n != 0 {
		t.Fatalf("second Poll of the same feed = (%d, %v), want (0, nil)", n, err)
	}
	if len(got) != 1 {
		t.Errorf("updates = %v", got)
	}
}

func TestPoller_HTTPSource(t *testing.T) {
	var ts atomic.Uint64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buildFeed(t, ts.Add(1), vehicle{entityID: "e1", id: "V1", lat: 1, lon: 1}, vehicle{entityID: "e2", id: "V2", lat: 2, lon: 2}))
	}))
	defer srv.Close()

	p := NewPoller(config.GTFSRTConfig{VehiclePositionsURL: srv.URL, ReadIntervalMS: 20, TimeoutMS: 1000})
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	var count atomic.Int64
	err := p.Run(ctx, func(tracking.Update) { count.Add(1) })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run error = %v", err)
	}
	if count.Load() < 4 {
		t.Fatalf("delivered %d updates, want at least 4", count.Load())
	}
}

func TestPoller_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewPoller(config.GTFSRTConfig{VehiclePositionsURL: srv.URL})
	if _, err := p.Poll(context.Background(), func(tracking.Update) {}); err == nil {
		t.Fatal("expected HTTP error")
	}
}

func TestClient_EmptyPath(t *testing.T) {
	data, err := NewClient(0).Fetch(context.Background(), "")
	if data != nil || err != nil {
		t.Fatalf("Fetch(\"\") = (%v, %v), want (nil, nil)", data, err)
	}
}
