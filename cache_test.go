package flightmonitor

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/flightsim-monitor/render"
	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
)

func TestResponseCache_ReusesUntilVersionChanges(t *testing.T) {
	m := NewMonitor(3, nil, nil)
	m.OnUpdate(tracking.Update{ID: "A", Score: 10})
	rc := NewResponseCache(m, nil)

	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rc.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	first, err := rc.GetLeaderboardResponse("json")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, _ := rc.GetLeaderboardResponse("json")
	if !bytes.Equal(first, second) {
		t.Fatalf("expected cached response to be reused")
	}

	m.OnUpdate(tracking.Update{ID: "B", Score: 20})
	third, _ := rc.GetLeaderboardResponse("json")
	if bytes.Equal(first, third) {
		t.Fatalf("expected fresh response after an update")
	}
	if !bytes.Contains(third, []byte(`"id":"B"`)) {
		t.Fatalf("fresh response missing B: %s", third)
	}
	t.Logf("✓ cache invalidated on version change")
}

func TestResponseCache_FormatsAreSeparate(t *testing.T) {
	m := NewMonitor(3, nil, nil)
	m.OnUpdate(tracking.Update{ID: "A", Score: 10})
	rc := NewResponseCache(m, nil)

	js, _ := rc.GetLeaderboardResponse("json")
	x, _ := rc.GetLeaderboardResponse("xml")
	if bytes.Equal(js, x) {
		t.Fatalf("json and xml share a cache slot")
	}
	if _, err := rc.GetLeaderboardResponse("csv"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("csv err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestResponseCache_GeoJSON(t *testing.T) {
	layer := render.NewLayer()
	m := NewMonitor(3, layer, nil)
	m.OnUpdate(tracking.Update{ID: "A", Position: tracking.Position{Lat: 1, Lon: 2}, Score: 10})
	rc := NewResponseCache(m, layer)

	buf, err := rc.GetFlightsGeoJSON()
	if err != nil {
		t.Fatalf("geojson: %v", err)
	}
	if !bytes.Contains(buf, []byte(`"coordinates":[2,1]`)) {
		t.Fatalf("unexpected geojson: %s", buf)
	}

	if _, err := NewResponseCache(m, nil).GetFlightsGeoJSON(); err == nil {
		t.Fatalf("expected error without a layer")
	}
}

func TestResponseCache_XMLStaysWellFormed(t *testing.T) {
	m := NewMonitor(3, nil, nil)
	m.OnUpdate(tracking.Update{ID: "A", Name: "Pilot\u0001X", Score: 10})
	buf, err := NewResponseCache(m, nil).GetLeaderboardResponse("xml")
	if err != nil {
		t.Fatalf("xml: %v", err)
	}
	dec := xml.NewDecoder(bytes.NewReader(buf))
	for {
		_, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("leaderboard xml does not parse: %v\n%s", err, buf)
		}
	}
}
