package flightmonitor

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/flightsim-monitor/formatter"
	"github.com/theoremus-urban-solutions/flightsim-monitor/render"
)

// ErrUnsupportedFormat is returned for response formats other than json and xml.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ResponseCache memoizes serialized snapshots until the monitor changes.
type ResponseCache struct {
	mu            sync.Mutex
	monitor       *Monitor
	layer         *render.Layer
	version       uint64
	responseCache map[string][]byte
	now           func() time.Time
}

func NewResponseCache(m *Monitor, layer *render.Layer) *ResponseCache {
	return &ResponseCache{
		monitor:       m,
		layer:         layer,
		responseCache: map[string][]byte{},
		now:           time.Now,
	}
}

func (rc *ResponseCache) memoKey(args ...string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(a)
	}
	return b.String()
}

// lookup drops stale responses and returns a cached one for key, if any.
// Caller holds rc.mu.
func (rc *ResponseCache) lookup(version uint64, key string) ([]byte, bool) {
	if version != rc.version {
		rc.version = version
		rc.responseCache = map[string][]byte{}
	}
	buf, ok := rc.responseCache[key]
	return buf, ok
}

// GetLeaderboardResponse returns the leaderboard serialized as json or xml.
func (rc *ResponseCache) GetLeaderboardResponse(format string) ([]byte, error) {
	if format != "json" && format != "xml" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	snap := rc.monitor.Snapshot()

	rc.mu.Lock()
	defer rc.mu.Unlock()
	key := rc.memoKey("leaderboard", format)
	if buf, ok := rc.lookup(snap.Version, key); ok {
		return buf, nil
	}
	res := formatter.WrapLeaderboard(snap.Entries, snap.Capacity, snap.Selected, rc.now())
	rb := formatter.NewResponseBuilder()
	var buf []byte
	if format == "xml" {
		buf = rb.BuildXML(res)
	} else {
		buf = rb.BuildJSON(res)
	}
	rc.responseCache[key] = buf
	return buf, nil
}

// GetFlightsGeoJSON returns the marker layer as a GeoJSON FeatureCollection.
func (rc *ResponseCache) GetFlightsGeoJSON() ([]byte, error) {
	if rc.layer == nil {
		return nil, errors.New("no marker layer attached")
	}
	version := rc.monitor.Version()

	rc.mu.Lock()
	defer rc.mu.Unlock()
	key := rc.memoKey("flights", "geojson")
	if buf, ok := rc.lookup(version, key); ok {
		return buf, nil
	}
	buf, err := formatter.NewResponseBuilder().BuildGeoJSON(rc.layer.Markers())
	if err != nil {
		return nil, fmt.Errorf("build geojson: %w", err)
	}
	rc.responseCache[key] = buf
	return buf, nil
}
