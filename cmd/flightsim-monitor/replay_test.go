package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/flightsim-monitor/config"
	"github.com/theoremus-urban-solutions/flightsim-monitor/formatter"
	"github.com/theoremus-urban-solutions/flightsim-monitor/stream"
	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
)

func recording(t *testing.T, updates ...tracking.Update) string {
	t.Helper()
	var lines []string
	for _, u := range updates {
		b, err := stream.Encode(u)
		if err != nil {
			t.Fatalf("encode %s: %v", u.ID, err)
		}
		lines = append(lines, string(b))
	}
	return strings.Join(lines, "\n")
}

func TestReplay_Leaderboard(t *testing.T) {
	data := recording(t,
		tracking.Update{ID: "A", Name: "Alpha", Position: tracking.Position{Lat: 35, Lon: 139}, Score: 80},
		tracking.Update{ID: "B", Name: "Bravo", Position: tracking.Position{Lat: 35, Lon: 139}, Score: 90},
		tracking.Update{ID: "C", Name: "Charlie", Position: tracking.Position{Lat: 35, Lon: 139}, Score: 70},
	)
	data += "\n\nnot a graphic\n"

	buf, err := replay([]byte(data), config.Feed{Source: config.SourceArcGIS}, 2, "json")
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	var res formatter.LeaderboardResponse
	if err := json.Unmarshal(buf, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Entries) != 2 || res.Entries[0].ID != "B" || res.Entries[1].ID != "A" {
		t.Fatalf("unexpected leaderboard %+v", res.Entries)
	}
	t.Logf("✓ replayed leaderboard: %s", buf)
}

func TestReplayInput_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flights.ndjson")
	data := recording(t, tracking.Update{ID: "JA01", Position: tracking.Position{Lat: 1, Lon: 2}, Score: 5})
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	buf, err := replayInput(context.Background(), config.Feed{Source: config.SourceArcGIS}, path, 10, "xml")
	if err != nil {
		t.Fatalf("replayInput: %v", err)
	}
	if !strings.Contains(string(buf), `id="JA01"`) {
		t.Fatalf("unexpected xml: %s", buf)
	}
}

func TestReplayInput_Errors(t *testing.T) {
	feed := config.Feed{Source: config.SourceArcGIS}
	if _, err := replayInput(context.Background(), feed, "", 10, "json"); err == nil {
		t.Fatalf("expected error for missing input")
	}
	if _, err := replayInput(context.Background(), feed, filepath.Join(t.TempDir(), "missing"), 10, "json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := replay(nil, feed, 10, "yaml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
