package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	lib "github.com/theoremus-urban-solutions/flightsim-monitor"
	"github.com/theoremus-urban-solutions/flightsim-monitor/config"
	"github.com/theoremus-urban-solutions/flightsim-monitor/gtfsrt"
	"github.com/theoremus-urban-solutions/flightsim-monitor/stream"
)

const replayTimeout = 30 * time.Second

// replayInput fetches a recorded feed from a file or URL and replays it.
func replayInput(ctx context.Context, feed config.Feed, input string, capacity int, format string) ([]byte, error) {
	if input == "" {
		return nil, errors.New("-input is required in replay mode")
	}
	data, err := gtfsrt.NewClient(replayTimeout).Fetch(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", input, err)
	}
	return replay(data, feed, capacity, format)
}

// replay feeds recorded messages through a fresh monitor and returns the
// resulting leaderboard. ArcGIS input holds one graphic per line; GTFS-RT
// input is a single FeedMessage.
func replay(data []byte, feed config.Feed, capacity int, format string) ([]byte, error) {
	monitor := lib.NewMonitor(capacity, nil, nil)

	switch feed.Source {
	case config.SourceGTFSRT:
		decoded, err := gtfsrt.Decode(data, feed.GTFSRT.ScoreField)
		if err != nil {
			return nil, err
		}
		for _, u := range decoded.Updates {
			monitor.OnUpdate(u)
		}
	default:
		sc := bufio.NewScanner(bytes.NewReader(data))
		sc.Buffer(make([]byte, 0, 64*1024), config.DefaultReadLimitBytes)
		line := 0
		for sc.Scan() {
			line++
			raw := bytes.TrimSpace(sc.Bytes())
			if len(raw) == 0 {
				continue
			}
			u, err := stream.Decode(raw)
			if err != nil {
				log.Printf("replay line %d: %v", line, err)
				continue
			}
			monitor.OnUpdate(u)
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read replay input: %w", err)
		}
	}

	st := monitor.Stats()
	log.Printf("replayed %d flights, %d ranked", st.Tracked, st.Ranked)
	return lib.NewResponseCache(monitor, nil).GetLeaderboardResponse(format)
}
