package gtfsrt

import (
	"context"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/flightsim-monitor/config"
	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
)

// Poller reads a VehiclePositions feed on an interval.
type Poller struct {
	client     *Client
	url        string
	interval   time.Duration
	scoreField string

	lastTimestamp int64
	OnError       func(err error)
}

// NewPoller creates a poller for the configured feed.
func NewPoller(cfg config.GTFSRTConfig) *Poller {
	interval := time.Duration(cfg.ReadIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = time.Duration(config.DefaultGTFSRTIntervalMS) * time.Millisecond
	}
	return &Poller{
		client:     NewClient(time.Duration(cfg.TimeoutMS) * time.Millisecond),
		url:        cfg.VehiclePositionsURL,
		interval:   interval,
		scoreField: cfg.ScoreField,
	}
}

// Poll fetches the feed once and delivers its updates in feed order. A feed
// whose header timestamp is not newer than the last delivered one is ignored.
// It returns the number of updates delivered.
func (p *Poller) Poll(ctx context.Context, h func(tracking.Update)) (int, error) {
	data, err := p.client.Fetch(ctx, p.url)
	if err != nil {
		return 0, err
	}
	feed, err := Decode(data, p.scoreField)
	if err != nil {
		return 0, err
	}
	if feed.Timestamp != 0 && feed.Timestamp <= p.lastTimestamp {
		return 0, nil
	}
	if feed.Timestamp != 0 {
		p.lastTimestamp = feed.Timestamp
	}
	if feed.Skipped > 0 {
		log.Printf("gtfsrt: skipped %d entities without vehicle position", feed.Skipped)
	}
	for _, u := range feed.Updates {
		h(u)
	}
	return len(feed.Updates), nil
}

// Run polls until ctx is done. Fetch and decode errors are reported and the
// next tick tries again.
func (p *Poller) Run(ctx context.Context, h func(tracking.Update)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		if _, err := p.Poll(ctx, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if p.OnError != nil {
				p.OnError(err)
			} else {
				log.Printf("gtfsrt poll %s: %v", p.url, err)
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
