package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	lib "github.com/theoremus-urban-solutions/flightsim-monitor"
	"github.com/theoremus-urban-solutions/flightsim-monitor/config"
	"github.com/theoremus-urban-solutions/flightsim-monitor/gtfsrt"
	"github.com/theoremus-urban-solutions/flightsim-monitor/render"
	"github.com/theoremus-urban-solutions/flightsim-monitor/stream"
	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
)

func main() {
	mode := flag.String("mode", "serve", "serve|replay")
	feedName := flag.String("feed", "", "feed name from config.feeds[]")
	url := flag.String("url", "", "stream or vehicle positions URL (overrides config)")
	capacity := flag.Int("capacity", 0, "leaderboard capacity (overrides config)")
	input := flag.String("input", "", "replay input: file path or URL")
	format := flag.String("format", "json", "json|xml")
	flag.Parse()

	lib.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		log.Fatalf("load config: %v", err)
	}

	feed := config.SelectFeed(*feedName)
	if *url != "" {
		if feed.Source == config.SourceGTFSRT {
			feed.GTFSRT.VehiclePositionsURL = *url
		} else {
			feed.Stream.URL = *url
		}
	}
	size := config.Config.Ranking.Capacity
	if *capacity > 0 {
		size = *capacity
	}

	switch *mode {
	case "serve":
		if err := serve(feed, size); err != nil {
			log.Fatalf("serve: %v", err)
		}
	case "replay":
		buf, err := replayInput(context.Background(), feed, *input, size, *format)
		if err != nil {
			log.Fatalf("replay: %v", err)
		}
		fmt.Println(string(buf))
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

func serve(feed config.Feed, capacity int) error {
	metrics, err := lib.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	layer := render.NewLayer()
	monitor := lib.NewMonitor(capacity, layer, metrics)
	server := lib.NewServer(config.Config.Server, monitor, layer, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handle := func(u tracking.Update) { monitor.OnUpdate(u) }
	log.Printf("feed %s: source %s, capacity %d", feed.Name, feed.Source, monitor.Capacity())

	switch feed.Source {
	case config.SourceGTFSRT:
		poller := gtfsrt.NewPoller(feed.GTFSRT)
		poller.OnError = func(err error) {
			log.Printf("gtfsrt poll: %v", err)
			server.SetStreamStatus(lib.StreamDisconnected)
		}
		polled := func(u tracking.Update) {
			server.SetStreamStatus(lib.StreamConnected)
			handle(u)
		}
		go func() {
			if err := poller.Run(ctx, polled); err != nil && ctx.Err() == nil {
				log.Printf("gtfsrt poller stopped: %v", err)
			}
		}()
	default:
		client := stream.NewClient(feed.Stream)
		client.OnConnected = func() { server.SetStreamStatus(lib.StreamConnected) }
		client.OnDisconnected = func(err error) { server.SetStreamStatus(lib.StreamDisconnected) }
		client.OnDecodeError = func(raw []byte, err error) { metrics.DecodeError() }
		go func() {
			if err := client.Subscribe(ctx, handle); err != nil && ctx.Err() == nil {
				log.Printf("stream stopped: %v", err)
			}
		}()
	}

	server.Start()
	server.HandleGracefulShutdown(cancel)
	return nil
}
