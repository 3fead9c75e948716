package flightmonitor

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/flightsim-monitor/config"
	"github.com/theoremus-urban-solutions/flightsim-monitor/render"
)

// Stream connection states reported by /api/health.
const (
	StreamIdle         = "idle"
	StreamConnected    = "connected"
	StreamDisconnected = "disconnected"
)

// Server exposes the monitor over HTTP.
type Server struct {
	monitor *Monitor
	metrics *Metrics
	cache   *ResponseCache
	stream  atomic.Value
	httpSrv *http.Server
}

// NewServer wires the routes for monitor. layer and metrics may be nil; the
// corresponding endpoints then answer 404.
func NewServer(cfg config.ServerConfig, monitor *Monitor, layer *render.Layer, metrics *Metrics) *Server {
	s := &Server{
		monitor: monitor,
		metrics: metrics,
		cache:   NewResponseCache(monitor, layer),
	}
	s.stream.Store(StreamIdle)

	port := cfg.Port
	if port == 0 {
		port = config.DefaultPort
	}
	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.routes(layer != nil),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes(withLayer bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/leaderboard.json", s.handleLeaderboard("json"))
	mux.HandleFunc("GET /api/leaderboard.xml", s.handleLeaderboard("xml"))
	mux.HandleFunc("GET /api/flights/{id}", s.handleFlight)
	mux.HandleFunc("POST /api/select", s.handleSelect)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	if withLayer {
		mux.HandleFunc("GET /api/flights.geojson", s.handleFlightsGeoJSON)
	}
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return mux
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

// Addr is the listen address.
func (s *Server) Addr() string { return s.httpSrv.Addr }

// SetStreamStatus records the upstream connection state.
func (s *Server) SetStreamStatus(status string) { s.stream.Store(status) }

func (s *Server) StreamStatus() string {
	v, _ := s.stream.Load().(string)
	return v
}

// Start listens in the background. A listen failure other than a clean
// shutdown is fatal.
func (s *Server) Start() {
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", s.httpSrv.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then cancels the
// stream via cancel and shuts the server down.
func (s *Server) HandleGracefulShutdown(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	if cancel != nil {
		cancel()
	}
	ctx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := s.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}
