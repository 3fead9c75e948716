package flightmonitor

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors fed by the monitor. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	Updates         *prometheus.CounterVec
	RankRejections  prometheus.Counter
	TrackedFlights  prometheus.Gauge
	LeaderboardSize prometheus.Gauge
	DecodeErrors    prometheus.Counter
}

// NewMetrics registers the monitor metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	updates, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flightmon_updates_total",
		Help: "Flight updates applied, labeled by outcome (created, updated, dropped).",
	}, []string{"outcome"}), "flightmon_updates_total")
	if err != nil {
		return nil, err
	}
	rejections, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flightmon_rank_rejections_total",
		Help: "Score changes that could not enter the leaderboard.",
	}), "flightmon_rank_rejections_total")
	if err != nil {
		return nil, err
	}
	tracked, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flightmon_tracked_flights",
		Help: "Current number of tracked flights.",
	}), "flightmon_tracked_flights")
	if err != nil {
		return nil, err
	}
	size, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flightmon_leaderboard_size",
		Help: "Current number of leaderboard entries.",
	}), "flightmon_leaderboard_size")
	if err != nil {
		return nil, err
	}
	decodeErrors, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flightmon_decode_errors_total",
		Help: "Transport messages that could not be decoded into an update.",
	}), "flightmon_decode_errors_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		gatherer:        gatherer,
		Updates:         updates,
		RankRejections:  rejections,
		TrackedFlights:  tracked,
		LeaderboardSize: size,
		DecodeErrors:    decodeErrors,
	}, nil
}

// Handler exposes the registered metrics over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// DecodeError counts a transport message that was dropped before reaching the monitor.
func (m *Metrics) DecodeError() {
	if m == nil {
		return
	}
	m.DecodeErrors.Inc()
}

func (m *Metrics) observeUpdate(o Outcome) {
	if m == nil {
		return
	}
	switch {
	case o.Dropped:
		m.Updates.WithLabelValues("dropped").Inc()
		return
	case o.Created:
		m.Updates.WithLabelValues("created").Inc()
	default:
		m.Updates.WithLabelValues("updated").Inc()
	}
	if o.ScoreChanged && !o.RankChanged {
		m.RankRejections.Inc()
	}
}

func (m *Metrics) observeSizes(tracked, ranked int) {
	if m == nil {
		return
	}
	m.TrackedFlights.Set(float64(tracked))
	m.LeaderboardSize.Set(float64(ranked))
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return g, nil
}
