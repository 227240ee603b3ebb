// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	ConnectedPlayers prometheus.Gauge
	SeatedPlayers    prometheus.Gauge
	MessagesReceived prometheus.Counter
	TickDuration     prometheus.Histogram
	SnapshotBytes    prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		ConnectedPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_players",
			Help:      "Number of connected players",
		}),
		SeatedPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "seated_players",
			Help:      "Number of players seated on the bench",
		}),
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of client messages received",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Simulation tick processing time",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		SnapshotBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_bytes_total",
			Help:      "Total bytes of state_update frames broadcast",
		}),
	}

	prometheus.MustRegister(
		m.ConnectedPlayers,
		m.SeatedPlayers,
		m.MessagesReceived,
		m.TickDuration,
		m.SnapshotBytes,
	)

	return m
}

type Monitor struct {
	metrics   *Metrics
	startTime time.Time
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

// StartServer serves /metrics (and expvar) on a side address.
func (m *Monitor) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/vars", expvar.Handler())

	expvar.Publish("uptime_seconds", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))

	go http.ListenAndServe(addr, mux)
}

// --- world.Metrics implementation ---

func (m *Monitor) SetConnectedPlayers(n int) {
	m.metrics.ConnectedPlayers.Set(float64(n))
}

func (m *Monitor) SetSeatedPlayers(n int) {
	m.metrics.SeatedPlayers.Set(float64(n))
}

func (m *Monitor) ObserveTickDuration(d time.Duration) {
	m.metrics.TickDuration.Observe(d.Seconds())
}

func (m *Monitor) AddSnapshotBytes(n int) {
	m.metrics.SnapshotBytes.Add(float64(n))
}

func (m *Monitor) IncMessagesReceived() {
	m.metrics.MessagesReceived.Inc()
}
