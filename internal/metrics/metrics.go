// Package metrics is a Prometheus-backed implementation of
// internal/bindings.Observer. It builds its collectors on its own
// *prometheus.Registry with manual prometheus.New*Vec construction and
// one explicit MustRegister call, rather than the global default
// registry promauto reaches for, so a host embedding the charge point
// core can mount its metrics at any path without fighting over the
// process-wide registry.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pazzk-labs/ocpp/internal/catalog"
)

// Metrics wraps the Prometheus collectors backing one Observer:
// message sends, drops, heartbeats, queue depth and FSM transitions.
type Metrics struct {
	registry *prometheus.Registry

	sendsTotal  *prometheus.CounterVec
	dropsTotal  *prometheus.CounterVec
	attempts    *prometheus.HistogramVec
	heartbeats  prometheus.Counter
	queueDepth  *prometheus.GaugeVec
	transitions *prometheus.CounterVec
}

// New builds a Metrics registered under namespace on a fresh registry.
// Callers that want to expose it alongside other collectors can pull the
// registry out with Registry() and mount it behind promhttp.HandlerFor.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		sendsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sends_total",
				Help:      "Total message send attempts by type and result.",
			},
			[]string{"type", "result"},
		),

		dropsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "drops_total",
				Help:      "Total messages dropped after exhausting their attempt budget, by type.",
			},
			[]string{"type"},
		),

		attempts: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "send_attempts",
				Help:      "Number of attempts taken for a message to succeed or be dropped.",
				Buckets:   []float64{1, 2, 3, 5, 8, 13},
			},
			[]string{"type"},
		),

		heartbeats: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "heartbeats_total",
				Help:      "Total synthesized Heartbeat requests.",
			},
		),

		queueDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "queue_depth",
				Help:      "Current length of each message pool queue.",
			},
			[]string{"queue"},
		),

		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "connector_transitions_total",
				Help:      "Total connector FSM transitions by connector id, from-state, and to-state.",
			},
			[]string{"connector", "from", "to"},
		),
	}

	registry.MustRegister(
		m.sendsTotal,
		m.dropsTotal,
		m.attempts,
		m.heartbeats,
		m.queueDepth,
		m.transitions,
	)
	return m
}

// Registry exposes the underlying *prometheus.Registry for mounting
// behind an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ObserveSend(msgType catalog.Type, attempt int, ok bool) {
	result := "ok"
	if !ok {
		result = "fail"
	}
	name := catalog.Stringify(msgType)
	m.sendsTotal.WithLabelValues(name, result).Inc()
	if ok {
		m.attempts.WithLabelValues(name).Observe(float64(attempt))
	}
}

func (m *Metrics) ObserveDrop(msgType catalog.Type, attempts int) {
	name := catalog.Stringify(msgType)
	m.dropsTotal.WithLabelValues(name).Inc()
	m.attempts.WithLabelValues(name).Observe(float64(attempts))
}

func (m *Metrics) ObserveHeartbeat() {
	m.heartbeats.Inc()
}

func (m *Metrics) ObserveQueueDepth(ready, wait, timer int) {
	m.queueDepth.WithLabelValues("ready").Set(float64(ready))
	m.queueDepth.WithLabelValues("wait").Set(float64(wait))
	m.queueDepth.WithLabelValues("timer").Set(float64(timer))
}

func (m *Metrics) ObserveTransition(connectorID int, from, to int) {
	m.transitions.WithLabelValues(strconv.Itoa(connectorID), strconv.Itoa(from), strconv.Itoa(to)).Inc()
}
