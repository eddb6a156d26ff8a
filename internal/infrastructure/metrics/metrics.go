// Package metrics registra las métricas Prometheus del servicio.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores del servicio sobre un registro propio.
type Metrics struct {
	registry        *prometheus.Registry
	commits         *prometheus.CounterVec
	commitDuration  prometheus.Histogram
	persistFailures prometheus.Counter
	resolutions     *prometheus.CounterVec
	stateVersion    prometheus.Gauge
}

// New crea y registra los colectores. namespace prefija todas las métricas.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_commits_total",
			Help:      "Commits sobre el estado por operación y resultado.",
		}, []string{"op", "result"}),
		commitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "state_commit_duration_seconds",
			Help:      "Duración de un commit, incluida la persistencia.",
			Buckets:   prometheus.DefBuckets,
		}),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_persist_failures_total",
			Help:      "Snapshots que no se pudieron persistir.",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_resolutions_total",
			Help:      "Resoluciones de catálogo efectivo por tipo y origen.",
		}, []string{"kind", "source"}),
		stateVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "state_version",
			Help:      "Versión actual del estado.",
		}),
	}
	reg.MustRegister(
		m.commits, m.commitDuration, m.persistFailures, m.resolutions, m.stateVersion,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveCommit registra un commit. err != nil cuenta como fallo.
func (m *Metrics) ObserveCommit(op string, started time.Time, version uint64, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.commits.WithLabelValues(op, result).Inc()
	m.commitDuration.Observe(time.Since(started).Seconds())
	if err == nil {
		m.stateVersion.Set(float64(version))
	}
}

// PersistFailed cuenta un fallo de persistencia.
func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

// Resolved cuenta una resolución; source es "cache" o "resolver".
func (m *Metrics) Resolved(kind, source string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(kind, source).Inc()
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registro subyacente (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
