// Package metrics exposes Prometheus collectors for the order pipeline.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "printfarm"

type Metrics struct {
	registry *prometheus.Registry

	DomainEvents        *prometheus.CounterVec
	StockUnits          *prometheus.CounterVec
	ReservationDrift    *prometheus.GaugeVec
	AuditRuns           *prometheus.CounterVec
	AuditLastRun        prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.DomainEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Domain events dispatched after commit",
		},
		[]string{"event_type"},
	)
	m.StockUnits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_units_moved_total",
			Help:      "Units moved through the stock ledger, by movement kind",
		},
		[]string{"kind"},
	)
	m.ReservationDrift = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reservation_drift_units",
			Help:      "Reserved stock minus the quantity held by live orders, per drifting product",
		},
		[]string{"product_code"},
	)
	m.AuditRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_audit_runs_total",
			Help:      "Reservation audit runs by outcome",
		},
		[]string{"result"},
	)
	m.AuditLastRun = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reservation_audit_last_run_timestamp_seconds",
			Help:      "Unix time of the last completed reservation audit",
		},
	)
	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	registry.MustRegister(
		m.DomainEvents,
		m.StockUnits,
		m.ReservationDrift,
		m.AuditRuns,
		m.AuditLastRun,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

// Publish counts events. It never fails, so it can sit next to a real
// publisher in the unit of work.
func (m *Metrics) Publish(_ context.Context, events ...kernel.DomainEvent) error {
	for _, e := range events {
		m.DomainEvents.WithLabelValues(e.EventType()).Inc()

		mv, ok := e.(product.StockMovement)
		if !ok {
			continue
		}
		units := abs(mv.AvailableDelta)
		if units == 0 {
			units = abs(mv.ReservedDelta)
		}
		m.StockUnits.WithLabelValues(string(mv.Kind)).Add(float64(units))
	}
	return nil
}

// RecordAudit replaces the drift gauges with the latest audit result.
func (m *Metrics) RecordAudit(drifts map[string]int) {
	m.ReservationDrift.Reset()
	for code, drift := range drifts {
		m.ReservationDrift.WithLabelValues(code).Set(float64(drift))
	}

	result := "clean"
	if len(drifts) > 0 {
		result = "drift"
	}
	m.AuditRuns.WithLabelValues(result).Inc()
	m.AuditLastRun.SetToCurrentTime()
}

func (m *Metrics) RecordAuditFailure() {
	m.AuditRuns.WithLabelValues("error").Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
