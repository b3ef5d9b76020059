// Package metrics exposes Prometheus collectors for order lifecycle and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ordermart"

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics groups service collectors registered on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	transitions *prometheus.CounterVec
	refunds     *prometheus.CounterVec
	refundTime  prometheus.Histogram
	events      *prometheus.CounterVec
	requests    *prometheus.CounterVec
	latencyMS   *prometheus.HistogramVec
}

// New creates collectors and registers them together with runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Order lifecycle operations by action and result.",
		}, []string{"action", "result"}),
		refunds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "refunds_total",
			Help:      "Refund requests sent to the payment gateway.",
		}, []string{"result"}),
		refundTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "refund_duration_seconds",
			Help:      "Refund request latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "events_published_total",
			Help:      "Order events relayed from the outbox.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		latencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.transitions, m.refunds, m.refundTime, m.events, m.requests, m.latencyMS,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// ObserveTransition counts a lifecycle operation outcome.
func (m *Metrics) ObserveTransition(action string, err error) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, result(err)).Inc()
}

// ObserveRefund records a gateway round trip.
func (m *Metrics) ObserveRefund(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.refunds.WithLabelValues(result(err)).Inc()
	m.refundTime.Observe(d.Seconds())
}

// ObserveEvent counts a relayed outbox event.
func (m *Metrics) ObserveEvent(err error) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(result(err)).Inc()
}

// ObserveHTTP records a served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latencyMS.WithLabelValues(route).Observe(float64(d.Milliseconds()))
}
