package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is nil-safe so unit tests can pass nil.
type Metrics struct {
	gatewayRequests     *prometheus.CounterVec
	gatewayDuration     *prometheus.HistogramVec
	reconciliations     *prometheus.CounterVec
	webhookEvents       *prometheus.CounterVec
	correlationDegraded prometheus.Counter
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authnet_gateway_requests_total",
			Help: "Outbound payment gateway requests by operation and result.",
		}, []string{"operation", "result"}),
		gatewayDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "authnet_gateway_request_duration_seconds",
			Help:    "Outbound payment gateway latency.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		}, []string{"operation"}),
		reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "broker_reconciliations_total",
			Help: "Reconciled payment outcomes by source and status.",
		}, []string{"source", "status"}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "broker_webhook_events_total",
			Help: "Received webhook events by type and outcome.",
		}, []string{"event_type", "outcome"}),
		correlationDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "broker_correlation_store_degraded_total",
			Help: "Tokens issued without a durable correlation record.",
		}),
	}
	for _, c := range []prometheus.Collector{m.gatewayRequests, m.gatewayDuration, m.reconciliations, m.webhookEvents, m.correlationDegraded} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func (m *Metrics) ObserveGatewayCall(operation, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.gatewayRequests.WithLabelValues(operation, result).Inc()
	m.gatewayDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) RecordReconciliation(source, status string) {
	if m == nil {
		return
	}
	m.reconciliations.WithLabelValues(source, status).Inc()
}

func (m *Metrics) RecordWebhookEvent(eventType, outcome string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(eventType, outcome).Inc()
}

func (m *Metrics) RecordCorrelationDegraded() {
	if m == nil {
		return
	}
	m.correlationDegraded.Inc()
}
