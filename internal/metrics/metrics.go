package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes recorded by RequestsTotal.
const (
	OutcomeDelivered     = "delivered"
	OutcomePreflight     = "preflight"
	OutcomeBadMethod     = "bad_method"
	OutcomeBadBody       = "bad_body"
	OutcomeNotConfigured = "not_configured"
	OutcomeDownstream    = "downstream_error"
	OutcomeInternal      = "internal_error"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_requests_total",
		Help: "Inbound webhook requests, labelled by event kind and outcome.",
	}, []string{"kind", "outcome"})

	DeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_deliveries_total",
		Help: "Outbound Slack deliveries, labelled by event kind and HTTP status class.",
	}, []string{"kind", "status"})

	DeliveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "relay_delivery_duration_ms",
		Help:    "Outbound Slack delivery latency in milliseconds.",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"kind"})

	RoutesConfigured = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_routes_configured",
		Help: "Number of relay routes with a resolved webhook destination.",
	})

	ConfigReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_config_reloads_total",
		Help: "Config reload attempts, labelled by result.",
	}, []string{"result"})
)
