package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "route"})

	ProviderRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_provider_requests_total",
		Help: "Calls to payment providers by outcome",
	}, []string{"provider", "outcome"})

	WebhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_webhook_events_total",
		Help: "Inbound provider webhooks by reconciliation outcome",
	}, []string{"provider", "event", "outcome"})

	SideEffectTasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_side_effect_tasks_total",
		Help: "Post-payment side effects by result",
	}, []string{"task", "result"})

	AutomationDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_automation_deliveries_total",
		Help: "Automation webhook deliveries by payload kind and result",
	}, []string{"kind", "result"})
)
