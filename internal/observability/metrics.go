// Package observability exposes the service's Prometheus metrics.
// Counters are registered on the default registry and served on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DispatchAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "routex", Name: "dispatch_attempts_total",
		Help: "Total dispatch attempts"})
	DispatchAssignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "routex", Name: "dispatch_assigned_total",
		Help: "Dispatches that ended in an assignment"})
	DispatchNoDriverTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "routex", Name: "dispatch_no_driver_total",
		Help: "Dispatches that found no available driver"})

	StaleLocationDropsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "routex", Name: "stale_location_drops_total",
		Help: "Location reports dropped for arriving out of order"})

	BroadcastDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "routex", Name: "broadcast_dropped_total",
		Help: "Events dropped on overflowing subscriber queues"})
	BroadcastSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "routex", Name: "broadcast_subscribers",
		Help: "Currently attached event subscribers"})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "routex", Name: "orders_created_total",
		Help: "Orders accepted"})
	OrdersDeliveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "routex", Name: "orders_delivered_total",
		Help: "Orders delivered"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "routex", Name: "http_requests_total",
			Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
)
