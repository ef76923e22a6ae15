package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_updated_total",
		Help: "Total number of order updates committed",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of failed order mutations",
	}, []string{"reason"})

	UnresolvedProductsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_unresolved_products_total",
		Help: "Product IDs referenced by mutations that did not resolve to a catalog row",
	})

	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Total number of catalog products created",
	})

	RealtimeSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_subscribers",
		Help: "Number of live realtime subscribers",
	})

	BroadcastDeliveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "broadcast_delivered_total",
		Help: "Realtime events delivered to subscriber buffers",
	}, []string{"event"})

	BroadcastDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "broadcast_dropped_total",
		Help: "Realtime events dropped because a subscriber buffer was full",
	}, []string{"event"})

	StreamPublishFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stream_publish_failed_total",
		Help: "Order stream events that could not be written to Kafka",
	})

	SnapshotAssemblyLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "snapshot_assembly_latency_seconds",
		Help:    "Latency of denormalized snapshot assembly",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
