package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCheckedOutTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_checked_out_total",
		Help: "Total number of successful checkouts",
	})

	CheckoutFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Total number of failed checkouts",
	}, []string{"reason"})

	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_total",
		Help: "Total number of order status transitions",
	}, []string{"to_status"})

	DiscountCodesIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discount_codes_issued_total",
		Help: "Total number of discount codes issued",
	})

	DiscountCodesRedeemedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discount_codes_redeemed_total",
		Help: "Total number of discount codes redeemed at checkout",
	})

	OrdersByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "orders_by_status",
		Help: "Current number of orders per lifecycle status",
	}, []string{"status"})

	ProductsInStock = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "products_in_stock",
		Help: "Current number of products with stock remaining",
	})

	DiscountCodesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "discount_codes_active",
		Help: "Current number of unused, unexpired discount codes",
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
