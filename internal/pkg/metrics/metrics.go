// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 业务指标。所有指标通过 promauto 注册到默认 Registry，
// 由各服务的 /metrics 端点暴露。
var (
	ReservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_reservations_created_total",
		Help: "Number of reservations created or merged onto existing ones.",
	})

	ReservationsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_reservations_expired_total",
		Help: "Number of reservations removed by the timeout collector.",
	})

	CartsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_carts_expired_total",
		Help: "Number of carts removed by the timeout collector.",
	})

	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Number of confirmed orders by final status.",
	}, []string{"status"})

	PaymentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_payment_failures_total",
		Help: "Number of failed payment provider calls, after retries.",
	})
)
