package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartItemsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_items_added_total",
		Help: "Line items added to carts",
	})

	ordersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Orders handed off, by payment method",
	}, []string{"payment_method"})

	orderTotalAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_order_total_amount",
		Help:    "Order totals in BRL, delivery fee included",
		Buckets: []float64{15, 25, 40, 60, 80, 120, 200},
	})
)
