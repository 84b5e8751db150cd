// Package metrics holds the Prometheus collectors exported by the storefront.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "omareats"

var (
	// CartMutations counts cart writes by operation (add, remove, clear).
	CartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Number of cart mutations by operation.",
	}, []string{"operation"})

	// CartStoreFailures counts swallowed cart storage failures by kind (read, decode, write).
	CartStoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_store_failures_total",
		Help:      "Number of cart storage failures that were recovered locally.",
	}, []string{"kind"})

	// CheckoutSubmissions counts checkout attempts by outcome.
	CheckoutSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_submissions_total",
		Help:      "Number of order submissions by outcome.",
	}, []string{"outcome"})

	OrdersAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_accepted_total",
		Help:      "Number of orders accepted by the order endpoint.",
	})
)
