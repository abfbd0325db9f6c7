// Package metrics defines and registers all custom Prometheus metrics for the
// store management API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via promauto;
// HTTP-level request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "store"

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success", "failure", or "locked" (rejected by the lockout)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ProductsCreatedTotal counts products added to the catalog.
// Label:
//   - category: the product category (e.g. "Electronics")
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products added to the catalog, by category.",
	},
	[]string{"category"},
)

// ProductsDeletedTotal counts products removed from the catalog.
var ProductsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_deleted_total",
		Help:      "Total number of products deleted from the catalog.",
	},
)

// StockUpdatesTotal counts stock mutations.
// Label:
//   - op: "set", "increment", or "decrement"
var StockUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_updates_total",
		Help:      "Total number of stock quantity mutations, by operation.",
	},
	[]string{"op"},
)
