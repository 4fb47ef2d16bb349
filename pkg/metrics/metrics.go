// Package metrics exposes Prometheus instruments for storefront operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics groups the storefront's instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	operations      *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	catalogLoads    *prometheus.CounterVec
	balance         prometheus.Gauge
	cartItems       prometheus.Gauge
}

// New registers the instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_operations_total",
			Help: "Storefront operations by name and result.",
		}, []string{"op", "result"}),
		persistFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_persistence_failures_total",
			Help: "Write-through failures by storage key.",
		}, []string{"key"}),
		catalogLoads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_catalog_loads_total",
			Help: "Catalog loads by source (feed or fallback).",
		}, []string{"source"}),
		balance: f.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_balance",
			Help: "Current wallet balance.",
		}),
		cartItems: f.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_cart_items",
			Help: "Sum of quantities in the cart.",
		}),
	}
}

// Operation counts one operation outcome; result is "ok" or an error kind.
func (m *Metrics) Operation(op, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// PersistFailure counts a failed write of key.
func (m *Metrics) PersistFailure(key string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(key).Inc()
}

// CatalogLoaded counts a catalog load from source.
func (m *Metrics) CatalogLoaded(source string) {
	if m == nil {
		return
	}
	m.catalogLoads.WithLabelValues(source).Inc()
}

// State records the current balance and cart size.
func (m *Metrics) State(balance decimal.Decimal, items int) {
	if m == nil {
		return
	}
	m.balance.Set(balance.InexactFloat64())
	m.cartItems.Set(float64(items))
}
