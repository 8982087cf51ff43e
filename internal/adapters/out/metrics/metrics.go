// Package metrics exposes ordering activity as Prometheus metrics on a
// private registry.
package metrics

import (
	"net/http"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orderdesk"

type Collector struct {
	registry *prometheus.Registry

	submitted      prometheus.Counter
	failures       *prometheus.CounterVec
	advanced       *prometheus.CounterVec
	boardOrders    *prometheus.GaugeVec
	streamDegraded prometheus.Gauge
	liveViewers    prometheus.Gauge
	cartSessions   prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_submitted_total",
			Help:      "Orders accepted by the store.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_submission_failures_total",
			Help:      "Rejected or failed submissions by error kind.",
		}, []string{"kind"}),
		advanced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Status advances by resulting status.",
		}, []string{"status"}),
		boardOrders: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "board_orders",
			Help:      "Orders in the latest snapshot by status.",
		}, []string{"status"}),
		streamDegraded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "order_stream_degraded",
			Help:      "1 while the order change stream is degraded.",
		}),
		liveViewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_viewers",
			Help:      "Attached live board viewers.",
		}),
		cartSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_sessions",
			Help:      "Open cart sessions.",
		}),
	}

	c.registry.MustRegister(
		c.submitted,
		c.failures,
		c.advanced,
		c.boardOrders,
		c.streamDegraded,
		c.liveViewers,
		c.cartSessions,
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) OrderSubmitted() {
	c.submitted.Inc()
}

func (c *Collector) SubmissionFailed(kind errs.Kind) {
	c.failures.WithLabelValues(string(kind)).Inc()
}

func (c *Collector) StatusAdvanced(status order.Status) {
	c.advanced.WithLabelValues(status.String()).Inc()
}

func (c *Collector) ViewerAttached() {
	c.liveViewers.Inc()
}

func (c *Collector) ViewerDetached() {
	c.liveViewers.Dec()
}

func (c *Collector) SetCartSessions(n int) {
	c.cartSessions.Set(float64(n))
}

// ObserveSnapshot records the per-status order counts and the stream health.
// A degraded snapshot leaves the last known counts in place.
func (c *Collector) ObserveSnapshot(s ports.Snapshot) {
	if s.IsDegraded() {
		c.streamDegraded.Set(1)
		return
	}
	c.streamDegraded.Set(0)

	counts := make(map[order.Status]int, len(order.Statuses()))
	for _, o := range s.Orders {
		counts[o.Status()]++
	}
	for _, status := range order.Statuses() {
		c.boardOrders.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
}
