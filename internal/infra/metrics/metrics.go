package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	StoreOps      *prometheus.CounterVec
	StoreDuration *prometheus.HistogramVec
	HTTPRequests  *prometheus.CounterVec
}

// New регистрирует метрики в reg; nil: prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		StoreOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "furniture",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by result.",
		}, []string{"op", "result"}),
		StoreDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "furniture",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Store operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "furniture",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.StoreOps, m.StoreDuration, m.HTTPRequests)
	return m
}

// ObserveStore учитывает одну операцию хранилища. result: "ok" или вид ошибки.
func (m *Metrics) ObserveStore(op, result string, started time.Time) {
	if m == nil {
		return
	}
	m.StoreOps.WithLabelValues(op, result).Inc()
	m.StoreDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveHTTP(method, route, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
}
