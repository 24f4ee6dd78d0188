package metrics_test

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Spok95/furniture-db/internal/infra/metrics"
)

func TestObserveStore(t *testing.T) {
	c := qt.New(t)

	m := metrics.New(prometheus.NewRegistry())
	m.ObserveStore("add_product", "ok", time.Now())
	m.ObserveStore("add_product", "ok", time.Now())
	m.ObserveStore("add_product", "constraint_violation", time.Now())

	c.Assert(testutil.ToFloat64(m.StoreOps.WithLabelValues("add_product", "ok")), qt.Equals, 2.0)
	c.Assert(testutil.ToFloat64(m.StoreOps.WithLabelValues("add_product", "constraint_violation")), qt.Equals, 1.0)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveStore("x", "ok", time.Now())
	m.ObserveHTTP("GET", "/", "200")
}
