// Package metrics provides observability for repool pools using Prometheus
// metrics. A Collector implements the pool.Instrument interface, so wiring
// it into a pool or registry exposes acquire/release activity and free-list
// occupancy without the core pooling code importing Prometheus.
//
// # Basic Usage
//
//	collector := metrics.NewCollector()
//
//	bufPool := pool.New(
//	    func() *Buffer { return &Buffer{} },
//	    pool.WithName[*Buffer]("buffer"),
//	    pool.WithInstrument[*Buffer](collector),
//	)
//
//	// or for every pool a registry creates:
//	reg := registry.New(registry.WithInstrument(collector))
//
// # Exposed Metrics
//
// Counter repool_acquires_total{pool, outcome}: acquisitions per pool, with
// outcome "reused" (served from the free list) or "created" (manufactured by
// the factory). The created/reused ratio is the pool's effectiveness.
//
// Counter repool_releases_total{pool}: instances returned per pool.
//
// Gauge repool_available_instances{pool}: current free-list size per pool.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for the acquire outcome.
const (
	outcomeReused  = "reused"
	outcomeCreated = "created"
)

var (
	// Acquires tracks the total number of pool acquisitions.
	// Labels: pool (pool name), outcome (reused/created)
	Acquires = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_acquires_total",
			Help: "Total number of pool acquisitions",
		},
		[]string{"pool", "outcome"},
	)

	// Releases tracks the total number of instances returned to pools.
	// Labels: pool (pool name)
	Releases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_releases_total",
			Help: "Total number of instances returned to pools",
		},
		[]string{"pool"},
	)

	// Available tracks current free-list occupancy per pool.
	// Labels: pool (pool name)
	Available = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "repool_available_instances",
			Help: "Current number of instances available for reuse",
		},
		[]string{"pool"},
	)
)

// Collector records pool activity into Prometheus metrics. It satisfies
// pool.Instrument and may be shared by any number of pools; the pool name
// label keeps their series apart.
type Collector struct {
	acquires  *prometheus.CounterVec
	releases  *prometheus.CounterVec
	available *prometheus.GaugeVec
}

// NewCollector creates a collector backed by the package-level metrics
// registered with the default Prometheus registerer.
func NewCollector() *Collector {
	return &Collector{
		acquires:  Acquires,
		releases:  Releases,
		available: Available,
	}
}

// NewCollectorWith creates a collector that registers its metrics with the
// given registerer instead of the default one. Tests use this with a fresh
// prometheus.NewRegistry to avoid cross-test series pollution.
func NewCollectorWith(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		acquires: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repool_acquires_total",
				Help: "Total number of pool acquisitions",
			},
			[]string{"pool", "outcome"},
		),
		releases: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repool_releases_total",
				Help: "Total number of instances returned to pools",
			},
			[]string{"pool"},
		),
		available: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "repool_available_instances",
				Help: "Current number of instances available for reuse",
			},
			[]string{"pool"},
		),
	}
}

// ObserveAcquire records an acquisition for the named pool. A reused
// acquisition also shrinks the free list, so the availability gauge drops.
func (c *Collector) ObserveAcquire(pool string, reused bool) {
	if reused {
		c.acquires.WithLabelValues(pool, outcomeReused).Inc()
		c.available.WithLabelValues(pool).Dec()
		return
	}
	c.acquires.WithLabelValues(pool, outcomeCreated).Inc()
}

// ObserveRelease records a release for the named pool and pins the
// availability gauge to the free-list size reported by the pool.
func (c *Collector) ObserveRelease(pool string, available int) {
	c.releases.WithLabelValues(pool).Inc()
	c.available.WithLabelValues(pool).Set(float64(available))
}
