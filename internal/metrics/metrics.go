package metrics

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	vm "github.com/VictoriaMetrics/metrics"
	gm "github.com/rcrowley/go-metrics"
)

// Instrumentation collects occupancy and latency metrics for one client.
// It is safe for concurrent use. The zero value is not usable - create
// one with New.
type Instrumentation struct {
	set      *vm.Set
	registry gm.Registry
	// occupancy maps a node to its latest *poolOccupancy, read by its gauges.
	occupancy sync.Map
}

type poolOccupancy struct{ live, idle atomic.Int64 }

// New creates an Instrumentation scoped to its own VictoriaMetrics set, so
// multiple Clients in the same process do not collide on metric names.
func New() *Instrumentation {
	return &Instrumentation{
		set:      vm.NewSet(),
		registry: gm.NewRegistry(),
	}
}

// WritePrometheus writes every registered VictoriaMetrics metric in
// Prometheus exposition format.
func (i *Instrumentation) WritePrometheus(w io.Writer) {
	i.set.WritePrometheus(w)
}

// LatencySnapshot is a point-in-time read of one operation's go-metrics
// timer.
type LatencySnapshot struct {
	Count  int64
	Mean   float64
	P99    float64
	RateMS float64
}

// LatencyFor returns the current snapshot for an operation's timer, or the
// zero value if nothing has been recorded for it yet.
func (i *Instrumentation) LatencyFor(op string) LatencySnapshot {
	v := i.registry.Get(timerName(op))
	t, ok := v.(gm.Timer)
	if !ok {
		return LatencySnapshot{}
	}
	snap := t.Snapshot()
	return LatencySnapshot{
		Count:  snap.Count(),
		Mean:   snap.Mean(),
		P99:    snap.Percentile(0.99),
		RateMS: t.RateMean(),
	}
}

// ObserveOperation records how long op took against its go-metrics timer.
func (i *Instrumentation) ObserveOperation(op string, d time.Duration) {
	timer := gm.GetOrRegisterTimer(timerName(op), i.registry)
	timer.Update(d)
}

// SetPoolOccupancy publishes live/idle connection counts for one node's
// pool as VictoriaMetrics gauges.
func (i *Instrumentation) SetPoolOccupancy(node string, live, idle int) {
	v, _ := i.occupancy.LoadOrStore(node, &poolOccupancy{})
	occ := v.(*poolOccupancy)
	occ.live.Store(int64(live))
	occ.idle.Store(int64(idle))
	i.set.GetOrCreateGauge(gaugeName("riak_pool_live_connections", node), func() float64 {
		return float64(occ.live.Load())
	})
	i.set.GetOrCreateGauge(gaugeName("riak_pool_idle_connections", node), func() float64 {
		return float64(occ.idle.Load())
	})
}

// NodeCooldown implements cluster.Observer.
func (i *Instrumentation) NodeCooldown(addr string) {
	i.set.GetOrCreateCounter(counterName("riak_node_cooldowns_total", addr)).Inc()
}

// NodeRecovered implements cluster.Observer.
func (i *Instrumentation) NodeRecovered(addr string) {
	i.set.GetOrCreateCounter(counterName("riak_node_recoveries_total", addr)).Inc()
}

// RequestRetried implements cluster.Observer.
func (i *Instrumentation) RequestRetried(addr string) {
	i.set.GetOrCreateCounter(counterName("riak_request_retries_total", addr)).Inc()
}

func timerName(op string) string {
	return fmt.Sprintf("riak.op.%s.latency", op)
}

func gaugeName(metric, node string) string {
	return fmt.Sprintf(`%s{node=%q}`, metric, node)
}

func counterName(metric, node string) string {
	return fmt.Sprintf(`%s{node=%q}`, metric, node)
}
