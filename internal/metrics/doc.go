// Package metrics instruments the pool and cluster layers: occupancy
// gauges and counters via VictoriaMetrics/metrics, and per-operation
// latency timers via rcrowley/go-metrics. The two libraries are kept
// separate rather than unified behind one facade because that is how
// they are meant to be read - VictoriaMetrics' registry exposes a
// Prometheus-style /metrics page, while go-metrics' registry is usually
// read by logging periodic snapshots or wiring a reporter for graphite/
// statsd. A client embedding this package picks whichever scrape path it
// already runs.
package metrics
