// Package cluster dispatches requests across a set of Riak nodes, each
// backed by its own internal/pool.Pool. It picks nodes round-robin among
// those not in cooldown, retries communication failures on a different
// node, and tracks a small health record per node; a single failed attempt
// puts a node into cooldown, and it is not offered again until the
// cooldown expires.
package cluster
