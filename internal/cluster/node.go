package cluster

import (
	"sync"
	"time"

	"github.com/riakhq/riak-go-client/internal/pool"
)

// Health mirrors the bookkeeping a cluster keeps about one node: when it
// was last tried, when it last succeeded, and how many attempts in a row
// have failed.
type Health struct {
	LastCheck        time.Time
	LastHealthy      time.Time
	Status           string
	ConsecutiveFails int
}

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusUnknown   = "unknown"
)

// Node pairs a connection pool for one address with its health record.
type Node struct {
	Address string
	Pool    *pool.Pool

	mu            sync.Mutex
	health        Health
	cooldownUntil time.Time
	lastUsed      time.Time
	maxFails      int
	cooldown      time.Duration
}

// NewNode creates a node that goes into cooldown for cooldown after any
// failed attempt. maxFails (at least 1) is only the streak length that
// PastFailureThreshold reports on; it does not gate eligibility.
func NewNode(address string, p *pool.Pool, maxFails int, cooldown time.Duration) *Node {
	if maxFails < 1 {
		maxFails = 1
	}
	return &Node{
		Address:  address,
		Pool:     p,
		maxFails: maxFails,
		cooldown: cooldown,
		health:   Health{Status: statusUnknown},
	}
}

// Available reports whether the node's cooldown, if any, has elapsed.
func (n *Node) Available() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cooldownUntil.IsZero() || time.Now().After(n.cooldownUntil)
}

// MarkUsed records that the node was just picked, for LRU tie-breaking.
func (n *Node) MarkUsed() {
	n.mu.Lock()
	n.lastUsed = time.Now()
	n.mu.Unlock()
}

// LastUsed returns the node's last MarkUsed time, the zero value if never used.
func (n *Node) LastUsed() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastUsed
}

// Health returns a snapshot of the node's current health record.
func (n *Node) Health() Health {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.health
}

// MarkSuccess resets the failure streak and clears any cooldown.
func (n *Node) MarkSuccess() {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := time.Now()
	n.health.LastCheck = now
	n.health.LastHealthy = now
	n.health.Status = statusHealthy
	n.health.ConsecutiveFails = 0
	n.cooldownUntil = time.Time{}
}

// MarkFailure records a failed attempt and puts the node into cooldown
// immediately - a single node-offline result is enough to trip it.
// ConsecutiveFails is kept only so instrumentation can tell a flaky node
// from a down one; it does not gate eligibility.
func (n *Node) MarkFailure() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.health.LastCheck = time.Now()
	n.health.ConsecutiveFails++
	n.health.Status = statusUnhealthy
	n.cooldownUntil = time.Now().Add(n.cooldown)
}

// PastFailureThreshold reports whether the node's current failure streak
// has reached maxFails. It is purely descriptive - used to pick a log
// severity that tells a briefly flaky node from one down for a long
// streak - and never consulted for eligibility.
func (n *Node) PastFailureThreshold() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.health.ConsecutiveFails >= n.maxFails
}
