package cluster

import (
	"errors"
	"time"

	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/message"
)

// ErrNoAvailableNodes is returned when every node is either exhausted or in
// cooldown.
var ErrNoAvailableNodes = errors.New("cluster: no available nodes")

// Logger is the subset of leveled logging the cluster needs. A nil Logger
// disables logging.
type Logger interface {
	Warningf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// Observer receives cluster lifecycle events for instrumentation. A nil
// Observer disables reporting.
type Observer interface {
	NodeCooldown(addr string)
	NodeRecovered(addr string)
	RequestRetried(addr string)
	SetPoolOccupancy(node string, live, idle int)
}

// Cluster dispatches requests across a fixed set of nodes.
type Cluster struct {
	nodes      []*Node
	retryCount int
	logger     Logger
	observer   Observer
}

// New creates a cluster over nodes, retrying a failed request on up to
// retryCount additional nodes before giving up.
func New(nodes []*Node, retryCount int, logger Logger, observer Observer) *Cluster {
	if retryCount < 0 {
		retryCount = 0
	}
	return &Cluster{nodes: nodes, retryCount: retryCount, logger: logger, observer: observer}
}

func (c *Cluster) logWarn(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Warningf(format, args...)
	}
}

// logFailure warns about a failed attempt against node, escalating the
// message once the node's failure streak reaches its configured
// threshold - a node failing once in a while logs differently from one
// that has been failing for a while.
func (c *Cluster) logFailure(node *Node, err error) {
	if node.PastFailureThreshold() {
		c.logWarn("cluster: node %s has failed %d times in a row, request error: %v", node.Address, node.Health().ConsecutiveFails, err)
		return
	}
	c.logWarn("cluster: request to %s failed: %v", node.Address, err)
}

// selectNode picks the least-recently-used eligible node not in excluded,
// to spread load across the cluster.
func (c *Cluster) selectNode(excluded map[*Node]bool) *Node {
	var best *Node
	var bestUsed time.Time
	for _, node := range c.nodes {
		if excluded[node] || !node.Available() {
			continue
		}
		used := node.LastUsed()
		if best == nil || used.Before(bestUsed) {
			best = node
			bestUsed = used
		}
	}
	if best != nil {
		best.MarkUsed()
	}
	return best
}

// release returns conn to node's pool and reports the pool's resulting
// occupancy, so gauges track every release rather than only a periodic
// sweep.
func (c *Cluster) release(node *Node, conn *connection.Connection, healthy bool) {
	node.Pool.Release(conn, healthy)
	if c.observer != nil {
		c.observer.SetPoolOccupancy(node.Pool.Node(), node.Pool.Live(), node.Pool.Idle())
	}
}

// markSuccess records a healthy attempt and reports the node's recovery if
// it was previously in cooldown.
func (c *Cluster) markSuccess(node *Node) {
	wasUnhealthy := node.Health().Status == statusUnhealthy
	node.MarkSuccess()
	if wasUnhealthy && c.observer != nil {
		c.observer.NodeRecovered(node.Address)
	}
}

// markFailure records a failed attempt, which trips the node's cooldown,
// and reports it.
func (c *Cluster) markFailure(node *Node) {
	node.MarkFailure()
	if c.observer != nil {
		c.observer.NodeCooldown(node.Address)
	}
}

// UseConnection acquires a connection from an available node, runs op
// against it, and retries on a different node if op fails with a
// connection.CommunicationError. Any other error from op is returned
// immediately without retry - the request reached a node and was
// answered, even if with an error.
func (c *Cluster) UseConnection(timeout time.Duration, op func(conn *connection.Connection) error) error {
	attempts := c.retryCount + 1
	excluded := make(map[*Node]bool, attempts)

	var lastErr error
	for i := 0; i < attempts; i++ {
		node := c.selectNode(excluded)
		if node == nil {
			if lastErr != nil {
				return lastErr
			}
			return ErrNoAvailableNodes
		}
		excluded[node] = true

		conn, err := node.Pool.Acquire()
		if err != nil {
			lastErr = err
			continue
		}

		err = op(conn)
		if err == nil {
			c.release(node, conn, true)
			c.markSuccess(node)
			return nil
		}

		var commErr *connection.CommunicationError
		if errors.As(err, &commErr) {
			c.release(node, conn, false)
			c.markFailure(node)
			lastErr = err
			if c.observer != nil {
				c.observer.RequestRetried(node.Address)
			}
			c.logFailure(node, err)
			continue
		}

		c.release(node, conn, true)
		c.markSuccess(node)
		return err
	}
	return lastErr
}

// UseDelayedConnection acquires a connection and starts a lazily-read
// response stream on it. The connection is returned to its pool only when
// the caller closes the resulting DelayedStream. Unlike UseConnection, a
// write failure here is retried on a different node but a mid-stream read
// failure is not - the caller already started consuming partial results.
func (c *Cluster) UseDelayedConnection(timeout time.Duration, req message.Message, expected message.Code) (*connection.DelayedStream, error) {
	attempts := c.retryCount + 1
	excluded := make(map[*Node]bool, attempts)

	var lastErr error
	for i := 0; i < attempts; i++ {
		node := c.selectNode(excluded)
		if node == nil {
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, ErrNoAvailableNodes
		}
		excluded[node] = true

		conn, err := node.Pool.Acquire()
		if err != nil {
			lastErr = err
			continue
		}

		stream, err := conn.WriteReadStreamingDelayed(timeout, req, expected, func(healthy bool) {
			c.release(node, conn, healthy)
			if healthy {
				c.markSuccess(node)
			} else {
				c.markFailure(node)
				if node.PastFailureThreshold() {
					c.logWarn("cluster: node %s has failed %d times in a row", node.Address, node.Health().ConsecutiveFails)
				} else {
					c.logWarn("cluster: stream against %s failed mid-read", node.Address)
				}
			}
		})
		if err != nil {
			var commErr *connection.CommunicationError
			if errors.As(err, &commErr) {
				c.release(node, conn, false)
				c.markFailure(node)
				c.logFailure(node, err)
				lastErr = err
				continue
			}
			c.release(node, conn, true)
			c.markSuccess(node)
			return nil, err
		}
		c.markSuccess(node)
		return stream, nil
	}
	return nil, lastErr
}

// Drain closes every pool in the cluster.
func (c *Cluster) Drain() {
	for _, node := range c.nodes {
		node.Pool.Drain()
	}
}

// Nodes returns the nodes this cluster dispatches across.
func (c *Cluster) Nodes() []*Node {
	return c.nodes
}
