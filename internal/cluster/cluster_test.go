package cluster

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/pool"
	"github.com/riakhq/riak-go-client/internal/serializer"
)

func newTestNode(t *testing.T, addr string) *Node {
	t.Helper()
	dial := func() (net.Conn, error) {
		client, server := net.Pipe()
		t.Cleanup(func() { server.Close() })
		return client, nil
	}
	p := pool.New(addr, 2, dial, serializer.NewBinarySerializer(), 0)
	return NewNode(addr, p, 1, time.Hour)
}

type occupancyReport struct {
	node       string
	live, idle int
}

type fakeObserver struct {
	cooldowns  []string
	recoveries []string
	retries    []string
	occupancy  []occupancyReport
}

func (f *fakeObserver) NodeCooldown(addr string)  { f.cooldowns = append(f.cooldowns, addr) }
func (f *fakeObserver) NodeRecovered(addr string)  { f.recoveries = append(f.recoveries, addr) }
func (f *fakeObserver) RequestRetried(addr string) { f.retries = append(f.retries, addr) }
func (f *fakeObserver) SetPoolOccupancy(node string, live, idle int) {
	f.occupancy = append(f.occupancy, occupancyReport{node: node, live: live, idle: idle})
}

func TestUseConnectionSucceeds(t *testing.T) {
	node := newTestNode(t, "node-a")
	c := New([]*Node{node}, 0, nil, nil)

	var gotNode string
	err := c.UseConnection(time.Second, func(conn *connection.Connection) error {
		gotNode = conn.Node()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "node-a", gotNode)
	assert.Equal(t, "healthy", node.Health().Status)
}

func TestUseConnectionRetriesOnCommunicationError(t *testing.T) {
	nodeA := newTestNode(t, "node-a")
	nodeB := newTestNode(t, "node-b")
	obs := &fakeObserver{}
	c := New([]*Node{nodeA, nodeB}, 1, nil, obs)

	var attempted []string
	err := c.UseConnection(time.Second, func(conn *connection.Connection) error {
		attempted = append(attempted, conn.Node())
		if conn.Node() == "node-a" {
			return &connection.CommunicationError{Err: errors.New("boom")}
		}
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"node-a", "node-b"}, attempted)
	assert.Equal(t, "unhealthy", nodeA.Health().Status)
	assert.Contains(t, obs.retries, "node-a")
}

func TestUseConnectionNonCommunicationErrorDoesNotRetry(t *testing.T) {
	nodeA := newTestNode(t, "node-a")
	nodeB := newTestNode(t, "node-b")
	c := New([]*Node{nodeA, nodeB}, 1, nil, nil)

	sentinel := errors.New("remote rejected")
	var attempts int
	err := c.UseConnection(time.Second, func(conn *connection.Connection) error {
		attempts++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, attempts)
}

func TestUseConnectionNoAvailableNodes(t *testing.T) {
	c := New(nil, 2, nil, nil)
	err := c.UseConnection(time.Second, func(conn *connection.Connection) error { return nil })
	assert.ErrorIs(t, err, ErrNoAvailableNodes)
}

func TestSelectNodePrefersLeastRecentlyUsed(t *testing.T) {
	nodeA := newTestNode(t, "node-a")
	nodeB := newTestNode(t, "node-b")
	c := New([]*Node{nodeA, nodeB}, 0, nil, nil)

	nodeA.MarkUsed()
	time.Sleep(time.Millisecond)
	nodeB.MarkUsed()

	picked := c.selectNode(nil)
	assert.Equal(t, nodeA, picked, "node-a was used longer ago than node-b")
}

func TestUseConnectionTripsCooldownOnSingleFailureEvenBelowThreshold(t *testing.T) {
	dial := func() (net.Conn, error) {
		client, server := net.Pipe()
		t.Cleanup(func() { server.Close() })
		return client, nil
	}
	p := pool.New("node-a", 1, dial, serializer.NewBinarySerializer(), 0)
	// maxFails of 3 must not gate eligibility - one failure is enough.
	nodeA := NewNode("node-a", p, 3, time.Hour)
	nodeB := newTestNode(t, "node-b")
	obs := &fakeObserver{}
	c := New([]*Node{nodeA, nodeB}, 1, nil, obs)

	err := c.UseConnection(time.Second, func(conn *connection.Connection) error {
		if conn.Node() == "node-a" {
			return &connection.CommunicationError{Err: errors.New("boom")}
		}
		return nil
	})
	require.NoError(t, err)
	assert.False(t, nodeA.Available())
	assert.Equal(t, 1, nodeA.Health().ConsecutiveFails)
	assert.Contains(t, obs.cooldowns, "node-a")
}

func TestUseConnectionReportsNodeRecoveredAfterCooldown(t *testing.T) {
	dial := func() (net.Conn, error) {
		client, server := net.Pipe()
		t.Cleanup(func() { server.Close() })
		return client, nil
	}
	p := pool.New("node-a", 2, dial, serializer.NewBinarySerializer(), 0)
	node := NewNode("node-a", p, 1, 20*time.Millisecond)
	obs := &fakeObserver{}
	c := New([]*Node{node}, 0, nil, obs)

	boom := &connection.CommunicationError{Err: errors.New("boom")}
	fail := true
	err := c.UseConnection(time.Second, func(conn *connection.Connection) error {
		if fail {
			fail = false
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, obs.recoveries)

	time.Sleep(30 * time.Millisecond)
	err = c.UseConnection(time.Second, func(conn *connection.Connection) error { return nil })
	require.NoError(t, err)
	assert.Contains(t, obs.recoveries, "node-a")
}

func TestUseConnectionReportsPoolOccupancyOnRelease(t *testing.T) {
	node := newTestNode(t, "node-a")
	obs := &fakeObserver{}
	c := New([]*Node{node}, 0, nil, obs)

	err := c.UseConnection(time.Second, func(conn *connection.Connection) error { return nil })
	require.NoError(t, err)
	require.NotEmpty(t, obs.occupancy)
	last := obs.occupancy[len(obs.occupancy)-1]
	assert.Equal(t, "node-a", last.node)
	assert.Equal(t, 1, last.idle)
}

func TestNodeCooldownExcludesNodeUntilElapsed(t *testing.T) {
	dial := func() (net.Conn, error) {
		client, server := net.Pipe()
		t.Cleanup(func() { server.Close() })
		return client, nil
	}
	p := pool.New("node-a", 1, dial, serializer.NewBinarySerializer(), 0)
	node := NewNode("node-a", p, 1, 50*time.Millisecond)

	node.MarkFailure()
	assert.False(t, node.Available())

	time.Sleep(60 * time.Millisecond)
	assert.True(t, node.Available())
}
