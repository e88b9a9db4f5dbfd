package cluster

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riakhq/riak-go-client/internal/pool"
	"github.com/riakhq/riak-go-client/internal/serializer"
)

func newNode(t *testing.T, maxFails int, cooldown time.Duration) *Node {
	t.Helper()
	dial := func() (net.Conn, error) {
		client, server := net.Pipe()
		t.Cleanup(func() { server.Close() })
		return client, nil
	}
	p := pool.New("n", 1, dial, serializer.NewBinarySerializer(), 0)
	return NewNode("n", p, maxFails, cooldown)
}

func TestNodeStartsUnknownAndAvailable(t *testing.T) {
	n := newNode(t, 3, time.Minute)
	assert.Equal(t, "unknown", n.Health().Status)
	assert.True(t, n.Available())
}

func TestNodeSingleFailureTripsCooldownRegardlessOfThreshold(t *testing.T) {
	n := newNode(t, 3, time.Minute)
	n.MarkFailure()
	assert.False(t, n.Available())
	assert.Equal(t, "unhealthy", n.Health().Status)
	assert.Equal(t, 1, n.Health().ConsecutiveFails)
}

func TestNodeConsecutiveFailsAccumulatesAcrossCooldownTrips(t *testing.T) {
	n := newNode(t, 3, time.Minute)
	n.MarkFailure()
	n.MarkFailure()
	assert.False(t, n.Available())
	assert.Equal(t, 2, n.Health().ConsecutiveFails)
}

func TestNodeSuccessResetsFailureStreak(t *testing.T) {
	n := newNode(t, 2, time.Minute)
	n.MarkFailure()
	n.MarkSuccess()
	assert.Equal(t, 0, n.Health().ConsecutiveFails)
	assert.Equal(t, "healthy", n.Health().Status)
	assert.True(t, n.Available())
}
