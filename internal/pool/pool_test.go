package pool

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riakhq/riak-go-client/internal/serializer"
)

func pipeDialer() Dialer {
	return func() (net.Conn, error) {
		client, server := net.Pipe()
		server.Close()
		return client, nil
	}
}

func TestAcquireDialsUpToMaxSize(t *testing.T) {
	p := New("node-1", 2, pipeDialer(), serializer.NewBinarySerializer(), 0)

	c1, err := p.Acquire()
	require.NoError(t, err)
	c2, err := p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 2, p.Live())

	_, err = p.Acquire()
	assert.ErrorIs(t, err, ErrExhausted)

	p.Release(c1, true)
	p.Release(c2, true)
}

func TestAcquireReusesReleasedConnection(t *testing.T) {
	p := New("node-1", 1, pipeDialer(), serializer.NewBinarySerializer(), 0)

	c1, err := p.Acquire()
	require.NoError(t, err)
	p.Release(c1, true)

	c2, err := p.Acquire()
	require.NoError(t, err)
	assert.Same(t, c1, c2)
	assert.Equal(t, 1, p.Live())
}

func TestReleaseUnhealthyFreesSlot(t *testing.T) {
	p := New("node-1", 1, pipeDialer(), serializer.NewBinarySerializer(), 0)

	c1, err := p.Acquire()
	require.NoError(t, err)
	p.Release(c1, false)

	assert.Equal(t, 0, p.Live())
	assert.Equal(t, 0, p.Idle())

	_, err = p.Acquire()
	require.NoError(t, err)
}

func TestDrainRejectsFurtherAcquire(t *testing.T) {
	p := New("node-1", 2, pipeDialer(), serializer.NewBinarySerializer(), 0)

	c1, err := p.Acquire()
	require.NoError(t, err)
	p.Release(c1, true)

	p.Drain()

	_, err = p.Acquire()
	assert.ErrorIs(t, err, ErrDrained)
	assert.Equal(t, 0, p.Idle())
}

func TestAcquireDialFailureFreesReservedSlot(t *testing.T) {
	dialErr := errors.New("dial failed")
	p := New("node-1", 1, func() (net.Conn, error) { return nil, dialErr }, serializer.NewBinarySerializer(), 0)

	_, err := p.Acquire()
	assert.ErrorIs(t, err, dialErr)
	assert.Equal(t, 0, p.Live())
}

func TestAcquireRetiresConnectionIdleLongerThanTimeout(t *testing.T) {
	p := New("node-1", 1, pipeDialer(), serializer.NewBinarySerializer(), time.Millisecond)

	c1, err := p.Acquire()
	require.NoError(t, err)
	p.Release(c1, true)

	time.Sleep(5 * time.Millisecond)

	c2, err := p.Acquire()
	require.NoError(t, err)
	assert.NotSame(t, c1, c2)
	assert.Equal(t, 1, p.Live())
}
