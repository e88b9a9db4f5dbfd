package pool

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/serializer"
)

// ErrExhausted is returned by Acquire when the pool already has MaxSize
// live connections and none are idle.
var ErrExhausted = errors.New("pool: exhausted")

// ErrDrained is returned by Acquire once Drain has run.
var ErrDrained = errors.New("pool: drained")

// Dialer opens a new net.Conn to the pool's node.
type Dialer func() (net.Conn, error)

// idleConn pairs an idle connection with the time it was returned to the
// pool, so Acquire can tell a fresh connection from a stale one.
type idleConn struct {
	conn    *connection.Connection
	idledAt time.Time
}

// Pool is a bounded set of connections to one node.
type Pool struct {
	node        string
	dial        Dialer
	ser         serializer.Serializer
	maxSize     int
	idleTimeout time.Duration

	mu      sync.Mutex
	idle    []idleConn
	live    int
	drained bool
}

// New creates a pool for node, dialing new connections with dial, up to
// maxSize live connections at once. idleTimeout retires connections that
// have sat idle longer than that instead of handing them back out; 0
// disables idle retirement.
func New(node string, maxSize int, dial Dialer, ser serializer.Serializer, idleTimeout time.Duration) *Pool {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Pool{node: node, dial: dial, ser: ser, maxSize: maxSize, idleTimeout: idleTimeout}
}

// Node returns the address this pool serves.
func (p *Pool) Node() string { return p.node }

// Live returns the current count of connections either idle or checked out.
func (p *Pool) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// Idle returns the current count of idle connections.
func (p *Pool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// Acquire returns an idle connection if one is available, dials a new one
// if the pool has spare capacity, or returns ErrExhausted immediately -
// Acquire never blocks waiting for a slot to free up. Idle connections
// older than idleTimeout are closed and skipped rather than handed out.
func (p *Pool) Acquire() (*connection.Connection, error) {
	p.mu.Lock()
	if p.drained {
		p.mu.Unlock()
		return nil, ErrDrained
	}
	for n := len(p.idle); n > 0; n = len(p.idle) {
		ic := p.idle[n-1]
		p.idle = p.idle[:n-1]
		if p.idleTimeout > 0 && time.Since(ic.idledAt) > p.idleTimeout {
			p.live--
			p.mu.Unlock()
			ic.conn.Close()
			p.mu.Lock()
			continue
		}
		p.mu.Unlock()
		return ic.conn, nil
	}
	if p.live >= p.maxSize {
		p.mu.Unlock()
		return nil, ErrExhausted
	}
	p.live++
	p.mu.Unlock()

	conn, err := p.dialConn()
	if err != nil {
		p.mu.Lock()
		p.live--
		p.mu.Unlock()
		return nil, err
	}
	return conn, nil
}

func (p *Pool) dialConn() (*connection.Connection, error) {
	netConn, err := p.dial()
	if err != nil {
		return nil, err
	}
	return connection.New(netConn, p.ser, p.node), nil
}

// Release returns conn to the pool. healthy must be false if the caller
// observed a communication error on conn; unhealthy or broken connections
// are closed and their slot freed instead of recycled.
func (p *Pool) Release(conn *connection.Connection, healthy bool) {
	p.mu.Lock()
	if !healthy || conn.Broken() || p.drained {
		p.live--
		p.mu.Unlock()
		conn.Close()
		return
	}
	p.idle = append(p.idle, idleConn{conn: conn, idledAt: time.Now()})
	p.mu.Unlock()
}

// Drain closes every idle connection and fails all future Acquire calls.
// Connections already checked out are closed as they are Released.
func (p *Pool) Drain() {
	p.mu.Lock()
	p.drained = true
	idle := p.idle
	p.idle = nil
	p.live -= len(idle)
	p.mu.Unlock()

	for _, ic := range idle {
		ic.conn.Close()
	}
}
