package riak

import (
	"fmt"
	"net"
	"time"

	"github.com/riakhq/riak-go-client/internal/cluster"
	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/httptransport"
	"github.com/riakhq/riak-go-client/internal/logging"
	"github.com/riakhq/riak-go-client/internal/message"
	"github.com/riakhq/riak-go-client/internal/metrics"
	"github.com/riakhq/riak-go-client/internal/pool"
	"github.com/riakhq/riak-go-client/internal/serializer"
)

// Log is the package-level logger every client instance shares, named the
// way the rest of the ambient stack names its loggers.
var Log = logging.New("riak/client")

// KeyTriple identifies one object.
type KeyTriple struct {
	BucketType string
	Bucket     string
	Key        string
}

// ServerInfo is the response to GetServerInfo.
type ServerInfo struct {
	Node    string
	Version string
}

// Client is a handle onto a Riak cluster. It is safe for concurrent use
// by multiple goroutines; construction is the only expensive step.
type Client struct {
	cluster *cluster.Cluster
	http    *httptransport.Transport
	ser     serializer.Serializer
	metrics *metrics.Instrumentation
	timeout time.Duration
}

// NewClient builds a Client from config, dialing no connections eagerly -
// pools create connections lazily on first use.
func NewClient(config ClientConfig) (*Client, error) {
	if config.PoolSize <= 0 {
		config = mergeDefaults(config)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	ser, err := newSerializer(config.Serializer)
	if err != nil {
		return nil, err
	}

	inst := metrics.New()

	nodes := make([]*cluster.Node, 0, len(config.Nodes))
	for _, nc := range config.Nodes {
		addr := nc.Addr
		dial := func() (net.Conn, error) {
			return net.DialTimeout("tcp", addr, config.ConnectTimeout)
		}
		p := pool.New(addr, config.PoolSize, dial, ser, config.IdleTimeout)
		nodes = append(nodes, cluster.NewNode(addr, p, config.MaxConsecutiveFailures, config.Cooldown))
	}

	cl := cluster.New(nodes, config.RetryCount, Log, inst)

	var httpTransport *httptransport.Transport
	var httpEndpoints []string
	for _, nc := range config.Nodes {
		if nc.HTTPAddr != "" {
			httpEndpoints = append(httpEndpoints, nc.HTTPAddr)
		}
	}
	if len(httpEndpoints) > 0 {
		httpTransport, err = httptransport.New(httpEndpoints, config.ConnectTimeout)
		if err != nil {
			return nil, err
		}
	}

	timeout := config.ReadTimeout
	if config.WriteTimeout > timeout {
		timeout = config.WriteTimeout
	}

	return &Client{
		cluster: cl,
		http:    httpTransport,
		ser:     ser,
		metrics: inst,
		timeout: timeout,
	}, nil
}

func mergeDefaults(config ClientConfig) ClientConfig {
	d := DefaultClientConfig()
	d.Nodes = config.Nodes
	if config.Serializer != "" {
		d.Serializer = config.Serializer
	}
	return d
}

func newSerializer(kind string) (serializer.Serializer, error) {
	switch kind {
	case "", "binary":
		return serializer.NewBinarySerializer(), nil
	case "gob":
		return serializer.NewGOBSerializer(), nil
	case "json":
		return serializer.NewJSONSerializer(), nil
	default:
		return nil, fmt.Errorf("riak: unknown serializer %q", kind)
	}
}

// Metrics exposes the client's instrumentation for wiring into a
// Prometheus scrape endpoint or periodic log snapshot.
func (c *Client) Metrics() *metrics.Instrumentation { return c.metrics }

// Close drains every node pool, so operations that acquire a connection
// afterwards fail with CodeShuttingDown. Operations already holding a
// connection are not interrupted: they run to completion, and their
// connection is closed when it is released.
func (c *Client) Close() {
	c.cluster.Drain()
	if c.http != nil {
		c.http.Close()
	}
}

func (c *Client) observe(op string, start time.Time) {
	c.metrics.ObserveOperation(op, time.Since(start))
}

// requireHTTP returns an error Result if no node carries an HTTPAddr.
func (c *Client) requireHTTP() error {
	if c.http == nil {
		return fmt.Errorf("riak: no node configured with an HTTPAddr for bucket-properties operations")
	}
	return nil
}
