package riak

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NodeConfig describes one Riak node.
type NodeConfig struct {
	Name string
	// Addr is the binary-protocol host:port.
	Addr string
	// HTTPAddr is the legacy HTTP API base URL, scheme included, e.g. "http://10.0.0.1:8098".
	// Only needed by bucket-properties operations.
	HTTPAddr string
}

// ClientConfig configures a Client and the cluster underneath it.
type ClientConfig struct {
	Nodes []NodeConfig

	// PoolSize is the max live connections kept per node.
	PoolSize int
	// RetryCount is how many additional nodes a retryable failure is
	// attempted on, beyond the first. 0 means try once.
	RetryCount int
	// MaxConsecutiveFailures is the failure-streak length at or above which a
	// node's failures are logged as sustained rather than flaky. A single
	// failed attempt already puts the node into cooldown regardless of
	// this value.
	MaxConsecutiveFailures int
	// Cooldown is how long a node stays skipped after a failed attempt.
	Cooldown time.Duration

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	// IdleTimeout retires a pooled connection that has sat idle longer than
	// this instead of handing it back out. 0 disables idle retirement.
	IdleTimeout time.Duration

	// Serializer selects the wire encoding: "binary" (default), "gob", or
	// "json".
	Serializer string
}

// DefaultClientConfig returns sane defaults for every field except Nodes.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		PoolSize:               8,
		RetryCount:             2,
		MaxConsecutiveFailures: 3,
		Cooldown:               30 * time.Second,
		ConnectTimeout:         5 * time.Second,
		ReadTimeout:            30 * time.Second,
		WriteTimeout:           30 * time.Second,
		IdleTimeout:            5 * time.Minute,
		Serializer:             "binary",
	}
}

func (c ClientConfig) validate() error {
	if len(c.Nodes) == 0 {
		return fmt.Errorf("riak: at least one node is required")
	}
	for _, n := range c.Nodes {
		if n.Addr == "" {
			return fmt.Errorf("riak: node %q has no Addr", n.Name)
		}
	}
	return nil
}

// String renders the configuration for logs, mirroring the layout the
// rest of this project's configuration types use.
func (c ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(strings.ToUpper(title))
		sb.WriteString("\n")
	}
	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-24s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Pool Size", strconv.Itoa(c.PoolSize))
	addField("Retry Count", strconv.Itoa(c.RetryCount))
	addField("Max Consecutive Failures", strconv.Itoa(c.MaxConsecutiveFailures))
	addField("Cooldown", c.Cooldown.String())
	addField("Connect Timeout", c.ConnectTimeout.String())
	addField("Read Timeout", c.ReadTimeout.String())
	addField("Write Timeout", c.WriteTimeout.String())
	addField("Idle Timeout", c.IdleTimeout.String())
	addField("Serializer", c.Serializer)

	addSection("Nodes")
	for i, n := range c.Nodes {
		addField(strconv.Itoa(i), fmt.Sprintf("%s (%s)", n.Addr, n.Name))
	}

	return sb.String()
}
