// Package pool maintains a bounded set of internal/connection.Connection
// instances to a single node. It hands out exclusive use of a connection
// via Acquire and takes it back via Release, growing lazily up to a
// configured ceiling and never blocking a caller waiting for a free slot -
// callers that get ErrExhausted are expected to try another node or fail
// the request, the same way a Riak client spreads load across a cluster
// rather than queuing behind one saturated node.
package pool
