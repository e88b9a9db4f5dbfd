// Package riak is the public façade over a Riak cluster: it validates
// caller input, builds request messages, hands them to the internal
// cluster dispatcher, and maps responses back into typed Result values.
// Nothing below this package is exported - internal/frame, internal/
// connection, internal/pool, internal/cluster and internal/serializer are
// all implementation detail a caller never touches directly.
package riak
