// Package logging provides the leveled logger used across the client:
// cluster and the public riak package log through dragonboat's
// logger.ILogger interface (the pool does not log) rather than the standard log
// package directly, so a caller embedding this client inside a larger
// dragonboat-based service can route both through the same sink.
package logging
