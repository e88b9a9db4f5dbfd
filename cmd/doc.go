// Package cmd implements riakctl, a command-line client for the Riak
// client core in the riak package. It provides a hierarchical command
// structure for talking to a Riak cluster over its binary protocol and
// legacy HTTP bucket-properties API.
//
// The package is organized into several subpackages:
//
//   - object: get, put, delete and key/bucket listing operations
//   - bucket: bucket-properties operations (read over the binary protocol,
//     set/reset over the legacy HTTP API)
//   - counter: legacy (pre-CRDT) counter operations
//   - dt: CRDT counter/set/map fetch and update operations
//   - query: secondary-index, search and map-reduce operations
//   - util: shared flag registration and configuration (internal use)
//
// See riakctl -help for a list of all commands.
package cmd
