// Package httptransport talks to Riak's legacy HTTP API for bucket
// properties. The riak package uses it only to set and reset them; it reads
// them over the binary protocol, and Transport.GetBucketProps is not used
// there. It round-robins across the HTTPAddr endpoints of the configured
// nodes (only nodes that carry one), using a single shared *http.Client with idle connection
// reuse - there is no pool layer here because net/http already pools.
package httptransport
