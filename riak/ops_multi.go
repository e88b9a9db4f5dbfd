package riak

import (
	"time"

	"github.com/riakhq/riak-go-client/internal/connection"
)

// MultiGet fetches every triple over a single borrowed connection.
// Per-request failures do not abort the batch - the returned slice has
// one Result per input triple, in order.
func (c *Client) MultiGet(triples []KeyTriple, opts GetOptions) []Result[RiakObject] {
	start := time.Now()
	defer c.observe("multi-get", start)

	results := make([]Result[RiakObject], len(triples))
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		for i, t := range triples {
			if err := validateKeyTriple(t.BucketType, t.Bucket, t.Key); err != nil {
				results[i] = failFrom[RiakObject](err)
				continue
			}
			obj, err := c.doGet(conn, t.BucketType, t.Bucket, t.Key, opts)
			if err != nil {
				results[i] = failFrom[RiakObject](err)
				continue
			}
			results[i] = Ok(obj)
		}
		return nil
	})
	if err != nil {
		// The closure above never ran - no node was available to borrow a
		// connection from - so every result is still its zero value.
		for i := range results {
			results[i] = failFrom[RiakObject](err)
		}
	}
	return results
}

// MultiPut writes every object over a single borrowed connection.
// Per-request failures do not abort the batch - the returned slice has
// one Result per input object, in order.
func (c *Client) MultiPut(objects []RiakObject, opts PutOptions) []Result[RiakObject] {
	start := time.Now()
	defer c.observe("multi-put", start)

	results := make([]Result[RiakObject], len(objects))
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		for i, obj := range objects {
			if err := validateKeyTriple(obj.BucketType, obj.Bucket, obj.Key); err != nil {
				results[i] = failFrom[RiakObject](err)
				continue
			}
			o, err := c.doPut(conn, obj, opts)
			if err != nil {
				results[i] = failFrom[RiakObject](err)
				continue
			}
			results[i] = Ok(o)
		}
		return nil
	})
	if err != nil {
		// The closure above never ran - no node was available to borrow a
		// connection from - so every result is still its zero value.
		for i := range results {
			results[i] = failFrom[RiakObject](err)
		}
	}
	return results
}
