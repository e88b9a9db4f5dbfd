package riak

import (
	"time"

	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/message"
)

// MapReduce submits a map-reduce job and collects every phase result.
// query is the job specification, opaque to the core; opts.ContentType
// names its encoding (e.g. "application/json").
func (c *Client) MapReduce(query []byte, opts MapReduceOptions) Result[[][]byte] {
	start := time.Now()
	defer c.observe("map-reduce", start)

	var results [][]byte
	var continuation []byte
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{Code: message.CodeMapRedReq, MRQuery: query}
		opts.populate(&req)
		frames, err := conn.WriteReadStreaming(c.timeout, req, message.CodeMapRedResp)
		if err != nil {
			return err
		}
		for _, f := range frames {
			if len(f.MRResult) > 0 {
				results = append(results, f.MRResult)
			}
			continuation = f.Continuation
		}
		return nil
	})
	if err != nil {
		return failFrom[[][]byte](err)
	}
	r := Ok(results)
	r.Continuation = continuation
	r.Done = true
	return r
}

// IndexQuery is the result of a secondary-index (2i) lookup.
type IndexQuery struct {
	Keys         [][]byte
	Continuation []byte
}

// Index runs an exact-match secondary-index query for key, or a range
// query when opts.Range is set and min/max are used instead.
func (c *Client) Index(bucketType, bucket, indexName string, key, min, max []byte, opts IndexOptions) Result[IndexQuery] {
	start := time.Now()
	defer c.observe("index", start)

	if err := validateBucket(bucketType, bucket); err != nil {
		return failFrom[IndexQuery](err)
	}

	var out IndexQuery
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{
			Code:       message.CodeIndexReq,
			BucketType: []byte(bucketType),
			Bucket:     []byte(bucket),
			IndexName:  indexName,
			IndexKey:   key,
			IndexMin:   min,
			IndexMax:   max,
		}
		opts.populate(&req)
		frames, err := conn.WriteReadStreaming(c.timeout, req, message.CodeIndexResp)
		if err != nil {
			return err
		}
		for _, f := range frames {
			out.Keys = append(out.Keys, f.Keys...)
			out.Continuation = f.Continuation
		}
		return nil
	})
	if err != nil {
		return failFrom[IndexQuery](err)
	}
	return Ok(out)
}

// Search runs a full-text search query against index and returns the raw
// result rows - decoding the rows document is out of scope for the core.
func (c *Client) Search(index, query string, opts SearchOptions) Result[[]byte] {
	start := time.Now()
	defer c.observe("search", start)

	var rows []byte
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{Code: message.CodeSearchQueryReq, SearchIndex: index, SearchQuery: query}
		opts.populate(&req)
		resp, err := conn.WriteReadTyped(c.timeout, req, message.CodeSearchQueryResp)
		if err != nil {
			return err
		}
		rows = resp.SearchRows
		return nil
	})
	if err != nil {
		return failFrom[[]byte](err)
	}
	return Ok(rows)
}

// WalkLinkTarget is one hop WalkLinks attempted to follow.
type WalkLinkTarget struct {
	KeyTriple
}

// WalkLinkResult is the outcome of following one link target: either a
// fetched object or the error that occurred trying to fetch it. Unlike a
// naive walk, a failed hop does not drop the rest of the walk's results -
// callers can tell "no link" apart from "link get failed".
type WalkLinkResult struct {
	Target WalkLinkTarget
	Object RiakObject
	Err    error
}

// WalkLinks fetches every target, all on the same connection, and
// returns one result per target in order - including the ones that
// failed. Discovering link targets from an object's metadata is out of
// scope for the core (it depends on per-message body encoding the
// Serializer owns); callers resolve targets themselves and pass them in.
func (c *Client) WalkLinks(targets []WalkLinkTarget) []WalkLinkResult {
	results := make([]WalkLinkResult, len(targets))
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		for i, t := range targets {
			if err := validateKeyTriple(t.BucketType, t.Bucket, t.Key); err != nil {
				results[i] = WalkLinkResult{Target: t, Err: err}
				continue
			}
			obj, err := c.doGet(conn, t.BucketType, t.Bucket, t.Key, GetOptions{})
			results[i] = WalkLinkResult{Target: t, Object: obj, Err: err}
		}
		return nil
	})
	if err != nil {
		// The closure above never ran - no node was available to borrow a
		// connection from - so every result is still its zero value.
		for i, t := range targets {
			results[i] = WalkLinkResult{Target: t, Err: err}
		}
	}
	return results
}
