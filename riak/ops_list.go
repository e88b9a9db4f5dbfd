package riak

import (
	"time"

	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/message"
)

// ListKeys lists every key in bucketType/bucket, draining every response
// frame and deduplicating before returning. This is expensive on a real
// cluster - it is logged as an advisory warning every time it runs.
func (c *Client) ListKeys(bucketType, bucket string) Result[[][]byte] {
	start := time.Now()
	defer c.observe("list-keys", start)

	if err := validateBucket(bucketType, bucket); err != nil {
		return failFrom[[][]byte](err)
	}

	Log.Warningf("riak: list-keys on %s/%s streams every key in the bucket - avoid this on a production workload", bucketType, bucket)

	seen := make(map[string]bool)
	var keys [][]byte
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{Code: message.CodeListKeysReq, BucketType: []byte(bucketType), Bucket: []byte(bucket)}
		frames, err := conn.WriteReadStreaming(c.timeout, req, message.CodeListKeysResp)
		if err != nil {
			return err
		}
		for _, frame := range frames {
			for _, k := range frame.Keys {
				if s := string(k); !seen[s] {
					seen[s] = true
					keys = append(keys, k)
				}
			}
		}
		return nil
	})
	if err != nil {
		return failFrom[[][]byte](err)
	}
	return Ok(keys)
}

// ListBuckets lists every bucket under bucketType.
func (c *Client) ListBuckets(bucketType string) Result[[][]byte] {
	start := time.Now()
	defer c.observe("list-buckets", start)

	Log.Warningf("riak: list-buckets streams every bucket in the cluster - avoid this on a production workload")

	seen := make(map[string]bool)
	var buckets [][]byte
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{Code: message.CodeListBucketsReq, BucketType: []byte(bucketType)}
		frames, err := conn.WriteReadStreaming(c.timeout, req, message.CodeListBucketsResp)
		if err != nil {
			return err
		}
		for _, frame := range frames {
			for _, b := range frame.Buckets {
				if s := string(b); !seen[s] {
					seen[s] = true
					buckets = append(buckets, b)
				}
			}
		}
		return nil
	})
	if err != nil {
		return failFrom[[][]byte](err)
	}
	return Ok(buckets)
}

// KeyStream lazily yields keys from a StreamListKeys call, releasing its
// connection back to the pool only once Close runs.
type KeyStream struct {
	stream  *connection.DelayedStream
	pending [][]byte
}

// Next returns the next key. ok is false once the stream is exhausted;
// call Err to distinguish a clean end from a failure.
func (s *KeyStream) Next() (key []byte, ok bool) {
	for len(s.pending) == 0 {
		msg, more := s.stream.Next()
		if !more {
			return nil, false
		}
		s.pending = msg.Keys
	}
	key, s.pending = s.pending[0], s.pending[1:]
	return key, true
}

// Err returns the error that ended the stream, if any.
func (s *KeyStream) Err() error { return s.stream.Err() }

// Close releases the underlying connection. Callers MUST call this
// exactly once, whether or not the stream was fully drained.
func (s *KeyStream) Close() { s.stream.Close() }

// StreamListKeys is the lazy counterpart to ListKeys: it does not buffer
// the whole key set in memory, at the cost of pinning one connection for
// as long as the caller takes to drain it.
func (c *Client) StreamListKeys(bucketType, bucket string) (*KeyStream, error) {
	if err := validateBucket(bucketType, bucket); err != nil {
		return nil, err
	}
	Log.Warningf("riak: stream-list-keys on %s/%s pins a connection for the duration of the stream - avoid this on a production workload", bucketType, bucket)

	req := message.Message{Code: message.CodeListKeysReq, BucketType: []byte(bucketType), Bucket: []byte(bucket)}
	stream, err := c.cluster.UseDelayedConnection(c.timeout, req, message.CodeListKeysResp)
	if err != nil {
		return nil, err
	}
	return &KeyStream{stream: stream}, nil
}
