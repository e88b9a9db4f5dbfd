package riak

import (
	"fmt"
	"time"

	"github.com/riakhq/riak-go-client/internal/connection"
)

// BatchClient is the subset of Client's single-object operations usable
// inside a Batch callback. It is a narrower capability than *Client on
// purpose - streaming and multi-node operations do not make sense pinned
// to one connection.
type BatchClient interface {
	Get(bucketType, bucket, key string, opts GetOptions) Result[RiakObject]
	Put(obj RiakObject, opts PutOptions) Result[RiakObject]
	Delete(bucketType, bucket, key string, vclock []byte, opts DeleteOptions) Result[struct{}]
}

// batchClient implements BatchClient over one pinned connection.
type batchClient struct {
	client *Client
	conn   *connection.Connection
}

func (b *batchClient) Get(bucketType, bucket, key string, opts GetOptions) Result[RiakObject] {
	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[RiakObject](err)
	}
	obj, err := b.client.doGet(b.conn, bucketType, bucket, key, opts)
	if err != nil {
		return failFrom[RiakObject](err)
	}
	return Ok(obj)
}

func (b *batchClient) Put(obj RiakObject, opts PutOptions) Result[RiakObject] {
	if obj.Key != "" {
		if err := validateKeyTriple(obj.BucketType, obj.Bucket, obj.Key); err != nil {
			return failFrom[RiakObject](err)
		}
	} else if err := validateBucket(obj.BucketType, obj.Bucket); err != nil {
		return failFrom[RiakObject](err)
	}
	o, err := b.client.doPut(b.conn, obj, opts)
	if err != nil {
		return failFrom[RiakObject](err)
	}
	return Ok(o)
}

func (b *batchClient) Delete(bucketType, bucket, key string, vclock []byte, opts DeleteOptions) Result[struct{}] {
	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[struct{}](err)
	}
	if err := b.client.doDelete(b.conn, bucketType, bucket, key, vclock, opts); err != nil {
		return failFrom[struct{}](err)
	}
	return Ok(struct{}{})
}

// Batch pins a single connection for the lifetime of fn, running every
// operation fn issues through it against the SAME node. A panic inside fn
// is recovered and surfaced as CodeBatchException rather than propagating
// past the dispatcher; a broken batch connection is never retried on
// another node, since resuming mid-batch on a different connection would
// lose whatever state the callback already observed.
func (c *Client) Batch(fn func(BatchClient) error) Result[struct{}] {
	start := time.Now()
	defer c.observe("batch", start)

	var batchErr error
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		bc := &batchClient{client: c, conn: conn}
		defer func() {
			if r := recover(); r != nil {
				batchErr = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn(bc)
	})
	if batchErr != nil {
		return Fail[struct{}](CodeBatchException, batchErr.Error())
	}
	if err != nil {
		return failFrom[struct{}](err)
	}
	return Ok(struct{}{})
}
