package riak

import (
	"time"

	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/message"
)

// GetCounter reads a legacy (pre-CRDT) counter's value.
func (c *Client) GetCounter(bucketType, bucket, key string, opts CounterGetOptions) Result[int64] {
	start := time.Now()
	defer c.observe("counter-get", start)

	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[int64](err)
	}

	var value int64
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{Code: message.CodeCounterGetReq, BucketType: []byte(bucketType), Bucket: []byte(bucket), Key: []byte(key)}
		opts.populate(&req)
		resp, err := conn.WriteReadTyped(c.timeout, req, message.CodeCounterGetResp)
		if err != nil {
			return err
		}
		value = resp.CounterValue
		return nil
	})
	if err != nil {
		return failFrom[int64](err)
	}
	return Ok(value)
}

// UpdateCounter applies delta to a legacy counter, returning its new
// value when opts.ReturnValue is set.
func (c *Client) UpdateCounter(bucketType, bucket, key string, delta int64, opts CounterUpdateOptions) Result[int64] {
	start := time.Now()
	defer c.observe("counter-update", start)

	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[int64](err)
	}

	var value int64
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{Code: message.CodeCounterUpdateReq, BucketType: []byte(bucketType), Bucket: []byte(bucket), Key: []byte(key), CounterDelta: delta}
		opts.populate(&req)
		resp, err := conn.WriteReadTyped(c.timeout, req, message.CodeCounterUpdateResp)
		if err != nil {
			return err
		}
		value = resp.CounterValue
		return nil
	})
	if err != nil {
		return failFrom[int64](err)
	}
	return Ok(value)
}
