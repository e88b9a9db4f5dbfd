package riak

import (
	"time"

	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/message"
)

// GetBucketProps fetches a bucket's properties document over the binary
// protocol. Unlike Set/ResetBucketProps, reads never needed the legacy
// HTTP API - the binary protocol has always carried get-bucket-req/resp.
func (c *Client) GetBucketProps(bucketType, bucket string) Result[[]byte] {
	start := time.Now()
	defer c.observe("get-bucket-props", start)

	if err := validateBucket(bucketType, bucket); err != nil {
		return failFrom[[]byte](err)
	}

	var props []byte
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{Code: message.CodeGetBucketReq, BucketType: []byte(bucketType), Bucket: []byte(bucket)}
		resp, err := conn.WriteReadTyped(c.timeout, req, message.CodeGetBucketResp)
		if err != nil {
			return err
		}
		props = resp.BucketProps
		return nil
	})
	if err != nil {
		return failFrom[[]byte](err)
	}
	return Ok(props)
}

// SetBucketProps replaces a bucket's properties with the given raw JSON
// document.
func (c *Client) SetBucketProps(bucketType, bucket string, props []byte) Result[struct{}] {
	start := time.Now()
	defer c.observe("set-bucket-props", start)

	if err := validateBucket(bucketType, bucket); err != nil {
		return failFrom[struct{}](err)
	}
	if err := c.requireHTTP(); err != nil {
		return failFrom[struct{}](err)
	}

	if err := c.http.SetBucketProps(bucketType, bucket, props); err != nil {
		return failFrom[struct{}](err)
	}
	return Ok(struct{}{})
}

// ResetBucketProps reverts a bucket's properties to the server defaults.
func (c *Client) ResetBucketProps(bucketType, bucket string) Result[struct{}] {
	start := time.Now()
	defer c.observe("reset-bucket-props", start)

	if err := validateBucket(bucketType, bucket); err != nil {
		return failFrom[struct{}](err)
	}
	if err := c.requireHTTP(); err != nil {
		return failFrom[struct{}](err)
	}

	if err := c.http.ResetBucketProps(bucketType, bucket); err != nil {
		return failFrom[struct{}](err)
	}
	return Ok(struct{}{})
}
