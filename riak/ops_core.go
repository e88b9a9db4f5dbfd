package riak

import (
	"time"

	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/message"
)

// Ping checks that a node is alive and answering.
func (c *Client) Ping() Result[struct{}] {
	start := time.Now()
	defer c.observe("ping", start)

	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		_, err := conn.WriteReadTyped(c.timeout, message.Message{Code: message.CodePingReq}, message.CodePingResp)
		return err
	})
	if err != nil {
		return failFrom[struct{}](err)
	}
	return Ok(struct{}{})
}

// GetClientID returns the client identifier the cluster has on file for
// this connection's session.
func (c *Client) GetClientID() Result[[]byte] {
	start := time.Now()
	defer c.observe("get-client-id", start)

	var id []byte
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		resp, err := conn.WriteReadTyped(c.timeout, message.Message{Code: message.CodeGetClientIDReq}, message.CodeGetClientIDResp)
		if err != nil {
			return err
		}
		id = resp.ClientID
		return nil
	})
	if err != nil {
		return failFrom[[]byte](err)
	}
	return Ok(id)
}

// SetClientID sets the client identifier used to disambiguate object
// authorship in legacy vector-clock conflict resolution.
func (c *Client) SetClientID(id []byte) Result[struct{}] {
	start := time.Now()
	defer c.observe("set-client-id", start)

	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		_, err := conn.WriteReadTyped(c.timeout, message.Message{Code: message.CodeSetClientIDReq, ClientID: id}, message.CodeSetClientIDResp)
		return err
	})
	if err != nil {
		return failFrom[struct{}](err)
	}
	return Ok(struct{}{})
}

// GetServerInfo returns the node name and version that answered.
func (c *Client) GetServerInfo() Result[ServerInfo] {
	start := time.Now()
	defer c.observe("get-server-info", start)

	var info ServerInfo
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		resp, err := conn.WriteReadTyped(c.timeout, message.Message{Code: message.CodeGetServerInfoReq}, message.CodeGetServerInfoResp)
		if err != nil {
			return err
		}
		info = ServerInfo{Node: resp.ServerNode, Version: resp.ServerVersion}
		return nil
	})
	if err != nil {
		return failFrom[ServerInfo](err)
	}
	return Ok(info)
}

// doGet runs a get exchange on an already-acquired connection.
func (c *Client) doGet(conn *connection.Connection, bucketType, bucket, key string, opts GetOptions) (RiakObject, error) {
	req := message.Message{Code: message.CodeGetReq, BucketType: []byte(bucketType), Bucket: []byte(bucket), Key: []byte(key)}
	opts.populate(&req)

	resp, err := conn.WriteReadTyped(c.timeout, req, message.CodeGetResp)
	if err != nil {
		return RiakObject{}, err
	}
	obj, ok := objectFromResponse(bucketType, bucket, key, resp)
	if !ok {
		return RiakObject{}, &connection.NotFoundError{Resource: "Unable to find value in Riak"}
	}
	return obj, nil
}

// Get fetches the value at bucketType/bucket/key.
func (c *Client) Get(bucketType, bucket, key string, opts GetOptions) Result[RiakObject] {
	start := time.Now()
	defer c.observe("get", start)

	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[RiakObject](err)
	}

	var obj RiakObject
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		o, err := c.doGet(conn, bucketType, bucket, key, opts)
		if err != nil {
			return err
		}
		obj = o
		return nil
	})
	if err != nil {
		return failFrom[RiakObject](err)
	}
	return Ok(obj)
}

// doPut runs a put exchange on an already-acquired connection.
func (c *Client) doPut(conn *connection.Connection, obj RiakObject, opts PutOptions) (RiakObject, error) {
	req := message.Message{
		Code:       message.CodePutReq,
		BucketType: []byte(obj.BucketType),
		Bucket:     []byte(obj.Bucket),
		Key:        []byte(obj.Key),
		Value:      obj.Value,
		VClock:     obj.VClock,
	}
	opts.populate(&req)

	resp, err := conn.WriteReadTyped(c.timeout, req, message.CodePutResp)
	if err != nil {
		return RiakObject{}, err
	}

	result := obj
	if len(resp.Key) > 0 && obj.Key == "" {
		result.Key = string(resp.Key)
	}
	if opts.ReturnBody {
		if o, ok := objectFromResponse(obj.BucketType, obj.Bucket, result.Key, resp); ok {
			return o, nil
		}
	}
	return result, nil
}

// Put writes obj, returning the echoed value when opts.ReturnBody is set
// and the original object (with any server-generated key filled in)
// otherwise.
func (c *Client) Put(obj RiakObject, opts PutOptions) Result[RiakObject] {
	start := time.Now()
	defer c.observe("put", start)

	if obj.Key != "" {
		if err := validateKeyTriple(obj.BucketType, obj.Bucket, obj.Key); err != nil {
			return failFrom[RiakObject](err)
		}
	} else if err := validateBucket(obj.BucketType, obj.Bucket); err != nil {
		return failFrom[RiakObject](err)
	}

	var result RiakObject
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		o, err := c.doPut(conn, obj, opts)
		if err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return failFrom[RiakObject](err)
	}
	return Ok(result)
}

// doDelete runs a delete exchange on an already-acquired connection.
func (c *Client) doDelete(conn *connection.Connection, bucketType, bucket, key string, vclock []byte, opts DeleteOptions) error {
	req := message.Message{Code: message.CodeDelReq, BucketType: []byte(bucketType), Bucket: []byte(bucket), Key: []byte(key), VClock: vclock}
	opts.populate(&req)
	_, err := conn.WriteReadTyped(c.timeout, req, message.CodeDelResp)
	return err
}

// Delete removes the value at bucketType/bucket/key. vclock should be the
// causal vector of the version being deleted, when known.
func (c *Client) Delete(bucketType, bucket, key string, vclock []byte, opts DeleteOptions) Result[struct{}] {
	start := time.Now()
	defer c.observe("delete", start)

	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[struct{}](err)
	}

	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		return c.doDelete(conn, bucketType, bucket, key, vclock, opts)
	})
	if err != nil {
		return failFrom[struct{}](err)
	}
	return Ok(struct{}{})
}

// DeleteBucket lists every key in bucketType/bucket and deletes each one,
// forwarding the full key triple (including bucket-type) to every delete.
// If the list step fails, its error is returned without attempting any
// deletes.
func (c *Client) DeleteBucket(bucketType, bucket string) Result[struct{}] {
	start := time.Now()
	defer c.observe("delete-bucket", start)

	keysResult := c.ListKeys(bucketType, bucket)
	if !keysResult.Success() {
		return Fail[struct{}](keysResult.Code, keysResult.Message)
	}

	for _, key := range keysResult.Value {
		c.Delete(bucketType, bucket, string(key), nil, DeleteOptions{})
	}
	return Ok(struct{}{})
}
