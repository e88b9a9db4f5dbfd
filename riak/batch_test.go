package riak

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riakhq/riak-go-client/internal/frame"
	"github.com/riakhq/riak-go-client/internal/message"
	"github.com/riakhq/riak-go-client/internal/serializer"
)

// fakeRiakServer answers get/put/del requests with canned responses off a
// loopback listener, standing in for a real node in tests that need a
// live connection rather than a net.Pipe fake.
func fakeRiakServer(t *testing.T) (addr string, stop func()) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ser := serializer.NewBinarySerializer()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				for {
					payload, err := frame.Read(c, nil)
					if err != nil {
						return
					}
					var req message.Message
					if err := ser.Deserialize(payload, &req); err != nil {
						return
					}

					var resp message.Message
					switch req.Code {
					case message.CodeGetReq:
						resp = message.Message{Code: message.CodeGetResp, VClock: []byte("vclock"), Value: []byte("hello")}
					case message.CodePutReq:
						resp = message.Message{Code: message.CodePutResp}
					case message.CodeDelReq:
						resp = message.Message{Code: message.CodeDelResp}
					case message.CodeGetBucketReq:
						resp = message.Message{Code: message.CodeGetBucketResp, BucketProps: []byte(`{"n_val":3}`)}
					default:
						resp = message.Message{Code: message.CodeErrorResp, ErrorMessage: "unsupported"}
					}

					out, err := ser.Serialize(resp)
					if err != nil {
						return
					}
					if err := frame.Write(c, out); err != nil {
						return
					}
				}
			}(conn)
		}
	}()

	return ln.Addr().String(), func() { ln.Close() }
}

func newTestClient(t *testing.T, addr string) *Client {
	cfg := DefaultClientConfig()
	cfg.Nodes = []NodeConfig{{Name: "n1", Addr: addr}}
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c
}

func TestBatchRunsOperationsOnPinnedConnection(t *testing.T) {
	addr, stop := fakeRiakServer(t)
	defer stop()
	c := newTestClient(t, addr)
	defer c.Close()

	result := c.Batch(func(bc BatchClient) error {
		get := bc.Get("", "users", "alice", GetOptions{})
		if !get.Success() {
			return get.Err()
		}
		put := bc.Put(RiakObject{Bucket: "users", Key: "alice", Value: []byte("hi")}, PutOptions{})
		return put.Err()
	})

	assert.True(t, result.Success())
}

func TestBatchRecoversPanic(t *testing.T) {
	addr, stop := fakeRiakServer(t)
	defer stop()
	c := newTestClient(t, addr)
	defer c.Close()

	result := c.Batch(func(bc BatchClient) error {
		panic("callback exploded")
	})

	assert.False(t, result.Success())
	assert.Equal(t, CodeBatchException, result.Code)
	assert.Contains(t, result.Message, "callback exploded")
}

func TestBatchPropagatesOpError(t *testing.T) {
	addr, stop := fakeRiakServer(t)
	defer stop()
	c := newTestClient(t, addr)
	defer c.Close()

	wantErr := errors.New("deliberate failure")
	result := c.Batch(func(bc BatchClient) error {
		return wantErr
	})

	assert.False(t, result.Success())
	assert.Contains(t, result.Message, wantErr.Error())
}

func TestBatchPropagatesSubResultErrorWithOriginalCode(t *testing.T) {
	addr, stop := fakeRiakServer(t)
	defer stop()
	c := newTestClient(t, addr)
	defer c.Close()

	result := c.Batch(func(bc BatchClient) error {
		get := bc.Get("", "", "alice", GetOptions{})
		return get.Err()
	})

	require.False(t, result.Success())
	assert.Equal(t, CodeValidation, result.Code)
	assert.False(t, result.NodeOffline)
}
