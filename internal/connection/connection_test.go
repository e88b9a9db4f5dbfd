package connection

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riakhq/riak-go-client/internal/message"
	"github.com/riakhq/riak-go-client/internal/serializer"
)

// pipePair returns a client Connection and a raw server-side net.Conn
// wired together over net.Pipe, sharing the binary serializer.
func pipePair(t *testing.T) (*Connection, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close(); server.Close() })
	return New(client, serializer.NewBinarySerializer(), "test-node"), server
}

func serverReadWrite(t *testing.T, server net.Conn, respond func(req message.Message) message.Message) {
	t.Helper()
	srv := New(server, serializer.NewBinarySerializer(), "server")
	go func() {
		req, err := srv.readMessage(0)
		if err != nil {
			return
		}
		srv.writeMessage(0, respond(req))
	}()
}

func TestWriteReadTyped(t *testing.T) {
	conn, server := pipePair(t)
	serverReadWrite(t, server, func(req message.Message) message.Message {
		assert.Equal(t, message.CodePingReq, req.Code)
		return message.Message{Code: message.CodePingResp}
	})

	resp, err := conn.WriteReadTyped(time.Second, message.Message{Code: message.CodePingReq}, message.CodePingResp)
	require.NoError(t, err)
	assert.Equal(t, message.CodePingResp, resp.Code)
	assert.False(t, conn.Broken())
}

func TestWriteReadTypedRemoteError(t *testing.T) {
	conn, server := pipePair(t)
	serverReadWrite(t, server, func(req message.Message) message.Message {
		return *message.NewErrorResponse(42, "boom")
	})

	_, err := conn.WriteReadTyped(time.Second, message.Message{Code: message.CodeGetReq}, message.CodeGetResp)
	require.Error(t, err)
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, uint32(42), remoteErr.Code)
	assert.False(t, conn.Broken(), "a well-formed error-resp must not break the connection")
}

func TestWriteReadTypedInvalidResponse(t *testing.T) {
	conn, server := pipePair(t)
	serverReadWrite(t, server, func(req message.Message) message.Message {
		return message.Message{Code: message.CodePutResp}
	})

	_, err := conn.WriteReadTyped(time.Second, message.Message{Code: message.CodeGetReq}, message.CodeGetResp)
	require.Error(t, err)
	var invalidErr *InvalidResponseError
	require.ErrorAs(t, err, &invalidErr)
}

func TestWriteReadStreamingCollectsUntilDone(t *testing.T) {
	conn, server := pipePair(t)
	srv := New(server, serializer.NewBinarySerializer(), "server")
	go func() {
		_, _ = srv.readMessage(0)
		srv.writeMessage(0, message.Message{Code: message.CodeListKeysResp, Keys: [][]byte{[]byte("a")}})
		srv.writeMessage(0, message.Message{Code: message.CodeListKeysResp, Keys: [][]byte{[]byte("b")}, Done: true})
	}()

	frames, err := conn.WriteReadStreaming(time.Second, message.Message{Code: message.CodeListKeysReq}, message.CodeListKeysResp)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.True(t, frames[1].Done)
}

func TestBrokenConnectionRejectsFurtherUse(t *testing.T) {
	conn, server := pipePair(t)
	server.Close()

	_, err := conn.WriteReadTyped(time.Second, message.Message{Code: message.CodePingReq}, message.CodePingResp)
	require.Error(t, err)
	assert.True(t, conn.Broken())

	_, err = conn.WriteReadTyped(time.Second, message.Message{Code: message.CodePingReq}, message.CodePingResp)
	require.Error(t, err)
}

func TestDelayedStreamCloseDrainsAndReportsHealth(t *testing.T) {
	conn, server := pipePair(t)
	srv := New(server, serializer.NewBinarySerializer(), "server")
	go func() {
		_, _ = srv.readMessage(0)
		srv.writeMessage(0, message.Message{Code: message.CodeListKeysResp, Keys: [][]byte{[]byte("a")}})
		srv.writeMessage(0, message.Message{Code: message.CodeListKeysResp, Done: true})
	}()

	var healthy bool
	stream, err := conn.WriteReadStreamingDelayed(time.Second, message.Message{Code: message.CodeListKeysReq}, message.CodeListKeysResp, func(h bool) { healthy = h })
	require.NoError(t, err)

	msg, ok := stream.Next()
	require.True(t, ok)
	assert.Equal(t, [][]byte{[]byte("a")}, msg.Keys)

	stream.Close()
	assert.True(t, healthy)
	assert.NoError(t, stream.Err())
}
