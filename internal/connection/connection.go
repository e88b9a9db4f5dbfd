package connection

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/riakhq/riak-go-client/internal/frame"
	"github.com/riakhq/riak-go-client/internal/message"
	"github.com/riakhq/riak-go-client/internal/serializer"
)

// Connection runs request/response exchanges against one node over one
// net.Conn.
type Connection struct {
	conn   net.Conn
	ser    serializer.Serializer
	node   string
	broken atomic.Bool
	buf    []byte
}

// New wraps an already-dialed net.Conn for node.
func New(conn net.Conn, ser serializer.Serializer, node string) *Connection {
	return &Connection{conn: conn, ser: ser, node: node}
}

// Node returns the node address this connection was dialed to.
func (c *Connection) Node() string { return c.node }

// Broken reports whether a previous I/O or decode failure means this
// connection must not be reused.
func (c *Connection) Broken() bool { return c.broken.Load() }

// MarkBroken flags the connection as unusable without closing it; callers
// that own the underlying socket still call Close separately.
func (c *Connection) MarkBroken() { c.broken.Store(true) }

// Close closes the underlying socket.
func (c *Connection) Close() error {
	return c.conn.Close()
}

func (c *Connection) writeMessage(timeout time.Duration, msg message.Message) error {
	if timeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			c.broken.Store(true)
			return &CommunicationError{Err: err}
		}
	}
	payload, err := c.ser.Serialize(msg)
	if err != nil {
		c.broken.Store(true)
		return &CommunicationError{Err: err}
	}
	if err := frame.Write(c.conn, payload); err != nil {
		c.broken.Store(true)
		return &CommunicationError{Err: err}
	}
	return nil
}

func (c *Connection) readMessage(timeout time.Duration) (message.Message, error) {
	var out message.Message
	if timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			c.broken.Store(true)
			return out, &CommunicationError{Err: err}
		}
	}
	payload, err := frame.Read(c.conn, c.buf)
	if err != nil {
		c.broken.Store(true)
		return out, &CommunicationError{Err: err}
	}
	c.buf = payload[:0]
	if err := c.ser.Deserialize(payload, &out); err != nil {
		c.broken.Store(true)
		return out, &CommunicationError{Err: err}
	}
	return out, nil
}

// checkResponse rejects error-resp messages and code mismatches without
// marking the connection broken - both are well-formed exchanges.
func checkResponse(resp message.Message, expected message.Code) error {
	if resp.Code == message.CodeErrorResp {
		return &RemoteError{Code: resp.ErrorCode, Message: resp.ErrorMessage}
	}
	if resp.Code != expected {
		return &InvalidResponseError{Expected: expected.String(), Got: resp.Code.String()}
	}
	return nil
}

// WriteReadTyped runs a single request/response exchange: write req, read
// exactly one response, and validate it is either an error-resp or the
// expected response code.
func (c *Connection) WriteReadTyped(timeout time.Duration, req message.Message, expected message.Code) (message.Message, error) {
	if c.Broken() {
		return message.Message{}, &CommunicationError{Err: net.ErrClosed}
	}
	if err := c.writeMessage(timeout, req); err != nil {
		return message.Message{}, err
	}
	resp, err := c.readMessage(timeout)
	if err != nil {
		return message.Message{}, err
	}
	if err := checkResponse(resp, expected); err != nil {
		return resp, err
	}
	return resp, nil
}

// WriteReadStreaming runs a request and eagerly collects every response
// frame until one arrives with Done set (or an error-resp/invalid code
// terminates it). Use this for operations whose results comfortably fit in
// memory - list-keys, 2i, map-reduce.
func (c *Connection) WriteReadStreaming(timeout time.Duration, req message.Message, expected message.Code) ([]message.Message, error) {
	if c.Broken() {
		return nil, &CommunicationError{Err: net.ErrClosed}
	}
	if err := c.writeMessage(timeout, req); err != nil {
		return nil, err
	}
	var out []message.Message
	for {
		resp, err := c.readMessage(timeout)
		if err != nil {
			return out, err
		}
		if err := checkResponse(resp, expected); err != nil {
			return out, err
		}
		out = append(out, resp)
		if resp.Done {
			return out, nil
		}
	}
}

// DelayedStream is a lazy iterator over a streamed response sequence. The
// connection stays checked out of its pool until Close runs, at which
// point onFinish reports whether the connection is still healthy enough to
// recycle.
type DelayedStream struct {
	c        *Connection
	timeout  time.Duration
	expected message.Code
	onFinish func(healthy bool)
	done     bool
	err      error
}

// WriteReadStreamingDelayed issues req and returns an iterator that reads
// one frame at a time on demand, instead of buffering the whole sequence.
// Callers MUST call Close exactly once when done consuming, whether or not
// they drained the stream.
func (c *Connection) WriteReadStreamingDelayed(timeout time.Duration, req message.Message, expected message.Code, onFinish func(healthy bool)) (*DelayedStream, error) {
	if c.Broken() {
		return nil, &CommunicationError{Err: net.ErrClosed}
	}
	if err := c.writeMessage(timeout, req); err != nil {
		return nil, err
	}
	return &DelayedStream{c: c, timeout: timeout, expected: expected, onFinish: onFinish}, nil
}

// Next returns the next response message. ok is false once the stream is
// exhausted (either Done was set or an error occurred); check Err after a
// false return to distinguish the two.
func (s *DelayedStream) Next() (msg message.Message, ok bool) {
	if s.done {
		return message.Message{}, false
	}
	resp, err := s.c.readMessage(s.timeout)
	if err != nil {
		s.err = err
		s.done = true
		return message.Message{}, false
	}
	if err := checkResponse(resp, s.expected); err != nil {
		s.err = err
		s.done = true
		return message.Message{}, false
	}
	if resp.Done {
		s.done = true
	}
	return resp, true
}

// Err returns the error that ended the stream, if any.
func (s *DelayedStream) Err() error { return s.err }

// Close releases the connection. healthy passed to onFinish is false when
// the stream ended on a communication error.
func (s *DelayedStream) Close() {
	if !s.done {
		// Drain whatever is left so the connection is not left mid-frame.
		for {
			if _, ok := s.Next(); !ok {
				break
			}
		}
	}
	_, isCommErr := s.err.(*CommunicationError)
	if s.onFinish != nil {
		s.onFinish(!isCommErr)
	}
}
