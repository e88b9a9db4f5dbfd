package connection

import "fmt"

// CommunicationError wraps a transport-level failure: a dial, write, read,
// or deadline failure that leaves no way to know whether the node actually
// processed the request. The connection that produced it is always broken.
type CommunicationError struct {
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("connection: communication failure: %v", e.Err)
}

func (e *CommunicationError) Unwrap() error { return e.Err }

// RemoteError wraps an error-resp message the node sent back deliberately -
// the request reached the node and was rejected or failed there. The
// connection stays usable.
type RemoteError struct {
	Code    uint32
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("connection: remote error %d: %s", e.Code, e.Message)
}

// NotFoundError means the node answered but has nothing for the requested
// bucket/key - a normal, expected outcome rather than a failure.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("connection: not found: %s", e.Resource)
}

// InvalidResponseError means a response frame decoded but did not match
// what the request code expects - a protocol or serializer mismatch, not a
// transport failure. The connection stays usable.
type InvalidResponseError struct {
	Expected string
	Got      string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("connection: invalid response: expected %s, got %s", e.Expected, e.Got)
}
