package serializer

import "github.com/riakhq/riak-go-client/internal/message"

// Serializer is the interface every message body codec must satisfy.
type Serializer interface {
	// Serialize encodes a message into a byte slice.
	Serialize(msg message.Message) ([]byte, error)
	// Deserialize decodes a byte slice into msg.
	Deserialize(b []byte, msg *message.Message) error
}
