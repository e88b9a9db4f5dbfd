package serializer

import (
	"bytes"
	"encoding/gob"

	"github.com/riakhq/riak-go-client/internal/message"
)

// NewGOBSerializer creates a Serializer using Go's gob encoding.
func NewGOBSerializer() Serializer {
	return gobSerializer{}
}

type gobSerializer struct{}

func (gobSerializer) Serialize(msg message.Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobSerializer) Deserialize(b []byte, msg *message.Message) error {
	return gob.NewDecoder(bytes.NewReader(b)).Decode(msg)
}
