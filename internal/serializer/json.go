package serializer

import (
	"encoding/json"

	"github.com/riakhq/riak-go-client/internal/message"
)

// NewJSONSerializer creates a Serializer using JSON encoding.
func NewJSONSerializer() Serializer {
	return jsonSerializer{}
}

type jsonSerializer struct{}

func (jsonSerializer) Serialize(msg message.Message) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonSerializer) Deserialize(b []byte, msg *message.Message) error {
	return json.Unmarshal(b, msg)
}
