package riak

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riakhq/riak-go-client/internal/message"
)

func TestObjectFromContentsNotFound(t *testing.T) {
	obj, ok := objectFromContents("", "users", "alice", nil, nil)
	assert.False(t, ok)
	assert.Equal(t, RiakObject{}, obj)
}

func TestObjectFromContentsTombstone(t *testing.T) {
	obj, ok := objectFromContents("", "users", "alice", []byte("vclock"), nil)
	assert.True(t, ok)
	assert.Equal(t, "alice", obj.Key)
	assert.Nil(t, obj.Value)
	assert.Empty(t, obj.Siblings)
}

func TestObjectFromContentsSingle(t *testing.T) {
	obj, ok := objectFromContents("maps", "users", "alice", []byte("vclock"), [][]byte{[]byte("hello")})
	assert.True(t, ok)
	assert.Equal(t, "maps", obj.BucketType)
	assert.Equal(t, []byte("hello"), obj.Value)
	assert.Empty(t, obj.Siblings)
}

func TestObjectFromContentsSiblings(t *testing.T) {
	obj, ok := objectFromContents("", "users", "alice", []byte("vclock"), [][]byte{[]byte("a"), []byte("b")})
	assert.True(t, ok)
	assert.Equal(t, []byte("a"), obj.Value)
	assert.Len(t, obj.Siblings, 2)
	assert.Equal(t, []byte("b"), obj.Siblings[1].Value)
	assert.Equal(t, "alice", obj.Siblings[1].Key)
}

func TestObjectFromResponsePrefersContents(t *testing.T) {
	msg := message.Message{
		VClock:   []byte("vclock"),
		Contents: [][]byte{[]byte("c1"), []byte("c2")},
		Value:    []byte("ignored"),
	}
	obj, ok := objectFromResponse("", "users", "alice", msg)
	assert.True(t, ok)
	assert.Len(t, obj.Siblings, 2)
	assert.Equal(t, []byte("c1"), obj.Value)
}

func TestObjectFromResponseFallsBackToValue(t *testing.T) {
	msg := message.Message{
		VClock: []byte("vclock"),
		Value:  []byte("solo"),
	}
	obj, ok := objectFromResponse("", "users", "alice", msg)
	assert.True(t, ok)
	assert.Equal(t, []byte("solo"), obj.Value)
	assert.Empty(t, obj.Siblings)
}
