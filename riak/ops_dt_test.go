package riak

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riakhq/riak-go-client/internal/message"
)

func newDtTestClient(t *testing.T) *Client {
	cfg := DefaultClientConfig()
	cfg.Nodes = []NodeConfig{{Name: "n1", Addr: "127.0.0.1:1"}}
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestDtUpdateSetRemoveWithoutContextIsValidationError(t *testing.T) {
	c := newDtTestClient(t)
	defer c.Close()

	result := c.DtUpdateSet("", "users", "tags", nil, [][]byte{[]byte("x")}, DtUpdateOptions{})
	assert.False(t, result.Success())
	assert.Equal(t, CodeValidation, result.Code)
}

func TestDtUpdateSetRemoveWithContextDoesNotValidateFail(t *testing.T) {
	c := newDtTestClient(t)
	defer c.Close()

	result := c.DtUpdateSet("", "users", "tags", nil, [][]byte{[]byte("x")}, DtUpdateOptions{Context: []byte("ctx")})
	// No server is listening, so it still fails - but not with CodeValidation.
	assert.False(t, result.Success())
	assert.NotEqual(t, CodeValidation, result.Code)
}

func TestDtUpdateMapRemoveWithoutContextIsValidationError(t *testing.T) {
	c := newDtTestClient(t)
	defer c.Close()

	result := c.DtUpdateMap("", "users", "profile", nil, []MapEntryUpdate{{Name: "score", Kind: "counter"}}, DtUpdateOptions{})
	assert.False(t, result.Success())
	assert.Equal(t, CodeValidation, result.Code)
}

func TestToMessageEntriesEmpty(t *testing.T) {
	assert.Nil(t, toMessageEntries(nil))
}

func TestToMessageEntriesConverts(t *testing.T) {
	in := []MapEntryUpdate{{Name: "score", Kind: "counter", Value: []byte("1")}}
	out := toMessageEntries(in)
	want := []message.MapEntry{{Name: []byte("score"), Kind: "counter", Value: []byte("1")}}
	assert.Equal(t, want, out)
}
