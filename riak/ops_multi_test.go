package riak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiGetPerTripleValidation(t *testing.T) {
	addr, stop := fakeRiakServer(t)
	defer stop()
	c := newTestClient(t, addr)
	defer c.Close()

	results := c.MultiGet([]KeyTriple{
		{Bucket: "users", Key: "alice"},
		{Bucket: "", Key: "bob"},
	}, GetOptions{})

	require.Len(t, results, 2)
	assert.True(t, results[0].Success())
	assert.False(t, results[1].Success())
	assert.Equal(t, CodeValidation, results[1].Code)
}

func TestMultiPutPerObjectValidation(t *testing.T) {
	addr, stop := fakeRiakServer(t)
	defer stop()
	c := newTestClient(t, addr)
	defer c.Close()

	results := c.MultiPut([]RiakObject{
		{Bucket: "users", Key: "alice", Value: []byte("x")},
		{Bucket: "", Key: "bob", Value: []byte("y")},
	}, PutOptions{})

	require.Len(t, results, 2)
	assert.True(t, results[0].Success())
	assert.False(t, results[1].Success())
	assert.Equal(t, CodeValidation, results[1].Code)
}

func TestMultiGetFillsEveryResultWhenNoNodeIsAvailable(t *testing.T) {
	c := newDtTestClient(t)
	defer c.Close()

	results := c.MultiGet([]KeyTriple{
		{Bucket: "users", Key: "alice"},
		{Bucket: "", Key: "bob"},
	}, GetOptions{})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Success())
		assert.NotEqual(t, CodeSuccess, r.Code)
	}
}

func TestMultiPutFillsEveryResultWhenNoNodeIsAvailable(t *testing.T) {
	c := newDtTestClient(t)
	defer c.Close()

	results := c.MultiPut([]RiakObject{
		{Bucket: "users", Key: "alice", Value: []byte("x")},
		{Bucket: "users", Key: "bob", Value: []byte("y")},
	}, PutOptions{})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Success())
		assert.NotEqual(t, CodeSuccess, r.Code)
	}
}

func TestWalkLinksPreservesOrderAndReportsValidationErrors(t *testing.T) {
	addr, stop := fakeRiakServer(t)
	defer stop()
	c := newTestClient(t, addr)
	defer c.Close()

	results := c.WalkLinks([]WalkLinkTarget{
		{KeyTriple{Bucket: "users", Key: "alice"}},
		{KeyTriple{Bucket: "", Key: "bob"}},
	})

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "bob", results[1].Target.Key)
}

func TestWalkLinksFillsEveryResultWhenNoNodeIsAvailable(t *testing.T) {
	c := newDtTestClient(t)
	defer c.Close()

	results := c.WalkLinks([]WalkLinkTarget{
		{KeyTriple{Bucket: "users", Key: "alice"}},
		{KeyTriple{Bucket: "users", Key: "bob"}},
	})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.Error(t, r.Err)
	}
}
