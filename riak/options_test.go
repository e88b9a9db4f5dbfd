package riak

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riakhq/riak-go-client/internal/message"
)

func TestGetOptionsPopulate(t *testing.T) {
	var msg message.Message
	GetOptions{R: 2, PR: 1, NotFoundOk: true, BasicQuorum: true, IfNotModified: []byte("v1"), Timeout: 500}.populate(&msg)
	assert.Equal(t, uint32(2), msg.R)
	assert.Equal(t, uint32(1), msg.PR)
	assert.True(t, msg.NotFoundOk)
	assert.True(t, msg.BasicQuorum)
	assert.Equal(t, []byte("v1"), msg.IfNotModified)
	assert.Equal(t, uint32(500), msg.Timeout)
}

func TestPutOptionsPopulate(t *testing.T) {
	var msg message.Message
	PutOptions{W: 3, DW: 1, PW: 1, ReturnBody: true, IfNoneMatch: true, Timeout: 200}.populate(&msg)
	assert.Equal(t, uint32(3), msg.W)
	assert.Equal(t, uint32(1), msg.DW)
	assert.Equal(t, uint32(1), msg.PW)
	assert.True(t, msg.ReturnBody)
	assert.True(t, msg.IfNoneMatch)
	assert.Equal(t, uint32(200), msg.Timeout)
}

func TestDeleteOptionsPopulate(t *testing.T) {
	var msg message.Message
	DeleteOptions{RW: 1, R: 2, W: 3, PR: 1, PW: 1, Timeout: 100}.populate(&msg)
	assert.Equal(t, uint32(1), msg.RW)
	assert.Equal(t, uint32(2), msg.R)
	assert.Equal(t, uint32(3), msg.W)
	assert.Equal(t, uint32(1), msg.PR)
	assert.Equal(t, uint32(1), msg.PW)
	assert.Equal(t, uint32(100), msg.Timeout)
}

func TestIndexOptionsPopulate(t *testing.T) {
	var msg message.Message
	IndexOptions{Range: true, MaxResults: 10, Continuation: []byte("c"), ReturnTerms: true, Timeout: 50}.populate(&msg)
	assert.True(t, msg.IndexRange)
	assert.Equal(t, uint32(10), msg.MaxResults)
	assert.Equal(t, []byte("c"), msg.Continuation)
	assert.True(t, msg.ReturnTerms)
	assert.Equal(t, uint32(50), msg.Timeout)
}

func TestMapReduceOptionsPopulate(t *testing.T) {
	var msg message.Message
	MapReduceOptions{ContentType: "application/json", Timeout: 30}.populate(&msg)
	assert.Equal(t, "application/json", msg.MRContentType)
	assert.Equal(t, uint32(30), msg.Timeout)
}

func TestSearchOptionsPopulate(t *testing.T) {
	var msg message.Message
	SearchOptions{Timeout: 15}.populate(&msg)
	assert.Equal(t, uint32(15), msg.Timeout)
}

func TestDtFetchOptionsPopulate(t *testing.T) {
	var msg message.Message
	DtFetchOptions{R: 2, PR: 1, IncludeContext: true, BasicQuorum: true, NotFoundOk: true, Timeout: 40}.populate(&msg)
	assert.Equal(t, uint32(2), msg.R)
	assert.Equal(t, uint32(1), msg.PR)
	assert.True(t, msg.IncludeContext)
	assert.True(t, msg.BasicQuorum)
	assert.True(t, msg.NotFoundOk)
	assert.Equal(t, uint32(40), msg.Timeout)
}

func TestDtUpdateOptionsPopulate(t *testing.T) {
	var msg message.Message
	DtUpdateOptions{W: 3, DW: 1, PW: 1, ReturnBody: true, IncludeContext: true, Timeout: 60, Context: []byte("ctx")}.populate(&msg)
	assert.Equal(t, uint32(3), msg.W)
	assert.Equal(t, uint32(1), msg.DW)
	assert.Equal(t, uint32(1), msg.PW)
	assert.True(t, msg.ReturnBody)
	assert.True(t, msg.IncludeContext)
	assert.Equal(t, uint32(60), msg.Timeout)
	assert.Equal(t, []byte("ctx"), msg.Context)
}

func TestCounterGetOptionsPopulate(t *testing.T) {
	var msg message.Message
	CounterGetOptions{R: 2, PR: 1, Timeout: 20}.populate(&msg)
	assert.Equal(t, uint32(2), msg.R)
	assert.Equal(t, uint32(1), msg.PR)
	assert.Equal(t, uint32(20), msg.Timeout)
}

func TestCounterUpdateOptionsPopulate(t *testing.T) {
	var msg message.Message
	CounterUpdateOptions{W: 3, DW: 1, PW: 1, ReturnValue: true, Timeout: 25}.populate(&msg)
	assert.Equal(t, uint32(3), msg.W)
	assert.Equal(t, uint32(1), msg.DW)
	assert.Equal(t, uint32(1), msg.PW)
	assert.True(t, msg.CounterReturnVal)
	assert.Equal(t, uint32(25), msg.Timeout)
}
