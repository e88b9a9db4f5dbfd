package riak

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riakhq/riak-go-client/internal/cluster"
	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/pool"
)

func TestOkIsSuccess(t *testing.T) {
	r := Ok(42)
	assert.True(t, r.Success())
	assert.NoError(t, r.Err())
	assert.Equal(t, 42, r.Value)
}

func TestFailFromClassifiesErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code ResultCode
	}{
		{"validation", &ValidationError{Reason: "bad"}, CodeValidation},
		{"communication", &connection.CommunicationError{Err: errors.New("x")}, CodeCommunication},
		{"remote", &connection.RemoteError{Code: 1, Message: "boom"}, CodeRemoteError},
		{"not-found", &connection.NotFoundError{Resource: "k"}, CodeNotFound},
		{"invalid-response", &connection.InvalidResponseError{Expected: "a", Got: "b"}, CodeInvalidResponse},
		{"no-connections-cluster", cluster.ErrNoAvailableNodes, CodeNoConnections},
		{"no-connections-pool", pool.ErrExhausted, CodeNoConnections},
		{"shutting-down", pool.ErrDrained, CodeShuttingDown},
		{"unknown", errors.New("mystery"), CodeCommunication},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := failFrom[int](tc.err)
			assert.False(t, r.Success())
			assert.Equal(t, tc.code, r.Code)
		})
	}
}

func TestCommunicationErrorMarksNodeOffline(t *testing.T) {
	r := failFrom[int](&connection.CommunicationError{Err: errors.New("x")})
	assert.True(t, r.NodeOffline)
}

func TestResultErrString(t *testing.T) {
	r := Fail[int](CodeNotFound, "no such key")
	err := r.Err()
	assert.Equal(t, "not-found: no such key", err.Error())
}
