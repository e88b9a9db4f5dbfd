package riak

import (
	"errors"

	"github.com/riakhq/riak-go-client/internal/cluster"
	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/pool"
)

// ResultCode classifies why a Result is not a success. The zero value,
// CodeSuccess, is never set on an error Result.
type ResultCode int

const (
	CodeSuccess ResultCode = iota
	CodeValidation
	CodeCommunication
	CodeShuttingDown
	CodeNoConnections
	CodeNotFound
	CodeInvalidResponse
	CodeRemoteError
	CodeBatchException
)

func (c ResultCode) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeValidation:
		return "validation"
	case CodeCommunication:
		return "communication"
	case CodeShuttingDown:
		return "shutting-down"
	case CodeNoConnections:
		return "no-connections"
	case CodeNotFound:
		return "not-found"
	case CodeInvalidResponse:
		return "invalid-response"
	case CodeRemoteError:
		return "remote-error"
	case CodeBatchException:
		return "batch-exception"
	default:
		return "unknown"
	}
}

// Result is the uniform envelope every façade method returns.
type Result[T any] struct {
	Value        T
	Code         ResultCode
	Message      string
	NodeOffline  bool
	Done         bool
	Continuation []byte
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Code: CodeSuccess}
}

// Fail builds an error Result with the given code and message.
func Fail[T any](code ResultCode, message string) Result[T] {
	return Result[T]{Code: code, Message: message}
}

// Success reports whether the Result carries a usable Value.
func (r Result[T]) Success() bool { return r.Code == CodeSuccess }

// Err returns a non-nil error describing the Result when it is not a
// success, or nil otherwise. It lets callers use the familiar `if err :=
// ...; err != nil` idiom alongside the richer Result fields.
func (r Result[T]) Err() error {
	if r.Success() {
		return nil
	}
	return &ResultError{Code: r.Code, Message: r.Message}
}

// ResultError adapts a non-success Result to the error interface.
type ResultError struct {
	Code    ResultCode
	Message string
}

func (e *ResultError) Error() string {
	return e.Code.String() + ": " + e.Message
}

// ValidationError marks caller input rejected before touching the wire.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// fromError classifies an error surfaced by the cluster/connection/pool
// layers into a ResultCode, message, and node-offline flag.
func fromError(err error) (ResultCode, string, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return CodeValidation, validationErr.Reason, false
	}

	var commErr *connection.CommunicationError
	if errors.As(err, &commErr) {
		return CodeCommunication, err.Error(), true
	}

	var remoteErr *connection.RemoteError
	if errors.As(err, &remoteErr) {
		return CodeRemoteError, remoteErr.Message, false
	}

	var notFoundErr *connection.NotFoundError
	if errors.As(err, &notFoundErr) {
		return CodeNotFound, err.Error(), false
	}

	var invalidErr *connection.InvalidResponseError
	if errors.As(err, &invalidErr) {
		return CodeInvalidResponse, err.Error(), false
	}

	if errors.Is(err, cluster.ErrNoAvailableNodes) || errors.Is(err, pool.ErrExhausted) {
		return CodeNoConnections, err.Error(), false
	}

	if errors.Is(err, pool.ErrDrained) {
		return CodeShuttingDown, err.Error(), false
	}

	var resultErr *ResultError
	if errors.As(err, &resultErr) {
		return resultErr.Code, resultErr.Message, resultErr.Code == CodeCommunication
	}

	return CodeCommunication, err.Error(), true
}

// failFrom builds an error Result[T] from a Go error using fromError's
// classification.
func failFrom[T any](err error) Result[T] {
	code, msg, offline := fromError(err)
	return Result[T]{Code: code, Message: msg, NodeOffline: offline}
}
