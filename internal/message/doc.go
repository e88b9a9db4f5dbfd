// Package message defines the typed request/response payloads that cross
// the wire, and the one-byte codes that identify them in a frame.
//
// The payload layouts mirror the Riak binary protocol's message catalogue,
// but the per-message body encoding itself is out of scope here: this
// package is a plain data model, and turning a Message into bytes (and
// back) is delegated to a Serializer (see internal/serializer). That keeps
// the frame codec, connection and dispatcher layers ignorant of wire
// formats entirely - the frame codec moves an already-serialized []byte
// with the Code carried inside it, and the connection hands Messages to
// the Serializer.
package message
