// Package serializer turns a message.Message into wire bytes and back.
//
// The core (frame codec, connection, pool, dispatcher) never constructs a
// serializer itself - one is wired into the client at construction time,
// the same way the frame codec's typed read/write is generic over a
// serialize/deserialize pair. Three implementations are provided:
//
//   - binary: a compact hand-rolled encoding using a flag bitmask to
//     encode only the fields a given message actually sets. Lowest
//     overhead, smallest frames, recommended for production use.
//   - gob: Go's built-in gob encoding. No hand-written marshalling code,
//     at the cost of larger payloads and Go-to-Go only interop.
//   - json: human-readable, useful for debugging and for interop with
//     tooling that wants to inspect frames on the wire.
//
// All three are safe for concurrent use without additional synchronization.
package serializer
