// Package connection owns a single net.Conn to one Riak node and knows how
// to run one request/response exchange - or a streamed sequence of
// responses - across it using internal/frame for wire framing and an
// injected serializer.Serializer for message encoding.
//
// A Connection is not safe for concurrent request use: callers obtain
// exclusive use of one from internal/pool before issuing a request and
// return it afterward. Connections mark themselves broken on any I/O or
// decode failure so the owning pool knows to discard rather than recycle
// them.
package connection
