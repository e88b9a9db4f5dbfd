// Package frame implements the wire framing underneath a connection: a
// 4-byte big-endian length prefix followed by exactly that many payload
// bytes. It knows nothing about message.Message or any serializer - those
// live one layer up, in internal/connection.
package frame
