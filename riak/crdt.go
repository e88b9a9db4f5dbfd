package riak

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/riakhq/riak-go-client/internal/message"
)

// Counter is a fetched CRDT counter value.
type Counter struct {
	Value   int64
	Context []byte
}

// Set is a fetched CRDT set value - an unordered multiset of opaque
// member byte-strings.
type Set struct {
	Members [][]byte
	Context []byte
}

// Contains reports whether member is present in the set.
func (s Set) Contains(member []byte) bool {
	for _, m := range s.Members {
		if string(m) == string(member) {
			return true
		}
	}
	return false
}

// MapValue is one entry of a fetched CRDT map: its kind tag and raw
// value bytes. Decoding a nested map's own entries is left to the
// caller - the wire layout of a CRDT map's children is exactly the kind
// of per-message body encoding the Serializer collaborator owns, not the
// façade.
type MapValue struct {
	Name  string
	Kind  string
	Value []byte
}

// Map is a fetched CRDT map. Its entry table is a lock-free concurrent
// map because callers may read entries while preparing a concurrent
// update against the same fetched snapshot - see DESIGN.md.
type Map struct {
	Context []byte
	entries *xsync.MapOf[string, MapValue]
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{entries: xsync.NewMapOf[string, MapValue]()}
}

func mapEntryKey(name, kind string) string { return kind + ":" + name }

// Put inserts or replaces an entry.
func (m *Map) Put(name, kind string, value []byte) {
	m.entries.Store(mapEntryKey(name, kind), MapValue{Name: name, Kind: kind, Value: value})
}

// Get looks up an entry by name and kind.
func (m *Map) Get(name, kind string) (MapValue, bool) {
	return m.entries.Load(mapEntryKey(name, kind))
}

// Len returns the number of entries in the map.
func (m *Map) Len() int { return m.entries.Size() }

// Range calls f for every entry, in no particular order. Range stops
// early if f returns false.
func (m *Map) Range(f func(v MapValue) bool) {
	m.entries.Range(func(_ string, v MapValue) bool {
		return f(v)
	})
}

// mapFromEntries builds a Map from the wire-level entries a dt-fetch
// response carried.
func mapFromEntries(entries []message.MapEntry, context []byte) *Map {
	m := NewMap()
	for _, e := range entries {
		m.Put(string(e.Name), e.Kind, e.Value)
	}
	m.Context = context
	return m
}
