package message

// Message is the single envelope type used for every request and response
// body that crosses the wire. Which fields are populated depends on the
// Code; this mirrors the upstream Riak protocol, where each message code
// has its own PB schema, but keeps the core's view of "a typed payload"
// down to one Go type plus a handful of optional fields a Serializer can
// walk generically.
type Message struct {
	Code Code

	// Key triple. BucketType may be empty (older server / default type).
	BucketType []byte
	Bucket     []byte
	Key        []byte

	// Value objects. Value is the convenience single-content accessor;
	// Contents holds every content returned when the server could not
	// resolve concurrent writes (siblings). VClock is shared by all of them.
	Value    []byte
	Contents [][]byte
	VClock   []byte

	// CRDT context, echoed on updates that remove elements.
	Context []byte

	// Listing results (list-keys / list-buckets), delivered across
	// possibly-many frames with Done set on the last one.
	Keys    [][]byte
	Buckets [][]byte
	Done    bool

	// Pagination token for index / map-reduce / search streams.
	Continuation []byte

	// error-resp payload.
	ErrorCode    uint32
	ErrorMessage string

	// Quorum and request-shaping options, populated from the caller's
	// per-operation options record (see the riak package's populate step).
	R              uint32
	PR             uint32
	W              uint32
	DW             uint32
	PW             uint32
	RW             uint32
	Timeout        uint32
	ReturnBody     bool
	ReturnTerms    bool
	IncludeContext bool
	NotFoundOk     bool
	BasicQuorum    bool
	IfNotModified  []byte
	IfNoneMatch    bool

	// Counter (legacy, pre-CRDT) operations.
	CounterValue     int64
	CounterDelta     int64
	CounterReturnVal bool

	// CRDT counter/set/map operations.
	DtType       string // "counter" | "set" | "map"
	CounterVal   int64
	SetValue     [][]byte
	SetAdds      [][]byte
	SetRemoves   [][]byte
	MapEntries   []MapEntry
	MapOp        *MapOp

	// Secondary-index query.
	IndexName   string
	IndexRange  bool
	IndexKey    []byte
	IndexMin    []byte
	IndexMax    []byte
	MaxResults  uint32

	// Map-reduce: the query body is opaque to the core (upstream it is a
	// JSON or Erlang term document); ContentType tags how to interpret it.
	MRQuery       []byte
	MRContentType string
	MRPhase       uint32
	MRResult      []byte

	// Search (Solr-backed "yokozuna").
	SearchIndex string
	SearchQuery string
	SearchRows  []byte // opaque, serializer-defined encoding of result docs

	// Bucket properties, carried as an opaque encoded blob (JSON over the
	// HTTP transport; see internal/httptransport) rather than broken out
	// field by field, since the property set is server-version-dependent.
	BucketProps []byte

	// Client ID and server info.
	ClientID      []byte
	ServerNode    string
	ServerVersion string
}

// MapEntry is one entry of a fetched CRDT map: a name/kind pair plus its
// current value, represented generically as bytes (counter: 8-byte BE
// int64; set: length-prefixed byte strings; register: raw bytes; flag: one
// byte; nested map: recursively-encoded MapEntry list).
type MapEntry struct {
	Name  []byte
	Kind  string // "counter" | "set" | "register" | "flag" | "map"
	Value []byte
}

// MapOp describes a CRDT map update: the set of entries to add/update and
// the set of entries to remove, keyed by name and kind exactly like MapEntry.
type MapOp struct {
	Updates []MapEntry
	Removes []MapEntry
}

// NewErrorResponse builds a generic error-resp payload.
func NewErrorResponse(code uint32, msg string) *Message {
	return &Message{
		Code:         CodeErrorResp,
		ErrorCode:    code,
		ErrorMessage: msg,
	}
}
