package riak

import "github.com/riakhq/riak-go-client/internal/message"

// GetOptions configures a Get. Zero values mean "let the server pick its
// default" - populate only copies fields the caller actually set.
type GetOptions struct {
	R             uint32
	PR            uint32
	NotFoundOk    bool
	BasicQuorum   bool
	IfNotModified []byte
	Timeout       uint32
}

func (o GetOptions) populate(msg *message.Message) {
	msg.R = o.R
	msg.PR = o.PR
	msg.NotFoundOk = o.NotFoundOk
	msg.BasicQuorum = o.BasicQuorum
	msg.IfNotModified = o.IfNotModified
	msg.Timeout = o.Timeout
}

// PutOptions configures a Put.
type PutOptions struct {
	W           uint32
	DW          uint32
	PW          uint32
	ReturnBody  bool
	IfNoneMatch bool
	Timeout     uint32
}

func (o PutOptions) populate(msg *message.Message) {
	msg.W = o.W
	msg.DW = o.DW
	msg.PW = o.PW
	msg.ReturnBody = o.ReturnBody
	msg.IfNoneMatch = o.IfNoneMatch
	msg.Timeout = o.Timeout
}

// DeleteOptions configures a Delete.
type DeleteOptions struct {
	RW      uint32
	R       uint32
	W       uint32
	PR      uint32
	PW      uint32
	Timeout uint32
}

func (o DeleteOptions) populate(msg *message.Message) {
	msg.RW = o.RW
	msg.R = o.R
	msg.W = o.W
	msg.PR = o.PR
	msg.PW = o.PW
	msg.Timeout = o.Timeout
}

// IndexOptions configures a secondary-index (2i) query.
type IndexOptions struct {
	Range        bool
	MaxResults   uint32
	Continuation []byte
	ReturnTerms  bool
	Timeout      uint32
}

func (o IndexOptions) populate(msg *message.Message) {
	msg.IndexRange = o.Range
	msg.MaxResults = o.MaxResults
	msg.Continuation = o.Continuation
	msg.ReturnTerms = o.ReturnTerms
	msg.Timeout = o.Timeout
}

// MapReduceOptions configures a map-reduce job.
type MapReduceOptions struct {
	ContentType string
	Timeout     uint32
}

func (o MapReduceOptions) populate(msg *message.Message) {
	msg.MRContentType = o.ContentType
	msg.Timeout = o.Timeout
}

// SearchOptions configures a search query.
type SearchOptions struct {
	Timeout uint32
}

func (o SearchOptions) populate(msg *message.Message) {
	msg.Timeout = o.Timeout
}

// DtFetchOptions configures a CRDT fetch.
type DtFetchOptions struct {
	R              uint32
	PR             uint32
	IncludeContext bool
	BasicQuorum    bool
	NotFoundOk     bool
	Timeout        uint32
}

func (o DtFetchOptions) populate(msg *message.Message) {
	msg.R = o.R
	msg.PR = o.PR
	msg.IncludeContext = o.IncludeContext
	msg.BasicQuorum = o.BasicQuorum
	msg.NotFoundOk = o.NotFoundOk
	msg.Timeout = o.Timeout
}

// DtUpdateOptions configures a CRDT update (counter, set, or map).
type DtUpdateOptions struct {
	W              uint32
	DW             uint32
	PW             uint32
	ReturnBody     bool
	IncludeContext bool
	Timeout        uint32
	Context        []byte
}

func (o DtUpdateOptions) populate(msg *message.Message) {
	msg.W = o.W
	msg.DW = o.DW
	msg.PW = o.PW
	msg.ReturnBody = o.ReturnBody
	msg.IncludeContext = o.IncludeContext
	msg.Timeout = o.Timeout
	msg.Context = o.Context
}

// CounterGetOptions configures a legacy (non-CRDT-map) counter read.
type CounterGetOptions struct {
	R       uint32
	PR      uint32
	Timeout uint32
}

func (o CounterGetOptions) populate(msg *message.Message) {
	msg.R = o.R
	msg.PR = o.PR
	msg.Timeout = o.Timeout
}

// CounterUpdateOptions configures a legacy counter increment/decrement.
type CounterUpdateOptions struct {
	W           uint32
	DW          uint32
	PW          uint32
	ReturnValue bool
	Timeout     uint32
}

func (o CounterUpdateOptions) populate(msg *message.Message) {
	msg.W = o.W
	msg.DW = o.DW
	msg.PW = o.PW
	msg.CounterReturnVal = o.ReturnValue
	msg.Timeout = o.Timeout
}
