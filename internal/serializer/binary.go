package serializer

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/riakhq/riak-go-client/internal/message"
)

// NewBinarySerializer creates a Serializer using a compact hand-rolled
// binary format: a fixed-order list of optional fields, each present only
// if its bit is set in a 64-bit flag word written right after the code.
func NewBinarySerializer() Serializer {
	return binarySerializer{}
}

type binarySerializer struct{}

// Bit positions for every optional field, in the fixed order they are
// written to (and read from) the body. The two CRDT map fields are
// themselves gob-encoded sub-blobs rather than broken out field-by-field -
// they are already a recursive, server-version-dependent structure, and
// re-deriving a hand-rolled recursive binary layout for them buys nothing
// the frame codec or connection ever look at.
const (
	bitBucketType = iota
	bitBucket
	bitKey
	bitValue
	bitContents
	bitVClock
	bitContext
	bitKeys
	bitBuckets
	bitDone
	bitContinuation
	bitErrorCode
	bitErrorMessage
	bitR
	bitPR
	bitW
	bitDW
	bitPW
	bitRW
	bitTimeout
	bitReturnBody
	bitReturnTerms
	bitIncludeContext
	bitNotFoundOk
	bitBasicQuorum
	bitIfNotModified
	bitIfNoneMatch
	bitCounterValue
	bitCounterDelta
	bitCounterReturnVal
	bitDtType
	bitCounterVal
	bitSetValue
	bitSetAdds
	bitSetRemoves
	bitMapEntries
	bitMapOp
	bitIndexName
	bitIndexRange
	bitIndexKey
	bitIndexMin
	bitIndexMax
	bitMaxResults
	bitMRQuery
	bitMRContentType
	bitMRPhase
	bitMRResult
	bitSearchIndex
	bitSearchQuery
	bitSearchRows
	bitBucketProps
	bitClientID
	bitServerNode
	bitServerVersion
)

type fieldEncoder struct {
	body  bytes.Buffer
	flags uint64
}

func (e *fieldEncoder) set(bit int) {
	e.flags |= 1 << uint(bit)
}

func (e *fieldEncoder) bytes(bit int, v []byte) {
	if len(v) == 0 {
		return
	}
	e.set(bit)
	writeLenPrefixed(&e.body, v)
}

func (e *fieldEncoder) str(bit int, v string) {
	if v == "" {
		return
	}
	e.set(bit)
	writeLenPrefixed(&e.body, []byte(v))
}

func (e *fieldEncoder) bytesList(bit int, v [][]byte) {
	if len(v) == 0 {
		return
	}
	e.set(bit)
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(v)))
	e.body.Write(countBuf[:])
	for _, item := range v {
		writeLenPrefixed(&e.body, item)
	}
}

func (e *fieldEncoder) u32(bit int, v uint32) {
	if v == 0 {
		return
	}
	e.set(bit)
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	e.body.Write(buf[:])
}

func (e *fieldEncoder) i64(bit int, v int64) {
	if v == 0 {
		return
	}
	e.set(bit)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	e.body.Write(buf[:])
}

func (e *fieldEncoder) boolFlag(bit int, v bool) {
	if !v {
		return
	}
	e.set(bit)
}

func (e *fieldEncoder) gobBlob(bit int, v interface{}) error {
	if v == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	e.set(bit)
	writeLenPrefixed(&e.body, buf.Bytes())
	return nil
}

func writeLenPrefixed(buf *bytes.Buffer, v []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(v)))
	buf.Write(lenBuf[:])
	buf.Write(v)
}

func (binarySerializer) Serialize(msg message.Message) ([]byte, error) {
	var e fieldEncoder

	e.bytes(bitBucketType, msg.BucketType)
	e.bytes(bitBucket, msg.Bucket)
	e.bytes(bitKey, msg.Key)
	e.bytes(bitValue, msg.Value)
	e.bytesList(bitContents, msg.Contents)
	e.bytes(bitVClock, msg.VClock)
	e.bytes(bitContext, msg.Context)
	e.bytesList(bitKeys, msg.Keys)
	e.bytesList(bitBuckets, msg.Buckets)
	e.boolFlag(bitDone, msg.Done)
	e.bytes(bitContinuation, msg.Continuation)
	e.u32(bitErrorCode, msg.ErrorCode)
	e.str(bitErrorMessage, msg.ErrorMessage)
	e.u32(bitR, msg.R)
	e.u32(bitPR, msg.PR)
	e.u32(bitW, msg.W)
	e.u32(bitDW, msg.DW)
	e.u32(bitPW, msg.PW)
	e.u32(bitRW, msg.RW)
	e.u32(bitTimeout, msg.Timeout)
	e.boolFlag(bitReturnBody, msg.ReturnBody)
	e.boolFlag(bitReturnTerms, msg.ReturnTerms)
	e.boolFlag(bitIncludeContext, msg.IncludeContext)
	e.boolFlag(bitNotFoundOk, msg.NotFoundOk)
	e.boolFlag(bitBasicQuorum, msg.BasicQuorum)
	e.bytes(bitIfNotModified, msg.IfNotModified)
	e.boolFlag(bitIfNoneMatch, msg.IfNoneMatch)
	e.i64(bitCounterValue, msg.CounterValue)
	e.i64(bitCounterDelta, msg.CounterDelta)
	e.boolFlag(bitCounterReturnVal, msg.CounterReturnVal)
	e.str(bitDtType, msg.DtType)
	e.i64(bitCounterVal, msg.CounterVal)
	e.bytesList(bitSetValue, msg.SetValue)
	e.bytesList(bitSetAdds, msg.SetAdds)
	e.bytesList(bitSetRemoves, msg.SetRemoves)
	if len(msg.MapEntries) > 0 {
		if err := e.gobBlob(bitMapEntries, msg.MapEntries); err != nil {
			return nil, err
		}
	}
	if msg.MapOp != nil {
		if err := e.gobBlob(bitMapOp, msg.MapOp); err != nil {
			return nil, err
		}
	}
	e.str(bitIndexName, msg.IndexName)
	e.boolFlag(bitIndexRange, msg.IndexRange)
	e.bytes(bitIndexKey, msg.IndexKey)
	e.bytes(bitIndexMin, msg.IndexMin)
	e.bytes(bitIndexMax, msg.IndexMax)
	e.u32(bitMaxResults, msg.MaxResults)
	e.bytes(bitMRQuery, msg.MRQuery)
	e.str(bitMRContentType, msg.MRContentType)
	e.u32(bitMRPhase, msg.MRPhase)
	e.bytes(bitMRResult, msg.MRResult)
	e.str(bitSearchIndex, msg.SearchIndex)
	e.str(bitSearchQuery, msg.SearchQuery)
	e.bytes(bitSearchRows, msg.SearchRows)
	e.bytes(bitBucketProps, msg.BucketProps)
	e.bytes(bitClientID, msg.ClientID)
	e.str(bitServerNode, msg.ServerNode)
	e.str(bitServerVersion, msg.ServerVersion)

	out := make([]byte, 0, 9+e.body.Len())
	out = append(out, byte(msg.Code))
	var flagBuf [8]byte
	binary.BigEndian.PutUint64(flagBuf[:], e.flags)
	out = append(out, flagBuf[:]...)
	out = append(out, e.body.Bytes()...)
	return out, nil
}

type fieldDecoder struct {
	data  []byte
	pos   int
	flags uint64
}

func (d *fieldDecoder) has(bit int) bool {
	return d.flags&(1<<uint(bit)) != 0
}

func (d *fieldDecoder) readLenPrefixed() ([]byte, error) {
	if d.pos+4 > len(d.data) {
		return nil, fmt.Errorf("binary serializer: truncated length prefix")
	}
	n := binary.BigEndian.Uint32(d.data[d.pos : d.pos+4])
	d.pos += 4
	if d.pos+int(n) > len(d.data) {
		return nil, fmt.Errorf("binary serializer: truncated field data")
	}
	v := d.data[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return v, nil
}

func (d *fieldDecoder) bytes(bit int) ([]byte, error) {
	if !d.has(bit) {
		return nil, nil
	}
	return d.readLenPrefixed()
}

func (d *fieldDecoder) str(bit int) (string, error) {
	if !d.has(bit) {
		return "", nil
	}
	b, err := d.readLenPrefixed()
	return string(b), err
}

func (d *fieldDecoder) bytesList(bit int) ([][]byte, error) {
	if !d.has(bit) {
		return nil, nil
	}
	if d.pos+4 > len(d.data) {
		return nil, fmt.Errorf("binary serializer: truncated list count")
	}
	count := binary.BigEndian.Uint32(d.data[d.pos : d.pos+4])
	d.pos += 4
	out := make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := d.readLenPrefixed()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (d *fieldDecoder) u32(bit int) (uint32, error) {
	if !d.has(bit) {
		return 0, nil
	}
	if d.pos+4 > len(d.data) {
		return 0, fmt.Errorf("binary serializer: truncated uint32 field")
	}
	v := binary.BigEndian.Uint32(d.data[d.pos : d.pos+4])
	d.pos += 4
	return v, nil
}

func (d *fieldDecoder) i64(bit int) (int64, error) {
	if !d.has(bit) {
		return 0, nil
	}
	if d.pos+8 > len(d.data) {
		return 0, fmt.Errorf("binary serializer: truncated int64 field")
	}
	v := int64(binary.BigEndian.Uint64(d.data[d.pos : d.pos+8]))
	d.pos += 8
	return v, nil
}

func (d *fieldDecoder) gobMapEntries(bit int) ([]message.MapEntry, error) {
	if !d.has(bit) {
		return nil, nil
	}
	b, err := d.readLenPrefixed()
	if err != nil {
		return nil, err
	}
	var entries []message.MapEntry
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *fieldDecoder) gobMapOp(bit int) (*message.MapOp, error) {
	if !d.has(bit) {
		return nil, nil
	}
	b, err := d.readLenPrefixed()
	if err != nil {
		return nil, err
	}
	var op message.MapOp
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&op); err != nil {
		return nil, err
	}
	return &op, nil
}

func (binarySerializer) Deserialize(b []byte, msg *message.Message) error {
	if len(b) < 9 {
		return fmt.Errorf("binary serializer: frame too short for header")
	}
	d := fieldDecoder{data: b[9:], flags: binary.BigEndian.Uint64(b[1:9])}

	var err error
	msg.Code = message.Code(b[0])

	if msg.BucketType, err = d.bytes(bitBucketType); err != nil {
		return err
	}
	if msg.Bucket, err = d.bytes(bitBucket); err != nil {
		return err
	}
	if msg.Key, err = d.bytes(bitKey); err != nil {
		return err
	}
	if msg.Value, err = d.bytes(bitValue); err != nil {
		return err
	}
	if msg.Contents, err = d.bytesList(bitContents); err != nil {
		return err
	}
	if msg.VClock, err = d.bytes(bitVClock); err != nil {
		return err
	}
	if msg.Context, err = d.bytes(bitContext); err != nil {
		return err
	}
	if msg.Keys, err = d.bytesList(bitKeys); err != nil {
		return err
	}
	if msg.Buckets, err = d.bytesList(bitBuckets); err != nil {
		return err
	}
	msg.Done = d.has(bitDone)
	if msg.Continuation, err = d.bytes(bitContinuation); err != nil {
		return err
	}
	if msg.ErrorCode, err = d.u32(bitErrorCode); err != nil {
		return err
	}
	if msg.ErrorMessage, err = d.str(bitErrorMessage); err != nil {
		return err
	}
	if msg.R, err = d.u32(bitR); err != nil {
		return err
	}
	if msg.PR, err = d.u32(bitPR); err != nil {
		return err
	}
	if msg.W, err = d.u32(bitW); err != nil {
		return err
	}
	if msg.DW, err = d.u32(bitDW); err != nil {
		return err
	}
	if msg.PW, err = d.u32(bitPW); err != nil {
		return err
	}
	if msg.RW, err = d.u32(bitRW); err != nil {
		return err
	}
	if msg.Timeout, err = d.u32(bitTimeout); err != nil {
		return err
	}
	msg.ReturnBody = d.has(bitReturnBody)
	msg.ReturnTerms = d.has(bitReturnTerms)
	msg.IncludeContext = d.has(bitIncludeContext)
	msg.NotFoundOk = d.has(bitNotFoundOk)
	msg.BasicQuorum = d.has(bitBasicQuorum)
	if msg.IfNotModified, err = d.bytes(bitIfNotModified); err != nil {
		return err
	}
	msg.IfNoneMatch = d.has(bitIfNoneMatch)
	if msg.CounterValue, err = d.i64(bitCounterValue); err != nil {
		return err
	}
	if msg.CounterDelta, err = d.i64(bitCounterDelta); err != nil {
		return err
	}
	msg.CounterReturnVal = d.has(bitCounterReturnVal)
	if msg.DtType, err = d.str(bitDtType); err != nil {
		return err
	}
	if msg.CounterVal, err = d.i64(bitCounterVal); err != nil {
		return err
	}
	if msg.SetValue, err = d.bytesList(bitSetValue); err != nil {
		return err
	}
	if msg.SetAdds, err = d.bytesList(bitSetAdds); err != nil {
		return err
	}
	if msg.SetRemoves, err = d.bytesList(bitSetRemoves); err != nil {
		return err
	}
	if msg.MapEntries, err = d.gobMapEntries(bitMapEntries); err != nil {
		return err
	}
	if msg.MapOp, err = d.gobMapOp(bitMapOp); err != nil {
		return err
	}
	if msg.IndexName, err = d.str(bitIndexName); err != nil {
		return err
	}
	msg.IndexRange = d.has(bitIndexRange)
	if msg.IndexKey, err = d.bytes(bitIndexKey); err != nil {
		return err
	}
	if msg.IndexMin, err = d.bytes(bitIndexMin); err != nil {
		return err
	}
	if msg.IndexMax, err = d.bytes(bitIndexMax); err != nil {
		return err
	}
	if msg.MaxResults, err = d.u32(bitMaxResults); err != nil {
		return err
	}
	if msg.MRQuery, err = d.bytes(bitMRQuery); err != nil {
		return err
	}
	if msg.MRContentType, err = d.str(bitMRContentType); err != nil {
		return err
	}
	if msg.MRPhase, err = d.u32(bitMRPhase); err != nil {
		return err
	}
	if msg.MRResult, err = d.bytes(bitMRResult); err != nil {
		return err
	}
	if msg.SearchIndex, err = d.str(bitSearchIndex); err != nil {
		return err
	}
	if msg.SearchQuery, err = d.str(bitSearchQuery); err != nil {
		return err
	}
	if msg.SearchRows, err = d.bytes(bitSearchRows); err != nil {
		return err
	}
	if msg.BucketProps, err = d.bytes(bitBucketProps); err != nil {
		return err
	}
	if msg.ClientID, err = d.bytes(bitClientID); err != nil {
		return err
	}
	if msg.ServerNode, err = d.str(bitServerNode); err != nil {
		return err
	}
	if msg.ServerVersion, err = d.str(bitServerVersion); err != nil {
		return err
	}

	return nil
}
