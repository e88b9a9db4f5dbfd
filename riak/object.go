package riak

import "github.com/riakhq/riak-go-client/internal/message"

// RiakObject is a single version of a value at a key: the key triple it
// belongs to, its raw content bytes, and the causal vector the server
// attached to it. Siblings is non-empty only when the server returned
// more than one content for the key - Riak could not resolve concurrent
// writes and leaves that to the client.
type RiakObject struct {
	BucketType string
	Bucket     string
	Key        string
	Value      []byte
	VClock     []byte
	Siblings   []RiakObject
}

// objectFromContents builds a RiakObject from a key triple, a causal
// vector, and the list of raw contents a get or put-with-return-body
// response carried. ok is false when there is no causal vector at all -
// the façade's signal for not-found.
func objectFromContents(bucketType, bucket, key string, vclock []byte, contents [][]byte) (RiakObject, bool) {
	if len(vclock) == 0 {
		return RiakObject{}, false
	}
	if len(contents) == 0 {
		return RiakObject{BucketType: bucketType, Bucket: bucket, Key: key, VClock: vclock}, true
	}

	primary := RiakObject{
		BucketType: bucketType,
		Bucket:     bucket,
		Key:        key,
		Value:      contents[0],
		VClock:     vclock,
	}
	if len(contents) == 1 {
		return primary, true
	}

	siblings := make([]RiakObject, 0, len(contents))
	for _, c := range contents {
		siblings = append(siblings, RiakObject{
			BucketType: bucketType,
			Bucket:     bucket,
			Key:        key,
			Value:      c,
			VClock:     vclock,
		})
	}
	primary.Siblings = siblings
	return primary, true
}

// objectFromResponse is objectFromContents for a raw response message,
// preferring Contents when set and falling back to the single Value field
// (the shape a put-resp without siblings uses).
func objectFromResponse(bucketType, bucket, key string, msg message.Message) (RiakObject, bool) {
	if len(msg.Contents) > 0 {
		return objectFromContents(bucketType, bucket, key, msg.VClock, msg.Contents)
	}
	return objectFromContents(bucketType, bucket, key, msg.VClock, [][]byte{msg.Value})
}
