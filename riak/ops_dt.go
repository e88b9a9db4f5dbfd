package riak

import (
	"time"

	"github.com/riakhq/riak-go-client/internal/connection"
	"github.com/riakhq/riak-go-client/internal/message"
)

const (
	dtTypeCounter = "counter"
	dtTypeSet     = "set"
	dtTypeMap     = "map"
)

func (c *Client) dtFetch(bucketType, bucket, key, dtType string, opts DtFetchOptions) (message.Message, error) {
	var resp message.Message
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{Code: message.CodeDtFetchReq, BucketType: []byte(bucketType), Bucket: []byte(bucket), Key: []byte(key), DtType: dtType}
		opts.populate(&req)
		r, err := conn.WriteReadTyped(c.timeout, req, message.CodeDtFetchResp)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	return resp, err
}

// DtFetchCounter fetches a CRDT counter.
func (c *Client) DtFetchCounter(bucketType, bucket, key string, opts DtFetchOptions) Result[Counter] {
	start := time.Now()
	defer c.observe("dt-fetch-counter", start)

	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[Counter](err)
	}
	resp, err := c.dtFetch(bucketType, bucket, key, dtTypeCounter, opts)
	if err != nil {
		return failFrom[Counter](err)
	}
	return Ok(Counter{Value: resp.CounterVal, Context: resp.Context})
}

// DtFetchSet fetches a CRDT set.
func (c *Client) DtFetchSet(bucketType, bucket, key string, opts DtFetchOptions) Result[Set] {
	start := time.Now()
	defer c.observe("dt-fetch-set", start)

	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[Set](err)
	}
	resp, err := c.dtFetch(bucketType, bucket, key, dtTypeSet, opts)
	if err != nil {
		return failFrom[Set](err)
	}
	return Ok(Set{Members: resp.SetValue, Context: resp.Context})
}

// DtFetchMap fetches a CRDT map.
func (c *Client) DtFetchMap(bucketType, bucket, key string, opts DtFetchOptions) Result[*Map] {
	start := time.Now()
	defer c.observe("dt-fetch-map", start)

	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[*Map](err)
	}
	resp, err := c.dtFetch(bucketType, bucket, key, dtTypeMap, opts)
	if err != nil {
		return failFrom[*Map](err)
	}
	return Ok(mapFromEntries(resp.MapEntries, resp.Context))
}

// DtUpdateCounter applies delta to a CRDT counter.
func (c *Client) DtUpdateCounter(bucketType, bucket, key string, delta int64, opts DtUpdateOptions) Result[Counter] {
	start := time.Now()
	defer c.observe("dt-update-counter", start)

	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[Counter](err)
	}

	var value Counter
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{Code: message.CodeDtUpdateReq, BucketType: []byte(bucketType), Bucket: []byte(bucket), Key: []byte(key), DtType: dtTypeCounter, CounterDelta: delta}
		opts.populate(&req)
		resp, err := conn.WriteReadTyped(c.timeout, req, message.CodeDtUpdateResp)
		if err != nil {
			return err
		}
		value = Counter{Value: resp.CounterVal, Context: resp.Context}
		return nil
	})
	if err != nil {
		return failFrom[Counter](err)
	}
	return Ok(value)
}

// DtUpdateSet adds and removes members of a CRDT set. A non-empty removes
// requires opts.Context to carry the most recent context observed via
// DtFetchSet.
func (c *Client) DtUpdateSet(bucketType, bucket, key string, adds, removes [][]byte, opts DtUpdateOptions) Result[Set] {
	start := time.Now()
	defer c.observe("dt-update-set", start)

	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[Set](err)
	}
	if len(removes) > 0 && len(opts.Context) == 0 {
		return failFrom[Set](&ValidationError{Reason: "removing set members requires a context from a prior fetch"})
	}

	var value Set
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{
			Code: message.CodeDtUpdateReq, BucketType: []byte(bucketType), Bucket: []byte(bucket), Key: []byte(key),
			DtType: dtTypeSet, SetAdds: adds, SetRemoves: removes,
		}
		opts.populate(&req)
		resp, err := conn.WriteReadTyped(c.timeout, req, message.CodeDtUpdateResp)
		if err != nil {
			return err
		}
		value = Set{Members: resp.SetValue, Context: resp.Context}
		return nil
	})
	if err != nil {
		return failFrom[Set](err)
	}
	return Ok(value)
}

// MapEntryUpdate names one entry to add/update or remove in a CRDT map
// update.
type MapEntryUpdate struct {
	Name  string
	Kind  string
	Value []byte
}

// DtUpdateMap applies updates and removes to a CRDT map. A non-empty
// removes requires opts.Context to carry the most recent context observed
// via DtFetchMap.
func (c *Client) DtUpdateMap(bucketType, bucket, key string, updates, removes []MapEntryUpdate, opts DtUpdateOptions) Result[*Map] {
	start := time.Now()
	defer c.observe("dt-update-map", start)

	if err := validateKeyTriple(bucketType, bucket, key); err != nil {
		return failFrom[*Map](err)
	}
	if len(removes) > 0 && len(opts.Context) == 0 {
		return failFrom[*Map](&ValidationError{Reason: "removing map entries requires a context from a prior fetch"})
	}

	mapOp := &message.MapOp{
		Updates: toMessageEntries(updates),
		Removes: toMessageEntries(removes),
	}

	var result *Map
	err := c.cluster.UseConnection(c.timeout, func(conn *connection.Connection) error {
		req := message.Message{
			Code: message.CodeDtUpdateReq, BucketType: []byte(bucketType), Bucket: []byte(bucket), Key: []byte(key),
			DtType: dtTypeMap, MapOp: mapOp,
		}
		opts.populate(&req)
		resp, err := conn.WriteReadTyped(c.timeout, req, message.CodeDtUpdateResp)
		if err != nil {
			return err
		}
		result = mapFromEntries(resp.MapEntries, resp.Context)
		return nil
	})
	if err != nil {
		return failFrom[*Map](err)
	}
	return Ok(result)
}

func toMessageEntries(in []MapEntryUpdate) []message.MapEntry {
	if len(in) == 0 {
		return nil
	}
	out := make([]message.MapEntry, len(in))
	for i, e := range in {
		out[i] = message.MapEntry{Name: []byte(e.Name), Kind: e.Kind, Value: e.Value}
	}
	return out
}
