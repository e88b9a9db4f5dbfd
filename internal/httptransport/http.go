package httptransport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/riakhq/riak-go-client/internal/connection"
)

// Transport issues the legacy HTTP bucket-properties requests, round-
// robining across a fixed set of base URLs.
type Transport struct {
	client  *http.Client
	bases   []*url.URL
	counter atomic.Uint32
}

// New creates a Transport over endpoints (e.g. "http://10.0.0.1:8098"),
// using timeout as both the whole-request and idle-connection timeout.
func New(endpoints []string, timeout time.Duration) (*Transport, error) {
	bases := make([]*url.URL, len(endpoints))
	for i, ep := range endpoints {
		u, err := url.Parse(ep)
		if err != nil {
			return nil, fmt.Errorf("httptransport: invalid endpoint %q: %w", ep, err)
		}
		bases[i] = u
	}
	return &Transport{
		bases: bases,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     timeout,
			},
		},
	}, nil
}

func (t *Transport) nextBase() *url.URL {
	idx := t.counter.Add(1) % uint32(len(t.bases))
	return t.bases[idx]
}

func bucketPropsPath(bucketType, bucket string) string {
	if bucketType == "" || bucketType == "default" {
		return fmt.Sprintf("/riak/%s/props", bucket)
	}
	return fmt.Sprintf("/types/%s/buckets/%s/props", bucketType, bucket)
}

// GetBucketProps fetches the raw JSON properties document for a bucket.
func (t *Transport) GetBucketProps(bucketType, bucket string) ([]byte, error) {
	u := *t.nextBase()
	u.Path = bucketPropsPath(bucketType, bucket)

	resp, err := t.client.Get(u.String())
	if err != nil {
		return nil, &connection.CommunicationError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, &connection.NotFoundError{Resource: fmt.Sprintf("bucket props %s/%s", bucketType, bucket)}
	default:
		return nil, &connection.InvalidResponseError{Expected: "200", Got: resp.Status}
	}
}

// SetBucketProps replaces a bucket's properties with the given raw JSON
// document, e.g. {"props":{"n_val":3}}.
func (t *Transport) SetBucketProps(bucketType, bucket string, props []byte) error {
	u := *t.nextBase()
	u.Path = bucketPropsPath(bucketType, bucket)

	req, err := http.NewRequest(http.MethodPut, u.String(), bytes.NewReader(props))
	if err != nil {
		return &connection.CommunicationError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return &connection.CommunicationError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return &connection.NotFoundError{Resource: fmt.Sprintf("bucket props %s/%s", bucketType, bucket)}
	default:
		return &connection.InvalidResponseError{Expected: "204", Got: resp.Status}
	}
}

// ResetBucketProps deletes a bucket's custom properties, reverting it to
// defaults.
func (t *Transport) ResetBucketProps(bucketType, bucket string) error {
	u := *t.nextBase()
	u.Path = bucketPropsPath(bucketType, bucket)

	req, err := http.NewRequest(http.MethodDelete, u.String(), nil)
	if err != nil {
		return &connection.CommunicationError{Err: err}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return &connection.CommunicationError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return &connection.NotFoundError{Resource: fmt.Sprintf("bucket props %s/%s", bucketType, bucket)}
	default:
		return &connection.InvalidResponseError{Expected: "204", Got: resp.Status}
	}
}

// Close releases idle connections.
func (t *Transport) Close() {
	t.client.CloseIdleConnections()
}
