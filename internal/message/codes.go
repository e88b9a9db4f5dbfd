package message

// Code identifies the kind of a request or response frame. The binary
// serializer writes it as the first payload byte, right after the frame
// length; the gob and JSON serializers carry it inside their encoded body.
type Code uint8

const (
	CodeErrorResp Code = 0

	CodePingReq  Code = 1
	CodePingResp Code = 2

	CodeGetClientIDReq  Code = 3
	CodeGetClientIDResp Code = 4
	CodeSetClientIDReq  Code = 5
	CodeSetClientIDResp Code = 6

	CodeGetServerInfoReq  Code = 7
	CodeGetServerInfoResp Code = 8

	CodeGetReq  Code = 9
	CodeGetResp Code = 10

	CodePutReq  Code = 11
	CodePutResp Code = 12

	CodeDelReq  Code = 13
	CodeDelResp Code = 14

	CodeListBucketsReq  Code = 15
	CodeListBucketsResp Code = 16

	CodeListKeysReq  Code = 17
	CodeListKeysResp Code = 18

	CodeGetBucketReq  Code = 19
	CodeGetBucketResp Code = 20

	CodeSetBucketReq  Code = 21
	CodeSetBucketResp Code = 22

	CodeMapRedReq  Code = 23
	CodeMapRedResp Code = 24

	CodeIndexReq  Code = 25
	CodeIndexResp Code = 26

	CodeSearchQueryReq  Code = 27
	CodeSearchQueryResp Code = 28

	CodeResetBucketReq  Code = 29
	CodeResetBucketResp Code = 30

	CodeCounterUpdateReq  Code = 50
	CodeCounterUpdateResp Code = 51
	CodeCounterGetReq     Code = 52
	CodeCounterGetResp    Code = 53

	CodeDtFetchReq  Code = 80
	CodeDtFetchResp Code = 81
	CodeDtUpdateReq Code = 82
	CodeDtUpdateResp Code = 83
)

// String gives a human-readable name for logging and error messages.
func (c Code) String() string {
	switch c {
	case CodeErrorResp:
		return "error-resp"
	case CodePingReq:
		return "ping-req"
	case CodePingResp:
		return "ping-resp"
	case CodeGetClientIDReq:
		return "get-client-id-req"
	case CodeGetClientIDResp:
		return "get-client-id-resp"
	case CodeSetClientIDReq:
		return "set-client-id-req"
	case CodeSetClientIDResp:
		return "set-client-id-resp"
	case CodeGetServerInfoReq:
		return "get-server-info-req"
	case CodeGetServerInfoResp:
		return "get-server-info-resp"
	case CodeGetReq:
		return "get-req"
	case CodeGetResp:
		return "get-resp"
	case CodePutReq:
		return "put-req"
	case CodePutResp:
		return "put-resp"
	case CodeDelReq:
		return "del-req"
	case CodeDelResp:
		return "del-resp"
	case CodeListBucketsReq:
		return "list-buckets-req"
	case CodeListBucketsResp:
		return "list-buckets-resp"
	case CodeListKeysReq:
		return "list-keys-req"
	case CodeListKeysResp:
		return "list-keys-resp"
	case CodeGetBucketReq:
		return "get-bucket-req"
	case CodeGetBucketResp:
		return "get-bucket-resp"
	case CodeSetBucketReq:
		return "set-bucket-req"
	case CodeSetBucketResp:
		return "set-bucket-resp"
	case CodeMapRedReq:
		return "map-red-req"
	case CodeMapRedResp:
		return "map-red-resp"
	case CodeIndexReq:
		return "index-req"
	case CodeIndexResp:
		return "index-resp"
	case CodeSearchQueryReq:
		return "search-query-req"
	case CodeSearchQueryResp:
		return "search-query-resp"
	case CodeResetBucketReq:
		return "reset-bucket-req"
	case CodeResetBucketResp:
		return "reset-bucket-resp"
	case CodeCounterUpdateReq:
		return "counter-update-req"
	case CodeCounterUpdateResp:
		return "counter-update-resp"
	case CodeCounterGetReq:
		return "counter-get-req"
	case CodeCounterGetResp:
		return "counter-get-resp"
	case CodeDtFetchReq:
		return "dt-fetch-req"
	case CodeDtFetchResp:
		return "dt-fetch-resp"
	case CodeDtUpdateReq:
		return "dt-update-req"
	case CodeDtUpdateResp:
		return "dt-update-resp"
	default:
		return "unknown"
	}
}
