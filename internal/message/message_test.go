package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorResponse(t *testing.T) {
	msg := NewErrorResponse(5, "not found")
	assert.Equal(t, CodeErrorResp, msg.Code)
	assert.Equal(t, uint32(5), msg.ErrorCode)
	assert.Equal(t, "not found", msg.ErrorMessage)
}

func TestCodeStringCoversEveryDefinedCode(t *testing.T) {
	codes := []Code{
		CodeErrorResp,
		CodePingReq, CodePingResp,
		CodeGetClientIDReq, CodeGetClientIDResp,
		CodeSetClientIDReq, CodeSetClientIDResp,
		CodeGetServerInfoReq, CodeGetServerInfoResp,
		CodeGetReq, CodeGetResp,
		CodePutReq, CodePutResp,
		CodeDelReq, CodeDelResp,
		CodeListBucketsReq, CodeListBucketsResp,
		CodeListKeysReq, CodeListKeysResp,
		CodeGetBucketReq, CodeGetBucketResp,
		CodeSetBucketReq, CodeSetBucketResp,
		CodeMapRedReq, CodeMapRedResp,
		CodeIndexReq, CodeIndexResp,
		CodeSearchQueryReq, CodeSearchQueryResp,
		CodeResetBucketReq, CodeResetBucketResp,
		CodeCounterUpdateReq, CodeCounterUpdateResp,
		CodeCounterGetReq, CodeCounterGetResp,
		CodeDtFetchReq, CodeDtFetchResp,
		CodeDtUpdateReq, CodeDtUpdateResp,
	}
	seen := map[string]bool{}
	for _, c := range codes {
		s := c.String()
		assert.NotEqual(t, "unknown", s, "code %d should have a name", c)
		assert.False(t, seen[s], "duplicate string %q for code %d", s, c)
		seen[s] = true
	}
}

func TestCodeStringUnknown(t *testing.T) {
	assert.Equal(t, "unknown", Code(254).String())
}
