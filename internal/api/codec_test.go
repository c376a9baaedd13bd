package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oggyb/muzz-match/internal/api"
	"github.com/oggyb/muzz-match/internal/api/explore"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodecV2(api.ContentSubtype)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Name())
}

func TestCodec_EmptyBodyLeavesZeroValue(t *testing.T) {
	var req explore.CountLikedYouRequest
	require.NoError(t, api.Codec{}.Unmarshal(nil, &req))

	var swipe explore.SwipeRequest
	err := api.Codec{}.Unmarshal([]byte(`{"recipient_user_id":`), &swipe)
	assert.Error(t, err)
}

func TestCodec_IDsAreStrings(t *testing.T) {
	raw, err := api.Codec{}.Marshal(&explore.Liker{ActorID: "42", UnixTimestamp: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"actor_id":"42","unix_timestamp":7,"decision":""}`, string(raw))
}

func TestCodec_ProtoMessagesUseProtoJSON(t *testing.T) {
	in := &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}
	raw, err := api.Codec{}.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"SERVING"}`, string(raw))

	var out healthpb.HealthCheckResponse
	require.NoError(t, api.Codec{}.Unmarshal(raw, &out))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, out.Status)
}
