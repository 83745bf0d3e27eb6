package signaling

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := MustMessage(TypeOffer, SDPPayload{Target: "viewer-1", SDP: "v=0"})

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"offer","payload":{"target":"viewer-1","sdp":"v=0"}}`, string(data))

	var decoded Message
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, decoded.Known())

	var payload SDPPayload
	require.NoError(t, decoded.Decode(&payload))
	assert.Equal(t, "viewer-1", payload.Target)
	assert.Equal(t, "v=0", payload.SDP)
}

func TestMessageUnknownType(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(`{"type":"made-up","payload":{}}`), &msg))

	assert.False(t, msg.Known())
	assert.ErrorIs(t, msg.Decode(&struct{}{}), ErrUnknownType)
}

func TestMessageDecodeRejectsMissingPayload(t *testing.T) {
	msg := &Message{Type: TypeChatMessage}

	var payload ChatPayload
	assert.Error(t, msg.Decode(&payload))
}

func TestMessageDecodeRejectsWrongShape(t *testing.T) {
	msg := &Message{
		Type:    TypeChatMessage,
		Payload: json.RawMessage(`["not","an","object"]`),
	}

	var payload ChatPayload
	assert.Error(t, msg.Decode(&payload))
}

func TestMessagePayloadlessVariants(t *testing.T) {
	msg := &Message{Type: TypeHostLeft}
	assert.True(t, msg.Known())

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"host-left"}`, string(data))
}

func TestRoomJoinedPayloadSeedsHistory(t *testing.T) {
	raw := `{
		"roomId": "movie-night",
		"selfId": "viewer-1",
		"hostId": "host-1",
		"viewerCount": 3,
		"isHostStreaming": true,
		"participants": [{"id": "host-1", "displayName": "Alice"}],
		"messages": [{"sender": "Alice", "text": "welcome"}]
	}`

	msg := &Message{Type: TypeRoomJoined, Payload: json.RawMessage(raw)}

	var payload RoomJoinedPayload
	require.NoError(t, msg.Decode(&payload))
	assert.Equal(t, "movie-night", payload.RoomID)
	assert.True(t, payload.IsHostStreaming)
	require.Len(t, payload.Messages, 1)
	assert.Equal(t, "welcome", payload.Messages[0].Text)
}
