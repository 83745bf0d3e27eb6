package signaling

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Type identifies a signaling message variant.
type Type string

// Messages sent by the client.
const (
	TypeCreateRoom    Type = "create-room"
	TypeJoinRoom      Type = "join-room"
	TypeHostStreaming Type = "host-streaming"
	TypeStopStreaming Type = "stop-streaming"
	TypeStreamRequest Type = "stream-request"
	TypeLeaveRoom     Type = "leave-room"
)

// Messages received from the relay.
const (
	TypeRoomCreated         Type = "room-created"
	TypeRoomJoined          Type = "room-joined"
	TypeRoomFull            Type = "room-full"
	TypeInvalidRoom         Type = "invalid-room"
	TypeRoomExists          Type = "room-exists"
	TypeRoomInfo            Type = "room-info"
	TypeUserJoined          Type = "user-joined"
	TypeUserLeft            Type = "user-left"
	TypeHostStartedStream   Type = "host-started-streaming"
	TypeHostStoppedStream   Type = "host-stopped-streaming"
	TypeUserStartedStream   Type = "user-started-streaming"
	TypeHostLeft            Type = "host-left"
	TypeRoomClosed          Type = "room-closed"
)

// Messages that flow in both directions.
const (
	TypeOffer            Type = "offer"
	TypeAnswer           Type = "answer"
	TypeICECandidate     Type = "ice-candidate"
	TypeStreamPermission Type = "stream-permission"
	TypeChatMessage      Type = "chat-message"
	TypeReaction         Type = "reaction"
)

var knownTypes = map[Type]struct{}{
	TypeCreateRoom: {}, TypeJoinRoom: {}, TypeHostStreaming: {},
	TypeStopStreaming: {}, TypeStreamRequest: {}, TypeLeaveRoom: {},
	TypeRoomCreated: {}, TypeRoomJoined: {}, TypeRoomFull: {},
	TypeInvalidRoom: {}, TypeRoomExists: {}, TypeRoomInfo: {},
	TypeUserJoined: {}, TypeUserLeft: {}, TypeHostStartedStream: {},
	TypeHostStoppedStream: {}, TypeUserStartedStream: {}, TypeHostLeft: {},
	TypeRoomClosed: {}, TypeOffer: {}, TypeAnswer: {},
	TypeICECandidate: {}, TypeStreamPermission: {}, TypeChatMessage: {},
	TypeReaction: {},
}

// ErrUnknownType is returned when decoding a message whose type is not
// part of the protocol.
var ErrUnknownType = errors.New("unknown message type")

// Message is the envelope for every message exchanged with the relay.
// Payload is decoded per type; a nil payload is valid for the variants
// that carry none (room-full, host-left, ...).
type Message struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage builds a message with an encoded payload.
func NewMessage(t Type, payload any) (*Message, error) {
	m := &Message{Type: t}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", t, err)
		}
		m.Payload = raw
	}
	return m, nil
}

// MustMessage is NewMessage for payload types that cannot fail to encode.
func MustMessage(t Type, payload any) *Message {
	m, err := NewMessage(t, payload)
	if err != nil {
		panic(err)
	}
	return m
}

// Known reports whether the message type is part of the protocol.
func (m *Message) Known() bool {
	_, ok := knownTypes[m.Type]
	return ok
}

// Decode unmarshals the payload into v. Decoding an absent payload or a
// payload that does not match v's shape is an error so that malformed
// variants can be dropped as protocol violations.
func (m *Message) Decode(v any) error {
	if !m.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
	if len(m.Payload) == 0 {
		return fmt.Errorf("message %s has no payload", m.Type)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", m.Type, err)
	}
	return nil
}

// ParticipantInfo describes one room member in snapshots.
type ParticipantInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
}

// JoinPayload is shared by create-room and join-room.
type JoinPayload struct {
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName"`
}

// RoomCreatedPayload confirms the host role.
type RoomCreatedPayload struct {
	RoomID string `json:"roomId"`
	HostID string `json:"hostId"`
}

// RoomJoinedPayload seeds the viewer's room snapshot.
type RoomJoinedPayload struct {
	RoomID          string            `json:"roomId"`
	SelfID          string            `json:"selfId"`
	HostID          string            `json:"hostId"`
	ViewerCount     int               `json:"viewerCount"`
	IsHostStreaming bool              `json:"isHostStreaming"`
	Participants    []ParticipantInfo `json:"participants,omitempty"`
	Messages        []ChatPayload     `json:"messages,omitempty"`
}

// RoomInfoPayload is the periodic membership resync.
type RoomInfoPayload struct {
	ViewerCount  int               `json:"viewerCount"`
	Participants []ParticipantInfo `json:"participants,omitempty"`
}

// UserJoinedPayload announces a new remote participant.
type UserJoinedPayload struct {
	ParticipantID string `json:"participantId"`
	DisplayName   string `json:"displayName,omitempty"`
}

// UserLeftPayload announces a departed remote participant.
type UserLeftPayload struct {
	ParticipantID string `json:"participantId"`
}

// SDPPayload carries an offer or answer. Target is set on outbound
// messages, Sender on inbound ones; the relay rewrites one into the other.
type SDPPayload struct {
	Target string `json:"target,omitempty"`
	Sender string `json:"sender,omitempty"`
	SDP    string `json:"sdp"`
}

// ICEPayload carries one trickled candidate.
type ICEPayload struct {
	Target    string          `json:"target,omitempty"`
	Sender    string          `json:"sender,omitempty"`
	Candidate json.RawMessage `json:"candidate"`
}

// RoomRefPayload names a room, used by host-streaming and stop-streaming.
type RoomRefPayload struct {
	RoomID string `json:"roomId"`
}

// StreamRequestPayload asks the host for publish permission.
type StreamRequestPayload struct {
	RoomID   string `json:"roomId"`
	ViewerID string `json:"viewerId"`
}

// StreamPermissionPayload is the host's verdict.
type StreamPermissionPayload struct {
	ViewerID string `json:"viewerId"`
	Allowed  bool   `json:"allowed"`
}

// UserStreamingPayload announces an approved viewer going live.
type UserStreamingPayload struct {
	RoomID     string `json:"roomId"`
	StreamerID string `json:"streamerId"`
}

// ChatPayload carries one chat message. Sender is filled in by the relay
// on delivery.
type ChatPayload struct {
	RoomID string `json:"roomId,omitempty"`
	Sender string `json:"sender,omitempty"`
	Text   string `json:"text"`
}

// ReactionPayload carries one ephemeral reaction.
type ReactionPayload struct {
	RoomID string `json:"roomId,omitempty"`
	Sender string `json:"sender,omitempty"`
	Kind   string `json:"kind"`
}
