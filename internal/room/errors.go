package room

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRoomID      = errors.New("room id is empty")
	ErrEmptyDisplayName = errors.New("display name is empty")
	ErrAlreadyJoined    = errors.New("already in a room")
	ErrNotJoined        = errors.New("not in a room")
	ErrNotHost          = errors.New("only the host can do this")
	ErrNotViewer        = errors.New("only a viewer can do this")

	ErrRoomFull    = errors.New("room is full")
	ErrInvalidRoom = errors.New("invalid room id")
	ErrRoomExists  = errors.New("room already exists")
	ErrHostLeft    = errors.New("host left the room")
	ErrRoomClosed  = errors.New("room closed")

	ErrMediaUnavailable  = errors.New("local media unavailable")
	ErrNegotiationFailed = errors.New("peer connection failed")
	ErrPermissionDenied  = errors.New("stream permission denied by host")
	ErrRequestPending    = errors.New("stream request already pending")
	ErrNotStreaming      = errors.New("not currently streaming")
	ErrUnknownPeer       = errors.New("unknown participant")
	ErrTransportGap      = errors.New("signaling transport disconnected")
)

// SessionError annotates an error with the operation that produced it
// and, when scoped to one peer, that peer's id.
type SessionError struct {
	Op      string
	Peer    string
	Err     error
	Details string
}

func (e *SessionError) Error() string {
	if e.Peer != "" {
		return fmt.Sprintf("%s (peer %s): %v", e.Op, e.Peer, e.Err)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

func NewError(op string, err error) *SessionError {
	return &SessionError{Op: op, Err: err}
}

func NewPeerError(op, peer string, err error) *SessionError {
	return &SessionError{Op: op, Peer: peer, Err: err}
}

func WrapError(op string, err error, details string) *SessionError {
	return &SessionError{Op: op, Err: err, Details: details}
}
