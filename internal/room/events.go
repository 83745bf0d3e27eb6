package room

import "log/slog"

// EventKind discriminates session events delivered to the UI layer.
type EventKind int

const (
	// EventStateChanged carries the new session state.
	EventStateChanged EventKind = iota

	// EventError surfaces a non-fatal error. Whether it ends the
	// session is the consumer's call; membership-ending causes arrive
	// as EventStateChanged(StateLeft) with Err set.
	EventError

	// EventChat carries a newly appended chat entry.
	EventChat

	// EventReaction carries a newly appended reaction; EventReactionGone
	// its expiry.
	EventReaction
	EventReactionGone

	// EventRoomInfo signals membership or viewer-count changes.
	EventRoomInfo

	// EventStreamRequest asks the host to grant or deny a viewer.
	EventStreamRequest

	// EventPermission is the viewer-side verdict on its stream request.
	EventPermission

	// EventPeerConnected and EventPeerFailed report per-link health.
	EventPeerConnected
	EventPeerFailed

	// EventStreamingChanged reports the host's streaming flag.
	EventStreamingChanged

	// EventUserStreaming reports an approved viewer going live.
	EventUserStreaming

	// EventReconnecting and EventReconnected bracket a transport gap.
	EventReconnecting
	EventReconnected
)

// Event is one session notification. Only the fields relevant to the
// Kind are set.
type Event struct {
	Kind        EventKind
	State       SessionState
	Err         error
	Chat        ChatEntry
	Reaction    Reaction
	PeerID      string
	ViewerCount int
	Allowed     bool
	Streaming   bool
}

// emitter fans session events into a bounded channel. Delivery is
// best-effort: a stalled consumer loses events rather than stalling
// dispatch.
type emitter struct {
	ch chan Event
}

func newEmitter() *emitter {
	return &emitter{ch: make(chan Event, 64)}
}

func (e *emitter) emit(ev Event) {
	select {
	case e.ch <- ev:
	default:
		slog.Warn("event channel full, dropping", "kind", ev.Kind)
	}
}
