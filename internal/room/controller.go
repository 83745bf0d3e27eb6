package room

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/streamalong/cli/internal/media"
	"github.com/streamalong/cli/internal/signaling"
)

// SessionState is the top-level room session state.
type SessionState int

const (
	StateIdle SessionState = iota
	StateJoining
	StateHostJoined
	StateViewerJoined
	StateLeft
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateJoining:
		return "joining"
	case StateHostJoined:
		return "host"
	case StateViewerJoined:
		return "viewer"
	case StateLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Joined reports whether the session is inside a room.
func (s SessionState) Joined() bool {
	return s == StateHostJoined || s == StateViewerJoined
}

// Controller is the room session state machine. Every inbound signaling
// message and every user action funnels through it under one mutex, so
// a dispatch runs to completion before the next begins; per-peer
// negotiation steps additionally serialize on their PeerLink.
type Controller struct {
	mu sync.Mutex

	send    signaling.Sender
	acquire media.Acquirer
	quality media.Quality

	registry  *Registry
	neg       *Negotiator
	perm      *PermissionWorkflow
	chat      *ChatLog
	reactions *ReactionBoard
	stats     *Stats
	events    *emitter

	state       SessionState
	room        *Room
	local       LocalSession
	viewerCount int
	lastErr     error

	// join parameters, held so a transport gap can re-issue the join
	wantRoomID string
	wantName   string
	wantRole   Role
}

// NewController wires the session together. send may be swapped later
// via SetSender (reconnects).
func NewController(send signaling.Sender, newLink media.LinkFactory, acquire media.Acquirer, quality media.Quality) *Controller {
	c := &Controller{
		send:     send,
		acquire:  acquire,
		quality:  quality,
		registry: NewRegistry(),
		perm:     NewPermissionWorkflow(),
		chat:     NewChatLog(),
		stats:    NewStats(),
		events:   newEmitter(),
		state:    StateIdle,
	}
	c.reactions = NewReactionBoard(func(r Reaction) {
		c.events.emit(Event{Kind: EventReactionGone, Reaction: r})
	})
	c.neg = NewNegotiator(c.registry, newLink, send, c.events.emit)
	return c
}

// Events returns the session event stream for the UI layer.
func (c *Controller) Events() <-chan Event {
	return c.events.ch
}

// SetSender swaps the signaling channel after a reconnect.
func (c *Controller) SetSender(send signaling.Sender) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = send
	c.neg.SetSender(send)
}

// CreateRoom asks the relay for a new room with this client as host.
// Validation failures return before any message is sent.
func (c *Controller) CreateRoom(roomID, displayName string) error {
	return c.join(roomID, displayName, RoleHost)
}

// JoinRoom asks the relay for viewer membership in an existing room.
func (c *Controller) JoinRoom(roomID, displayName string) error {
	return c.join(roomID, displayName, RoleViewer)
}

func (c *Controller) join(roomID, displayName string, role Role) error {
	if strings.TrimSpace(roomID) == "" {
		return ErrEmptyRoomID
	}
	if strings.TrimSpace(displayName) == "" {
		return ErrEmptyDisplayName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return ErrAlreadyJoined
	}

	c.wantRoomID = roomID
	c.wantName = displayName
	c.wantRole = role
	c.setStateLocked(StateJoining, nil)

	c.sendJoinLocked()
	return nil
}

func (c *Controller) sendJoinLocked() {
	t := signaling.TypeJoinRoom
	if c.wantRole == RoleHost {
		t = signaling.TypeCreateRoom
	}
	c.send.Send(signaling.MustMessage(t, signaling.JoinPayload{
		RoomID:      c.wantRoomID,
		DisplayName: c.wantName,
	}))
}

// StartStreaming announces the host's stream and offers to every
// current viewer.
func (c *Controller) StartStreaming() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateHostJoined {
		return ErrNotHost
	}
	if c.local.Capture == nil {
		return NewError("start streaming", ErrMediaUnavailable)
	}
	if c.room.Streaming {
		return nil
	}

	c.room.Streaming = true
	c.send.Send(signaling.MustMessage(signaling.TypeHostStreaming, signaling.RoomRefPayload{
		RoomID: c.room.ID,
	}))

	tracks := c.local.Capture.Tracks()
	for _, p := range c.room.Participants() {
		if p.ID == c.local.ID {
			continue
		}
		if err := c.neg.Offer(p.ID, tracks); err != nil {
			slog.Warn("offer failed", "peer", p.ID, "err", err)
			c.events.emit(Event{Kind: EventError, Err: err})
		}
	}

	c.events.emit(Event{Kind: EventStreamingChanged, Streaming: true})
	return nil
}

// StopStreaming withdraws the host's stream without leaving the room.
// Links stay up; the relay tells viewers the stream ended.
func (c *Controller) StopStreaming() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateHostJoined {
		return ErrNotHost
	}
	if !c.room.Streaming {
		return ErrNotStreaming
	}

	c.room.Streaming = false
	c.send.Send(signaling.MustMessage(signaling.TypeStopStreaming, signaling.RoomRefPayload{
		RoomID: c.room.ID,
	}))
	c.events.emit(Event{Kind: EventStreamingChanged, Streaming: false})
	return nil
}

// ToggleMute flips the microphone and returns the new muted state.
func (c *Controller) ToggleMute() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.local.Capture == nil {
		return false, ErrMediaUnavailable
	}
	muted := !c.local.Capture.Muted()
	c.local.Capture.SetMuted(muted)
	return muted, nil
}

// SwitchQuality installs a new capture track for the preset and swaps
// it into every live link. It holds the session mutex throughout, so a
// link created concurrently with the switch always sees the new track.
func (c *Controller) SwitchQuality(q media.Quality) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.local.Capture == nil || c.local.Capture.VideoTrack() == nil {
		return ErrMediaUnavailable
	}

	track, err := c.local.Capture.SwitchQuality(q)
	if err != nil {
		return NewError("switch quality", err)
	}
	c.quality = q

	c.registry.ForEach(func(p *PeerLink) {
		if err := p.replaceVideoTrack(track); err != nil {
			slog.Debug("track swap skipped", "peer", p.ID, "err", err)
		}
	})
	return nil
}

// RequestStream asks the host for publish permission. A second request
// while one is pending is rejected locally, no message sent.
func (c *Controller) RequestStream() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateViewerJoined {
		return ErrNotViewer
	}
	if err := c.perm.Request(); err != nil {
		return err
	}

	c.send.Send(signaling.MustMessage(signaling.TypeStreamRequest, signaling.StreamRequestPayload{
		RoomID:   c.room.ID,
		ViewerID: c.local.ID,
	}))
	return nil
}

// RespondToRequest is the host answering a viewer's stream request.
// Exactly one response per request goes out.
func (c *Controller) RespondToRequest(viewerID string, allowed bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateHostJoined {
		return ErrNotHost
	}
	if !c.perm.Answer(viewerID) {
		return NewPeerError("respond", viewerID, ErrUnknownPeer)
	}

	c.send.Send(signaling.MustMessage(signaling.TypeStreamPermission, signaling.StreamPermissionPayload{
		ViewerID: viewerID,
		Allowed:  allowed,
	}))
	return nil
}

// SendChat sends a chat message; the local log is appended when the
// relay echoes it back.
func (c *Controller) SendChat(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Joined() {
		return ErrNotJoined
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.send.Send(signaling.MustMessage(signaling.TypeChatMessage, signaling.ChatPayload{
		RoomID: c.room.ID,
		Text:   text,
	}))
	return nil
}

// SendReaction broadcasts an ephemeral reaction.
func (c *Controller) SendReaction(kind string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Joined() {
		return ErrNotJoined
	}

	c.send.Send(signaling.MustMessage(signaling.TypeReaction, signaling.ReactionPayload{
		RoomID: c.room.ID,
		Kind:   kind,
	}))
	return nil
}

// Leave tears the session down on the user's initiative.
func (c *Controller) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateLeft || c.state == StateIdle {
		return
	}

	c.send.Send(&signaling.Message{Type: signaling.TypeLeaveRoom})
	c.teardownLocked(StateLeft, nil)
}

// Dispatch routes one inbound signaling message. Unknown participants,
// duplicate deliveries and malformed payloads are absorbed here; they
// never reach the user.
func (c *Controller) Dispatch(msg *signaling.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch msg.Type {
	case signaling.TypeRoomCreated:
		c.handleRoomCreated(msg)
	case signaling.TypeRoomJoined:
		c.handleRoomJoined(msg)
	case signaling.TypeRoomFull:
		c.handleRejectedJoin(ErrRoomFull)
	case signaling.TypeInvalidRoom:
		c.handleRejectedJoin(ErrInvalidRoom)
	case signaling.TypeRoomExists:
		c.handleRejectedJoin(ErrRoomExists)
	case signaling.TypeRoomInfo:
		c.handleRoomInfo(msg)
	case signaling.TypeUserJoined:
		c.handleUserJoined(msg)
	case signaling.TypeUserLeft:
		c.handleUserLeft(msg)
	case signaling.TypeOffer:
		c.handleOffer(msg)
	case signaling.TypeAnswer:
		c.handleAnswer(msg)
	case signaling.TypeICECandidate:
		c.handleCandidate(msg)
	case signaling.TypeHostStartedStream:
		c.handleHostStreaming(true)
	case signaling.TypeHostStoppedStream:
		c.handleHostStreaming(false)
	case signaling.TypeUserStartedStream:
		c.handleUserStreaming(msg)
	case signaling.TypeStreamRequest:
		c.handleStreamRequest(msg)
	case signaling.TypeStreamPermission:
		c.handleStreamPermission(msg)
	case signaling.TypeChatMessage:
		c.handleChat(msg)
	case signaling.TypeReaction:
		c.handleReaction(msg)
	case signaling.TypeHostLeft:
		if c.state.Joined() {
			c.teardownLocked(StateLeft, ErrHostLeft)
		}
	case signaling.TypeRoomClosed:
		if c.state.Joined() {
			c.teardownLocked(StateLeft, ErrRoomClosed)
		}
	default:
		slog.Warn("unhandled signaling message", "type", msg.Type)
	}
}

func (c *Controller) handleRoomCreated(msg *signaling.Message) {
	if c.state != StateJoining || c.wantRole != RoleHost {
		slog.Debug("room-created out of joining state, dropped")
		return
	}

	var payload signaling.RoomCreatedPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}

	c.local = LocalSession{
		ID:          payload.HostID,
		DisplayName: c.wantName,
		Role:        RoleHost,
		Capture:     c.local.Capture, // survives a rejoin
	}
	c.room = NewRoom(payload.RoomID, payload.HostID, c.wantName)
	c.viewerCount = 0

	if c.local.Capture == nil {
		capture, err := c.acquire(c.quality, true)
		if err != nil {
			// Fatal for the host's publish path; the room itself stays
			// usable for chat, the UI decides.
			c.events.emit(Event{Kind: EventError, Err: NewError("acquire media", ErrMediaUnavailable)})
		} else {
			c.local.Capture = capture
		}
	}

	c.setStateLocked(StateHostJoined, nil)
}

func (c *Controller) handleRoomJoined(msg *signaling.Message) {
	if c.state != StateJoining || c.wantRole != RoleViewer {
		slog.Debug("room-joined out of joining state, dropped")
		return
	}

	var payload signaling.RoomJoinedPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}

	c.local = LocalSession{
		ID:          payload.SelfID,
		DisplayName: c.wantName,
		Role:        RoleViewer,
	}
	c.room = NewRoom(payload.RoomID, payload.HostID, "")
	c.room.Merge(payload.Participants)
	c.room.Streaming = payload.IsHostStreaming
	c.viewerCount = payload.ViewerCount
	c.stats.ObserveViewerCount(payload.ViewerCount)

	for _, m := range payload.Messages {
		c.chat.Append(m.Sender, m.Text)
	}

	if payload.IsHostStreaming {
		// Pre-create the host link so candidates racing ahead of the
		// offer land in its buffer.
		if _, err := c.neg.EnsureLink(payload.HostID, nil); err != nil {
			c.events.emit(Event{Kind: EventError, Err: err})
		}
	}

	c.setStateLocked(StateViewerJoined, nil)
}

func (c *Controller) handleRejectedJoin(cause error) {
	if c.state != StateJoining {
		return
	}
	c.wantRoomID = ""
	c.wantName = ""
	c.setStateLocked(StateIdle, cause)
}

func (c *Controller) handleRoomInfo(msg *signaling.Message) {
	if !c.state.Joined() {
		return
	}

	var payload signaling.RoomInfoPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}

	c.room.Merge(payload.Participants)
	c.viewerCount = payload.ViewerCount
	c.stats.ObserveViewerCount(payload.ViewerCount)
	c.events.emit(Event{Kind: EventRoomInfo, ViewerCount: payload.ViewerCount})
}

func (c *Controller) handleUserJoined(msg *signaling.Message) {
	if !c.state.Joined() {
		return
	}

	var payload signaling.UserJoinedPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}
	if payload.ParticipantID == "" || payload.ParticipantID == c.local.ID {
		return
	}

	c.room.Add(Participant{
		ID:          payload.ParticipantID,
		DisplayName: payload.DisplayName,
		Role:        RoleViewer,
	})
	c.viewerCount = c.room.Len() - 1
	c.stats.ObserveViewerCount(c.viewerCount)

	// Host side: link up the newcomer. Without local media there is
	// nothing to send yet; a join into a non-publishing room is fine.
	if c.state == StateHostJoined && c.local.Capture != nil {
		tracks := c.local.Capture.Tracks()
		var err error
		if c.room.Streaming {
			err = c.neg.Offer(payload.ParticipantID, tracks)
		} else {
			_, err = c.neg.EnsureLink(payload.ParticipantID, tracks)
		}
		if err != nil {
			c.events.emit(Event{Kind: EventError, Err: err})
		}
	}

	c.events.emit(Event{Kind: EventRoomInfo, ViewerCount: c.viewerCount})
}

func (c *Controller) handleUserLeft(msg *signaling.Message) {
	if !c.state.Joined() {
		return
	}

	var payload signaling.UserLeftPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}

	// All idempotent: a duplicate user-left converges to the same state.
	c.registry.Remove(payload.ParticipantID)
	c.room.Remove(payload.ParticipantID)
	c.perm.Forget(payload.ParticipantID)
	c.viewerCount = c.room.Len() - 1

	c.events.emit(Event{Kind: EventRoomInfo, ViewerCount: c.viewerCount})
}

func (c *Controller) handleOffer(msg *signaling.Message) {
	if !c.state.Joined() {
		return
	}

	var payload signaling.SDPPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}
	if payload.Sender == "" {
		c.protocolViolation(msg, ErrUnknownPeer)
		return
	}

	if err := c.neg.HandleOffer(payload.Sender, payload.SDP, nil); err != nil {
		c.events.emit(Event{Kind: EventError, Err: err})
	}
}

func (c *Controller) handleAnswer(msg *signaling.Message) {
	if !c.state.Joined() {
		return
	}

	var payload signaling.SDPPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}

	if err := c.neg.HandleAnswer(payload.Sender, payload.SDP); err != nil {
		c.events.emit(Event{Kind: EventError, Err: err})
	}
}

func (c *Controller) handleCandidate(msg *signaling.Message) {
	if !c.state.Joined() {
		return
	}

	var payload signaling.ICEPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}

	if err := c.neg.HandleCandidate(payload.Sender, payload.Candidate); err != nil {
		slog.Warn("candidate rejected", "peer", payload.Sender, "err", err)
	}
}

func (c *Controller) handleHostStreaming(streaming bool) {
	if c.state != StateViewerJoined {
		return
	}

	c.room.Streaming = streaming
	if streaming {
		if _, err := c.neg.EnsureLink(c.room.HostID, nil); err != nil {
			c.events.emit(Event{Kind: EventError, Err: err})
		}
	}
	c.events.emit(Event{Kind: EventStreamingChanged, Streaming: streaming})
}

func (c *Controller) handleUserStreaming(msg *signaling.Message) {
	if !c.state.Joined() {
		return
	}

	var payload signaling.UserStreamingPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}

	if p, ok := c.room.Get(payload.StreamerID); ok {
		p.Publishing = true
	}
	c.events.emit(Event{Kind: EventUserStreaming, PeerID: payload.StreamerID})
}

func (c *Controller) handleStreamRequest(msg *signaling.Message) {
	if c.state != StateHostJoined {
		return
	}

	var payload signaling.StreamRequestPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}
	if !c.room.Has(payload.ViewerID) {
		slog.Debug("stream request from unknown viewer dropped", "viewer", payload.ViewerID)
		return
	}

	if c.perm.NoteRequest(payload.ViewerID) {
		c.events.emit(Event{Kind: EventStreamRequest, PeerID: payload.ViewerID})
	}
}

func (c *Controller) handleStreamPermission(msg *signaling.Message) {
	if c.state != StateViewerJoined {
		return
	}

	var payload signaling.StreamPermissionPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}

	state := c.perm.Resolve(payload.Allowed)
	if state != PermissionGranted {
		c.events.emit(Event{
			Kind:    EventPermission,
			Allowed: false,
			Err:     NewError("stream request", ErrPermissionDenied),
		})
		return
	}

	if err := c.startPublishingLocked(); err != nil {
		c.perm.ResetLocal()
		c.events.emit(Event{Kind: EventError, Err: err})
		return
	}
	c.events.emit(Event{Kind: EventPermission, Allowed: true})
}

// startPublishingLocked is the granted viewer's publish path: acquire
// media, attach it to the host link and renegotiate.
func (c *Controller) startPublishingLocked() error {
	if c.local.Capture == nil {
		capture, err := c.acquire(c.quality, true)
		if err != nil {
			return NewError("acquire media", ErrMediaUnavailable)
		}
		c.local.Capture = capture
	}

	p, err := c.neg.EnsureLink(c.room.HostID, nil)
	if err != nil {
		return err
	}
	if err := p.attachTracks(c.local.Capture.Tracks()); err != nil {
		return err
	}
	if err := c.neg.Offer(c.room.HostID, nil); err != nil {
		return err
	}

	c.local.Publishing = true
	c.send.Send(signaling.MustMessage(signaling.TypeUserStartedStream, signaling.UserStreamingPayload{
		RoomID:     c.room.ID,
		StreamerID: c.local.ID,
	}))
	return nil
}

func (c *Controller) handleChat(msg *signaling.Message) {
	if !c.state.Joined() {
		return
	}

	var payload signaling.ChatPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}

	entry := c.chat.Append(payload.Sender, payload.Text)
	c.events.emit(Event{Kind: EventChat, Chat: entry})
}

func (c *Controller) handleReaction(msg *signaling.Message) {
	if !c.state.Joined() {
		return
	}

	var payload signaling.ReactionPayload
	if err := msg.Decode(&payload); err != nil {
		c.protocolViolation(msg, err)
		return
	}

	r := c.reactions.Add(payload.Sender, payload.Kind)
	c.events.emit(Event{Kind: EventReaction, Reaction: r})
}

// HandleTransportGap is called by the reconnection supervisor when the
// signaling connection drops. Every peer link is presumed stale and
// discarded; the join parameters survive for the rejoin.
func (c *Controller) HandleTransportGap() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateLeft || c.state == StateIdle {
		return
	}

	c.registry.Clear()
	c.setStateLocked(StateJoining, ErrTransportGap)
	c.events.emit(Event{Kind: EventReconnecting, Err: ErrTransportGap})
}

// Rejoin re-issues the held create/join over a fresh connection.
func (c *Controller) Rejoin(send signaling.Sender) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.send = send
	c.neg.SetSender(send)

	if c.state != StateJoining || c.wantRoomID == "" {
		return
	}
	c.sendJoinLocked()
	c.events.emit(Event{Kind: EventReconnected})
}

// Abandon ends the session without signaling the relay, used when the
// transport is gone for good.
func (c *Controller) Abandon(cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateLeft {
		return
	}
	c.teardownLocked(StateLeft, cause)
}

func (c *Controller) protocolViolation(msg *signaling.Message, err error) {
	// Logged, never surfaced.
	slog.Warn("protocol violation", "type", msg.Type, "err", err)
}

func (c *Controller) setStateLocked(state SessionState, cause error) {
	c.state = state
	c.lastErr = cause
	c.events.emit(Event{Kind: EventStateChanged, State: state, Err: cause})
}

// teardownLocked releases every room resource. MediaLink teardown is
// best-effort and does not wait for in-flight negotiation.
func (c *Controller) teardownLocked(state SessionState, cause error) {
	c.registry.Clear()
	if c.local.Capture != nil {
		c.local.Capture.Close()
		c.local.Capture = nil
	}
	c.local.Publishing = false
	c.perm.ResetLocal()
	c.wantRoomID = ""
	c.wantName = ""
	c.setStateLocked(state, cause)
}

// --- read-side accessors for the UI layer ---

func (c *Controller) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the error overlay, if any.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) RoomID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.room == nil {
		return ""
	}
	return c.room.ID
}

func (c *Controller) Role() Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.local.Role
}

func (c *Controller) SelfID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.local.ID
}

func (c *Controller) Participants() []Participant {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.room == nil {
		return nil
	}
	return c.room.Participants()
}

func (c *Controller) ViewerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewerCount
}

func (c *Controller) Streaming() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room != nil && c.room.Streaming
}

func (c *Controller) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.local.Capture != nil && c.local.Capture.Muted()
}

func (c *Controller) Quality() media.Quality {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quality
}

func (c *Controller) Publishing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.local.Publishing
}

func (c *Controller) PermissionState() PermissionState {
	return c.perm.Local()
}

func (c *Controller) ChatEntries() []ChatEntry {
	return c.chat.Entries()
}

func (c *Controller) ActiveReactions() []Reaction {
	return c.reactions.Active()
}

func (c *Controller) Stats() *Stats {
	return c.stats
}

// LinkCount returns the number of live peer links.
func (c *Controller) LinkCount() int {
	return c.registry.Len()
}

// Link exposes a peer's link state for display.
func (c *Controller) Link(id string) (LinkState, bool) {
	p, ok := c.registry.Get(id)
	if !ok {
		return LinkClosed, false
	}
	return p.State(), true
}
