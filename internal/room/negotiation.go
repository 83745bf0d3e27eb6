package room

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/pion/webrtc/v4"
	"github.com/streamalong/cli/internal/media"
	"github.com/streamalong/cli/internal/signaling"
)

// Negotiator drives the offer/answer/ICE exchange for every PeerLink in
// the registry. It never decides who to negotiate with; the session
// controller hands it participant ids and it keeps the exchange legal.
type Negotiator struct {
	registry *Registry
	newLink  media.LinkFactory
	emit     func(Event)

	mu   sync.Mutex
	send signaling.Sender
}

func NewNegotiator(registry *Registry, newLink media.LinkFactory, send signaling.Sender, emit func(Event)) *Negotiator {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Negotiator{
		registry: registry,
		newLink:  newLink,
		send:     send,
		emit:     emit,
	}
}

// SetSender swaps the signaling sender after a transport reconnect.
// Link callbacks read the sender from their own goroutines, so the
// swap is guarded.
func (n *Negotiator) SetSender(send signaling.Sender) {
	n.mu.Lock()
	n.send = send
	n.mu.Unlock()
}

func (n *Negotiator) sender() signaling.Sender {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.send
}

// EnsureLink returns the link for id, creating and wiring it with the
// given local tracks when absent. An existing link is reused as is,
// whatever its state: recreating a link for a live id is the bug class
// this method exists to prevent.
func (n *Negotiator) EnsureLink(id string, tracks []webrtc.TrackLocal) (*PeerLink, error) {
	p, created, err := n.registry.Ensure(id, n.newLink)
	if err != nil {
		return nil, err
	}
	if !created {
		return p, nil
	}

	n.wire(p)
	if err := p.attachTracks(tracks); err != nil {
		n.registry.Remove(id)
		return nil, err
	}
	return p, nil
}

// wire hooks the MediaLink callbacks up to signaling and events.
// Candidates go to exactly the owning participant, never broadcast.
func (n *Negotiator) wire(p *PeerLink) {
	id := p.ID

	p.link.OnICECandidate(func(candidate webrtc.ICECandidateInit) {
		raw, err := json.Marshal(candidate)
		if err != nil {
			slog.Warn("encode local candidate", "peer", id, "err", err)
			return
		}
		msg, err := signaling.NewMessage(signaling.TypeICECandidate, signaling.ICEPayload{
			Target:    id,
			Candidate: raw,
		})
		if err != nil {
			slog.Warn("encode candidate message", "peer", id, "err", err)
			return
		}
		n.sender().Send(msg)
	})

	p.link.OnHealthChange(func(h media.Health) {
		switch h {
		case media.HealthConnected:
			p.setHealth(h)
			n.emit(Event{Kind: EventPeerConnected, PeerID: id})
		case media.HealthFailed:
			// Scoped to this peer; the room stays up.
			p.markFailed()
			n.emit(Event{
				Kind:   EventPeerFailed,
				PeerID: id,
				Err:    NewPeerError("media transport", id, ErrNegotiationFailed),
			})
		}
	})
}

// Offer sends our offer to id, creating the link if needed. A link that
// is already mid-negotiation is left alone: one unanswered offer per
// peer, ever.
func (n *Negotiator) Offer(id string, tracks []webrtc.TrackLocal) error {
	p, err := n.EnsureLink(id, tracks)
	if err != nil {
		return err
	}

	offer, ok, err := p.sendOffer()
	if err != nil {
		return err
	}
	if !ok {
		slog.Debug("offer suppressed", "peer", id, "state", p.State().String())
		return nil
	}

	msg, err := signaling.NewMessage(signaling.TypeOffer, signaling.SDPPayload{
		Target: id,
		SDP:    offer.SDP,
	})
	if err != nil {
		return NewPeerError("send offer", id, err)
	}
	n.sender().Send(msg)
	return nil
}

// HandleOffer answers a remote offer, creating the link if this is the
// first contact with that peer.
func (n *Negotiator) HandleOffer(sender, sdp string, tracks []webrtc.TrackLocal) error {
	p, err := n.EnsureLink(sender, tracks)
	if err != nil {
		return err
	}

	answer, err := p.acceptOffer(webrtc.SessionDescription{
		Type: webrtc.SDPTypeOffer,
		SDP:  sdp,
	})
	if err != nil {
		return err
	}

	msg, err := signaling.NewMessage(signaling.TypeAnswer, signaling.SDPPayload{
		Target: sender,
		SDP:    answer.SDP,
	})
	if err != nil {
		return NewPeerError("send answer", sender, err)
	}
	n.sender().Send(msg)
	return nil
}

// HandleAnswer applies a remote answer. Answers for unknown peers are a
// race with user-left and are dropped.
func (n *Negotiator) HandleAnswer(sender, sdp string) error {
	p, ok := n.registry.Get(sender)
	if !ok {
		slog.Debug("answer from unknown peer dropped", "peer", sender)
		return nil
	}

	return p.applyAnswer(webrtc.SessionDescription{
		Type: webrtc.SDPTypeAnswer,
		SDP:  sdp,
	})
}

// HandleCandidate routes a remote candidate into the owning link's
// buffer-or-apply path. Candidates for unknown peers are dropped.
func (n *Negotiator) HandleCandidate(sender string, raw json.RawMessage) error {
	p, ok := n.registry.Get(sender)
	if !ok {
		slog.Debug("candidate for unknown peer dropped", "peer", sender)
		return nil
	}

	var candidate webrtc.ICECandidateInit
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return NewPeerError("parse candidate", sender, err)
	}

	return p.addCandidate(candidate)
}
