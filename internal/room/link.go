package room

import (
	"log/slog"
	"sync"

	"github.com/pion/webrtc/v4"
	"github.com/streamalong/cli/internal/media"
)

// LinkState is the per-peer negotiation state.
type LinkState int

const (
	// LinkNew: link exists with local tracks attached but no
	// negotiation has started (host not yet streaming, or viewer
	// waiting for the host's offer).
	LinkNew LinkState = iota

	// LinkOfferSent: our offer is out, waiting for the answer.
	LinkOfferSent

	// LinkAnswerPending: their offer is in, our answer is being
	// generated.
	LinkAnswerPending

	LinkConnected
	LinkClosed
	LinkFailed
)

func (s LinkState) String() string {
	switch s {
	case LinkNew:
		return "new"
	case LinkOfferSent:
		return "offer-sent"
	case LinkAnswerPending:
		return "answer-pending"
	case LinkConnected:
		return "connected"
	case LinkClosed:
		return "closed"
	case LinkFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// negotiating reports whether an unanswered exchange is in flight, the
// condition under which a new join/stream event reuses the link instead
// of recreating it.
func (s LinkState) negotiating() bool {
	return s == LinkOfferSent || s == LinkAnswerPending
}

// PeerLink is the registry's per-remote-participant record. All
// mutation goes through its mutex so that negotiation steps and
// candidate delivery for the same peer are serialized, independently of
// every other peer.
type PeerLink struct {
	ID string

	mu        sync.Mutex
	link      media.Link
	state     LinkState
	remoteSet bool
	pending   []webrtc.ICECandidateInit
	health    media.Health
}

func newPeerLink(id string, link media.Link) *PeerLink {
	return &PeerLink{ID: id, link: link, state: LinkNew}
}

// State returns the current negotiation state.
func (p *PeerLink) State() LinkState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Health returns the last reported connection health.
func (p *PeerLink) Health() media.Health {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.health
}

// PendingCandidates returns how many remote candidates are buffered.
func (p *PeerLink) PendingCandidates() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// sendOffer generates and installs a local offer. Returns the offer and
// true when one was produced; false when the link is already mid
// negotiation or beyond (glare: never more than one unanswered offer).
func (p *PeerLink) sendOffer() (webrtc.SessionDescription, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.negotiating() {
		return webrtc.SessionDescription{}, false, nil
	}
	if p.state == LinkClosed || p.state == LinkFailed {
		return webrtc.SessionDescription{}, false, NewPeerError("offer", p.ID, ErrNegotiationFailed)
	}

	offer, err := p.link.CreateOffer()
	if err != nil {
		return webrtc.SessionDescription{}, false, NewPeerError("offer", p.ID, err)
	}
	p.state = LinkOfferSent
	return offer, true, nil
}

// acceptOffer applies a remote offer and produces the answer. Once the
// remote description is installed, every buffered candidate is flushed
// in arrival order.
func (p *PeerLink) acceptOffer(offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == LinkClosed || p.state == LinkFailed {
		return webrtc.SessionDescription{}, NewPeerError("answer", p.ID, ErrNegotiationFailed)
	}

	p.state = LinkAnswerPending
	answer, err := p.link.CreateAnswer(offer)
	if err != nil {
		p.state = LinkFailed
		return webrtc.SessionDescription{}, NewPeerError("answer", p.ID, err)
	}

	p.remoteSet = true
	p.flushPendingLocked()
	// The viewer does not await an acknowledgement for its answer.
	p.state = LinkConnected
	return answer, nil
}

// applyAnswer installs a remote answer. It is a no-op unless an offer
// is actually outstanding, which makes duplicate delivery harmless.
func (p *PeerLink) applyAnswer(answer webrtc.SessionDescription) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.negotiating() {
		slog.Debug("ignoring answer", "peer", p.ID, "state", p.state.String())
		return nil
	}

	if err := p.link.ApplyAnswer(answer); err != nil {
		p.state = LinkFailed
		return NewPeerError("apply answer", p.ID, err)
	}

	p.remoteSet = true
	p.flushPendingLocked()
	p.state = LinkConnected
	return nil
}

// addCandidate applies a remote candidate immediately when the remote
// description is set, otherwise buffers it for the flush.
func (p *PeerLink) addCandidate(candidate webrtc.ICECandidateInit) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == LinkClosed || p.state == LinkFailed {
		return nil
	}

	if !p.remoteSet {
		p.pending = append(p.pending, candidate)
		return nil
	}

	if err := p.link.AddICECandidate(candidate); err != nil {
		return NewPeerError("add candidate", p.ID, err)
	}
	return nil
}

// flushPendingLocked drains the candidate buffer in arrival order.
// Callers hold p.mu and have just installed a remote description.
func (p *PeerLink) flushPendingLocked() {
	for _, candidate := range p.pending {
		if err := p.link.AddICECandidate(candidate); err != nil {
			slog.Warn("buffered candidate rejected", "peer", p.ID, "err", err)
		}
	}
	p.pending = nil
}

// attachTracks adds local outbound tracks to the underlying link.
func (p *PeerLink) attachTracks(tracks []webrtc.TrackLocal) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, track := range tracks {
		if err := p.link.AddTrack(track); err != nil {
			return NewPeerError("attach tracks", p.ID, err)
		}
	}
	return nil
}

// replaceVideoTrack swaps the outbound video track on a live link.
func (p *PeerLink) replaceVideoTrack(track webrtc.TrackLocal) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == LinkClosed || p.state == LinkFailed {
		return nil
	}
	if err := p.link.ReplaceVideoTrack(track); err != nil {
		return NewPeerError("replace track", p.ID, err)
	}
	return nil
}

// markFailed records a permanent transport failure.
func (p *PeerLink) markFailed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != LinkClosed {
		p.state = LinkFailed
	}
	p.health = media.HealthFailed
}

func (p *PeerLink) setHealth(h media.Health) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health = h
}

// close releases the MediaLink. Buffered candidates are discarded; the
// peer is gone.
func (p *PeerLink) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == LinkClosed {
		return
	}
	p.state = LinkClosed
	p.pending = nil
	if err := p.link.Close(); err != nil {
		slog.Debug("closing media link", "peer", p.ID, "err", err)
	}
}
