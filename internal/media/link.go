package media

import (
	"github.com/pion/webrtc/v4"
)

// Health is the coarse connection health a Link reports. The session
// layer only cares about permanent failure versus everything else.
type Health int

const (
	HealthUnknown Health = iota
	HealthConnected
	HealthFailed
	HealthClosed
)

func (h Health) String() string {
	switch h {
	case HealthConnected:
		return "connected"
	case HealthFailed:
		return "failed"
	case HealthClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Link is one media connection to a single remote participant. It wraps
// the offer/answer/ICE primitives of the transport engine; everything
// above it (who to link to, when, and in what order) is the session
// layer's problem.
type Link interface {
	// AddTrack attaches a local outbound track.
	AddTrack(track webrtc.TrackLocal) error

	// ReplaceVideoTrack swaps the outbound video track in place,
	// without renegotiation.
	ReplaceVideoTrack(track webrtc.TrackLocal) error

	// CreateOffer generates a local offer and installs it as the local
	// description.
	CreateOffer() (webrtc.SessionDescription, error)

	// CreateAnswer applies the remote offer and generates an answer,
	// installing both descriptions.
	CreateAnswer(offer webrtc.SessionDescription) (webrtc.SessionDescription, error)

	// ApplyAnswer installs the remote answer on an offering link.
	ApplyAnswer(answer webrtc.SessionDescription) error

	// AddICECandidate ingests one remote candidate. Callers must only
	// invoke this once a remote description is installed.
	AddICECandidate(candidate webrtc.ICECandidateInit) error

	// OnICECandidate registers the local candidate callback.
	OnICECandidate(fn func(webrtc.ICECandidateInit))

	// OnTrack registers the inbound track callback.
	OnTrack(fn func(track *webrtc.TrackRemote))

	// OnHealthChange registers the connection health callback.
	OnHealthChange(fn func(Health))

	// Close tears the connection down. Closing twice is harmless.
	Close() error
}

// LinkFactory builds a fresh Link for one remote participant.
type LinkFactory func() (Link, error)
