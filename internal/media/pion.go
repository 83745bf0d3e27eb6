package media

import (
	"fmt"
	"sync"

	"github.com/pion/webrtc/v4"
	"github.com/streamalong/cli/internal/config"
	"github.com/streamalong/cli/internal/utils"
)

// PionLink is the production Link backed by a pion PeerConnection.
type PionLink struct {
	pc *webrtc.PeerConnection

	mu      sync.Mutex
	senders []*webrtc.RTPSender
	closed  bool
}

// NewPionLink creates a peer connection from the configured ICE servers.
func NewPionLink(cfg *config.Config) (*PionLink, error) {
	iceServers := []webrtc.ICEServer{{URLs: cfg.GetSTUNServers()}}

	turnServers := cfg.GetTURNServers()
	if turnServers != nil {
		username, password := cfg.GetTURNCredentials()
		iceServers = append(iceServers, webrtc.ICEServer{
			URLs:       turnServers,
			Username:   username,
			Credential: password,
		})
	}

	policy := webrtc.ICETransportPolicyAll
	if turnServers != nil && (cfg.ForceRelay || utils.ShouldForceRelay()) {
		policy = webrtc.ICETransportPolicyRelay
	}

	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{
		ICEServers:         iceServers,
		ICETransportPolicy: policy,
	})
	if err != nil {
		return nil, fmt.Errorf("create peer connection: %w", err)
	}

	return &PionLink{pc: pc}, nil
}

// NewLinkFactory returns a factory producing PionLinks for cfg.
func NewLinkFactory(cfg *config.Config) LinkFactory {
	return func() (Link, error) {
		return NewPionLink(cfg)
	}
}

func (l *PionLink) AddTrack(track webrtc.TrackLocal) error {
	sender, err := l.pc.AddTrack(track)
	if err != nil {
		return fmt.Errorf("add track: %w", err)
	}

	l.mu.Lock()
	l.senders = append(l.senders, sender)
	l.mu.Unlock()

	// Drain RTCP so interceptors keep running.
	go func() {
		buf := make([]byte, 1500)
		for {
			if _, _, err := sender.Read(buf); err != nil {
				return
			}
		}
	}()

	return nil
}

func (l *PionLink) ReplaceVideoTrack(track webrtc.TrackLocal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, sender := range l.senders {
		current := sender.Track()
		if current == nil || current.Kind() != webrtc.RTPCodecTypeVideo {
			continue
		}
		if err := sender.ReplaceTrack(track); err != nil {
			return fmt.Errorf("replace video track: %w", err)
		}
		return nil
	}

	return fmt.Errorf("no video sender on link")
}

func (l *PionLink) CreateOffer() (webrtc.SessionDescription, error) {
	offer, err := l.pc.CreateOffer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("create offer: %w", err)
	}

	if err = l.pc.SetLocalDescription(offer); err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("set local description: %w", err)
	}

	// Trickle ICE: return immediately, candidates flow via OnICECandidate.
	return *l.pc.LocalDescription(), nil
}

func (l *PionLink) CreateAnswer(offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	if err := l.pc.SetRemoteDescription(offer); err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("set remote description: %w", err)
	}

	answer, err := l.pc.CreateAnswer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("create answer: %w", err)
	}

	if err = l.pc.SetLocalDescription(answer); err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("set local description: %w", err)
	}

	return *l.pc.LocalDescription(), nil
}

func (l *PionLink) ApplyAnswer(answer webrtc.SessionDescription) error {
	if err := l.pc.SetRemoteDescription(answer); err != nil {
		return fmt.Errorf("set remote description: %w", err)
	}
	return nil
}

func (l *PionLink) AddICECandidate(candidate webrtc.ICECandidateInit) error {
	if err := l.pc.AddICECandidate(candidate); err != nil {
		return fmt.Errorf("add ICE candidate: %w", err)
	}
	return nil
}

func (l *PionLink) OnICECandidate(fn func(webrtc.ICECandidateInit)) {
	l.pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		fn(c.ToJSON())
	})
}

func (l *PionLink) OnTrack(fn func(*webrtc.TrackRemote)) {
	l.pc.OnTrack(func(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		fn(track)
	})
}

func (l *PionLink) OnHealthChange(fn func(Health)) {
	l.pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		switch state {
		case webrtc.PeerConnectionStateConnected:
			fn(HealthConnected)
		case webrtc.PeerConnectionStateFailed:
			fn(HealthFailed)
		case webrtc.PeerConnectionStateClosed:
			fn(HealthClosed)
		}
	})
}

func (l *PionLink) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	return l.pc.Close()
}
