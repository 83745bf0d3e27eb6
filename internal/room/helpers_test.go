package room

import (
	"sync"
	"testing"

	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/require"

	"github.com/streamalong/cli/internal/media"
	"github.com/streamalong/cli/internal/signaling"
)

// fakeLink is an in-memory media.Link that records everything done to it.
type fakeLink struct {
	mu         sync.Mutex
	tracks     []webrtc.TrackLocal
	candidates []webrtc.ICECandidateInit
	replaced   []webrtc.TrackLocal
	applied    []webrtc.SessionDescription
	closed     bool

	offerErr  error
	answerErr error
	applyErr  error

	onICE    func(webrtc.ICECandidateInit)
	onHealth func(media.Health)
}

func (f *fakeLink) AddTrack(track webrtc.TrackLocal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracks = append(f.tracks, track)
	return nil
}

func (f *fakeLink) ReplaceVideoTrack(track webrtc.TrackLocal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaced = append(f.replaced, track)
	return nil
}

func (f *fakeLink) CreateOffer() (webrtc.SessionDescription, error) {
	if f.offerErr != nil {
		return webrtc.SessionDescription{}, f.offerErr
	}
	return webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: "offer-sdp"}, nil
}

func (f *fakeLink) CreateAnswer(offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	if f.answerErr != nil {
		return webrtc.SessionDescription{}, f.answerErr
	}
	return webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: "answer-sdp"}, nil
}

func (f *fakeLink) ApplyAnswer(answer webrtc.SessionDescription) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, answer)
	return nil
}

func (f *fakeLink) AddICECandidate(candidate webrtc.ICECandidateInit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.candidates = append(f.candidates, candidate)
	return nil
}

func (f *fakeLink) OnICECandidate(fn func(webrtc.ICECandidateInit)) {
	f.onICE = fn
}

func (f *fakeLink) OnTrack(fn func(*webrtc.TrackRemote)) {}

func (f *fakeLink) OnHealthChange(fn func(media.Health)) {
	f.onHealth = fn
}

func (f *fakeLink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeLink) appliedCandidates() []webrtc.ICECandidateInit {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]webrtc.ICECandidateInit, len(f.candidates))
	copy(out, f.candidates)
	return out
}

// linkRecorder hands out fakeLinks and remembers them by creation order.
type linkRecorder struct {
	mu    sync.Mutex
	links []*fakeLink
	err   error
}

func (r *linkRecorder) factory() (media.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	l := &fakeLink{}
	r.links = append(r.links, l)
	return l, nil
}

func (r *linkRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.links)
}

func (r *linkRecorder) link(i int) *fakeLink {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.links[i]
}

// fakeCapture is an in-memory media.Capture.
type fakeCapture struct {
	mu      sync.Mutex
	audio   webrtc.TrackLocal
	video   webrtc.TrackLocal
	quality media.Quality
	muted   bool
	closed  bool
}

func newFakeCapture(t *testing.T, withVideo bool) *fakeCapture {
	t.Helper()

	audio, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus}, "audio", "test")
	require.NoError(t, err)

	c := &fakeCapture{audio: audio, quality: media.Quality720p}
	if withVideo {
		c.video = newTestVideoTrack(t)
	}
	return c
}

func newTestVideoTrack(t *testing.T) webrtc.TrackLocal {
	t.Helper()
	video, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8}, "video", "test")
	require.NoError(t, err)
	return video
}

func (c *fakeCapture) Tracks() []webrtc.TrackLocal {
	c.mu.Lock()
	defer c.mu.Unlock()
	tracks := []webrtc.TrackLocal{c.audio}
	if c.video != nil {
		tracks = append(tracks, c.video)
	}
	return tracks
}

func (c *fakeCapture) VideoTrack() webrtc.TrackLocal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.video
}

func (c *fakeCapture) SetMuted(muted bool) {
	c.mu.Lock()
	c.muted = muted
	c.mu.Unlock()
}

func (c *fakeCapture) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

func (c *fakeCapture) SwitchQuality(q media.Quality) (webrtc.TrackLocal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	video, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8}, "video", string(q))
	if err != nil {
		return nil, err
	}
	c.video = video
	c.quality = q
	return video, nil
}

func (c *fakeCapture) Quality() media.Quality {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quality
}

func (c *fakeCapture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// sendRecorder captures outbound signaling messages.
type sendRecorder struct {
	mu   sync.Mutex
	sent []*signaling.Message
}

func (s *sendRecorder) Send(msg *signaling.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
}

func (s *sendRecorder) byType(t signaling.Type) []*signaling.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*signaling.Message
	for _, m := range s.sent {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

func (s *sendRecorder) count(t signaling.Type) int {
	return len(s.byType(t))
}

func (s *sendRecorder) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}
