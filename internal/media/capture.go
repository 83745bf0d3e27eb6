package media

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
)

// Quality is the video capture quality preset.
type Quality string

const (
	Quality720p Quality = "720p"
	Quality480p Quality = "480p"
)

// Capture owns the local microphone and (optionally) camera tracks. It
// is single-owner: the session attaches its tracks into every outbound
// link but never copies them.
type Capture interface {
	// Tracks returns the current outbound tracks, audio first.
	Tracks() []webrtc.TrackLocal

	// VideoTrack returns the current video track, nil if audio-only.
	VideoTrack() webrtc.TrackLocal

	// SetMuted toggles the microphone without touching negotiation.
	SetMuted(muted bool)
	Muted() bool

	// SwitchQuality installs a new video track for the preset and
	// returns it. When it returns, Tracks reflects the new track; the
	// caller propagates it into already-established links.
	SwitchQuality(q Quality) (webrtc.TrackLocal, error)
	Quality() Quality

	Close() error
}

// Acquirer obtains the local media capability. withVideo is true for
// publishers (host, approved viewers).
type Acquirer func(q Quality, withVideo bool) (Capture, error)

// SampleCapture is a Capture backed by static sample tracks fed from a
// local pacer goroutine. Device capture plugs in behind the same
// interface; this implementation is what ships with the CLI.
type SampleCapture struct {
	mu      sync.Mutex
	audio   *webrtc.TrackLocalStaticSample
	video   *webrtc.TrackLocalStaticSample
	quality Quality
	muted   bool
	done    chan struct{}
	closed  bool
}

// NewSampleCapture builds the audio track and, for publishers, a video
// track at the requested quality.
func NewSampleCapture(q Quality, withVideo bool) (*SampleCapture, error) {
	audio, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus},
		"audio", "streamalong-"+uuid.NewString(),
	)
	if err != nil {
		return nil, fmt.Errorf("create audio track: %w", err)
	}

	c := &SampleCapture{
		audio:   audio,
		quality: q,
		done:    make(chan struct{}),
	}

	if withVideo {
		video, err := newVideoTrack()
		if err != nil {
			return nil, err
		}
		c.video = video
	}

	go c.pace()

	return c, nil
}

func newVideoTrack() (*webrtc.TrackLocalStaticSample, error) {
	video, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8},
		"video", "streamalong-"+uuid.NewString(),
	)
	if err != nil {
		return nil, fmt.Errorf("create video track: %w", err)
	}
	return video, nil
}

// pace keeps the audio track alive with 20ms silence frames while the
// microphone is muted or no real source is wired in.
func (c *SampleCapture) pace() {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	silence := []byte{0xf8, 0xff, 0xfe}

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			muted := c.muted
			audio := c.audio
			c.mu.Unlock()

			if muted {
				continue
			}
			_ = audio.WriteSample(media.Sample{Data: silence, Duration: 20 * time.Millisecond})
		}
	}
}

func (c *SampleCapture) Tracks() []webrtc.TrackLocal {
	c.mu.Lock()
	defer c.mu.Unlock()

	tracks := []webrtc.TrackLocal{c.audio}
	if c.video != nil {
		tracks = append(tracks, c.video)
	}
	return tracks
}

func (c *SampleCapture) VideoTrack() webrtc.TrackLocal {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.video == nil {
		return nil
	}
	return c.video
}

func (c *SampleCapture) SetMuted(muted bool) {
	c.mu.Lock()
	c.muted = muted
	c.mu.Unlock()
}

func (c *SampleCapture) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

func (c *SampleCapture) SwitchQuality(q Quality) (webrtc.TrackLocal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.video == nil {
		return nil, fmt.Errorf("no video track to switch")
	}
	if q == c.quality {
		return c.video, nil
	}

	video, err := newVideoTrack()
	if err != nil {
		return nil, err
	}

	c.video = video
	c.quality = q
	return video, nil
}

func (c *SampleCapture) Quality() Quality {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quality
}

func (c *SampleCapture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	return nil
}
