package room

import (
	"testing"

	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(s string) webrtc.ICECandidateInit {
	return webrtc.ICECandidateInit{Candidate: s}
}

func TestPeerLinkBuffersCandidatesUntilRemoteDescription(t *testing.T) {
	link := &fakeLink{}
	p := newPeerLink("viewer-1", link)

	require.NoError(t, p.addCandidate(candidate("c1")))
	require.NoError(t, p.addCandidate(candidate("c2")))
	require.NoError(t, p.addCandidate(candidate("c3")))

	assert.Equal(t, 3, p.PendingCandidates())
	assert.Empty(t, link.appliedCandidates())

	_, err := p.acceptOffer(webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: "o"})
	require.NoError(t, err)

	// flushed in arrival order
	applied := link.appliedCandidates()
	require.Len(t, applied, 3)
	assert.Equal(t, "c1", applied[0].Candidate)
	assert.Equal(t, "c2", applied[1].Candidate)
	assert.Equal(t, "c3", applied[2].Candidate)
	assert.Equal(t, 0, p.PendingCandidates())

	// later candidates apply immediately
	require.NoError(t, p.addCandidate(candidate("c4")))
	assert.Len(t, link.appliedCandidates(), 4)
}

func TestPeerLinkAnswerFlushesBuffer(t *testing.T) {
	link := &fakeLink{}
	p := newPeerLink("viewer-1", link)

	_, ok, err := p.sendOffer()
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, p.addCandidate(candidate("early")))
	assert.Equal(t, 1, p.PendingCandidates())

	require.NoError(t, p.applyAnswer(webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: "a"}))

	assert.Equal(t, LinkConnected, p.State())
	assert.Len(t, link.appliedCandidates(), 1)
}

func TestPeerLinkOfferSuppressedWhileNegotiating(t *testing.T) {
	link := &fakeLink{}
	p := newPeerLink("viewer-1", link)

	_, ok, err := p.sendOffer()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, LinkOfferSent, p.State())

	// a second offer while the first is unanswered is suppressed
	_, ok, err = p.sendOffer()
	require.NoError(t, err)
	assert.False(t, ok)

	// once answered, renegotiation is allowed again
	require.NoError(t, p.applyAnswer(webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: "a"}))
	_, ok, err = p.sendOffer()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPeerLinkDuplicateAnswerIgnored(t *testing.T) {
	link := &fakeLink{}
	p := newPeerLink("viewer-1", link)

	_, _, err := p.sendOffer()
	require.NoError(t, err)

	answer := webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: "a"}
	require.NoError(t, p.applyAnswer(answer))
	require.NoError(t, p.applyAnswer(answer))

	assert.Len(t, link.applied, 1)
	assert.Equal(t, LinkConnected, p.State())
}

func TestPeerLinkCloseDiscardsPendingCandidates(t *testing.T) {
	link := &fakeLink{}
	p := newPeerLink("viewer-1", link)

	require.NoError(t, p.addCandidate(candidate("c1")))
	p.close()

	assert.Equal(t, LinkClosed, p.State())
	assert.Equal(t, 0, p.PendingCandidates())
	assert.True(t, link.closed)

	// operations on a closed link are inert
	require.NoError(t, p.addCandidate(candidate("c2")))
	assert.Empty(t, link.appliedCandidates())

	_, ok, err := p.sendOffer()
	assert.False(t, ok)
	assert.Error(t, err)

	p.close()
	assert.Equal(t, LinkClosed, p.State())
}

func TestPeerLinkMarkFailed(t *testing.T) {
	link := &fakeLink{}
	p := newPeerLink("viewer-1", link)

	p.markFailed()
	assert.Equal(t, LinkFailed, p.State())

	_, err := p.acceptOffer(webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: "o"})
	assert.Error(t, err)
}
