package room

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamalong/cli/internal/media"
	"github.com/streamalong/cli/internal/signaling"
)

// fakeTransport is an in-memory signaling connection. Close and drop
// are idempotent, like the real client.
type fakeTransport struct {
	sendRecorder
	incoming chan *signaling.Message

	mu         sync.Mutex
	closed     bool
	userClosed bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{incoming: make(chan *signaling.Message, 16)}
}

func (f *fakeTransport) Incoming() <-chan *signaling.Message {
	return f.incoming
}

func (f *fakeTransport) Close() {
	f.mu.Lock()
	f.userClosed = true
	already := f.closed
	f.closed = true
	f.mu.Unlock()
	if !already {
		close(f.incoming)
	}
}

// drop simulates a transport gap: the stream ends without Close.
func (f *fakeTransport) drop() {
	f.mu.Lock()
	already := f.closed
	f.closed = true
	f.mu.Unlock()
	if !already {
		close(f.incoming)
	}
}

func (f *fakeTransport) ClosedByUser() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userClosed
}

func TestSupervisorDispatchesUntilUserClose(t *testing.T) {
	send := &sendRecorder{}
	rec := &linkRecorder{}
	acquire := func(q media.Quality, withVideo bool) (media.Capture, error) {
		return newFakeCapture(t, withVideo), nil
	}
	ctrl := NewController(send, rec.factory, acquire, media.Quality720p)
	require.NoError(t, ctrl.JoinRoom("movie-night", "Bob"))

	conn := newFakeTransport()
	sup := NewSupervisor(ctrl, conn, func() (Transport, error) {
		t.Fatal("no redial expected")
		return nil, nil
	})

	done := make(chan error, 1)
	go func() { done <- sup.Run() }()

	conn.incoming <- signaling.MustMessage(signaling.TypeRoomJoined, signaling.RoomJoinedPayload{
		RoomID: "movie-night",
		SelfID: "viewer-1",
		HostID: "host-1",
	})
	conn.Close()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop")
	}

	assert.Equal(t, StateViewerJoined, ctrl.State())
}

func TestSupervisorReconnectsAfterTransportGap(t *testing.T) {
	send := &sendRecorder{}
	rec := &linkRecorder{}
	acquire := func(q media.Quality, withVideo bool) (media.Capture, error) {
		return newFakeCapture(t, withVideo), nil
	}
	ctrl := NewController(send, rec.factory, acquire, media.Quality720p)
	require.NoError(t, ctrl.JoinRoom("movie-night", "Bob"))

	first := newFakeTransport()
	second := newFakeTransport()
	sup := NewSupervisor(ctrl, first, func() (Transport, error) {
		return second, nil
	})

	done := make(chan error, 1)
	go func() { done <- sup.Run() }()

	first.incoming <- signaling.MustMessage(signaling.TypeRoomJoined, signaling.RoomJoinedPayload{
		RoomID: "movie-night",
		SelfID: "viewer-1",
		HostID: "host-1",
	})
	first.drop()

	// the rejoin goes out over the fresh connection
	require.Eventually(t, func() bool {
		return second.count(signaling.TypeJoinRoom) == 1
	}, time.Second, 10*time.Millisecond)

	second.Close()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop")
	}
}

// Quitting after a reconnect must close the redialed transport, not
// the one that already died.
func TestSupervisorStopClosesActiveTransport(t *testing.T) {
	send := &sendRecorder{}
	rec := &linkRecorder{}
	acquire := func(q media.Quality, withVideo bool) (media.Capture, error) {
		return newFakeCapture(t, withVideo), nil
	}
	ctrl := NewController(send, rec.factory, acquire, media.Quality720p)
	require.NoError(t, ctrl.JoinRoom("movie-night", "Bob"))

	first := newFakeTransport()
	second := newFakeTransport()
	sup := NewSupervisor(ctrl, first, func() (Transport, error) {
		return second, nil
	})

	done := make(chan error, 1)
	go func() { done <- sup.Run() }()

	first.incoming <- signaling.MustMessage(signaling.TypeRoomJoined, signaling.RoomJoinedPayload{
		RoomID: "movie-night",
		SelfID: "viewer-1",
		HostID: "host-1",
	})
	first.drop()

	require.Eventually(t, func() bool {
		return second.count(signaling.TypeJoinRoom) == 1
	}, time.Second, 10*time.Millisecond)

	ctrl.Leave()
	sup.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("supervisor kept running after stop")
	}
	assert.True(t, second.ClosedByUser())
}

// A transport drop after the session has ended is final; the
// supervisor must not redial a dead session.
func TestSupervisorDoesNotRedialLeftSession(t *testing.T) {
	send := &sendRecorder{}
	rec := &linkRecorder{}
	acquire := func(q media.Quality, withVideo bool) (media.Capture, error) {
		return newFakeCapture(t, withVideo), nil
	}
	ctrl := NewController(send, rec.factory, acquire, media.Quality720p)
	require.NoError(t, ctrl.JoinRoom("movie-night", "Bob"))

	conn := newFakeTransport()
	sup := NewSupervisor(ctrl, conn, func() (Transport, error) {
		t.Fatal("no redial expected")
		return nil, nil
	})

	done := make(chan error, 1)
	go func() { done <- sup.Run() }()

	conn.incoming <- signaling.MustMessage(signaling.TypeRoomJoined, signaling.RoomJoinedPayload{
		RoomID: "movie-night",
		SelfID: "viewer-1",
		HostID: "host-1",
	})
	conn.incoming <- signaling.MustMessage(signaling.TypeRoomClosed, nil)
	conn.drop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("supervisor kept running after the room closed")
	}
	assert.Equal(t, StateLeft, ctrl.State())
}
