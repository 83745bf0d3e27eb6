package room

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/streamalong/cli/internal/signaling"
)

const (
	reconnectAttempts = 5
	reconnectBase     = time.Second
	reconnectCap      = 15 * time.Second
)

// ErrReconnectFailed means every redial attempt was exhausted.
var ErrReconnectFailed = errors.New("reconnect failed")

// Transport is the signaling connection as the supervisor sees it.
type Transport interface {
	signaling.Sender
	Incoming() <-chan *signaling.Message
	Close()
	ClosedByUser() bool
}

// Dialer produces a fresh, connected Transport.
type Dialer func() (Transport, error)

// Supervisor drains the signaling connection into the controller and
// owns the redial loop. One goroutine runs Run for the whole session;
// that single reader is what keeps Dispatch calls ordered. The redial
// loop swaps the transport, so the slot is guarded for Stop.
type Supervisor struct {
	ctrl *Controller
	dial Dialer

	mu      sync.Mutex
	conn    Transport
	stopped bool
}

func NewSupervisor(ctrl *Controller, conn Transport, dial Dialer) *Supervisor {
	return &Supervisor{ctrl: ctrl, dial: dial, conn: conn}
}

// Stop closes whichever transport is currently active so Run drains
// out and returns. Called from outside the Run goroutine when the
// user leaves.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	conn := s.conn
	s.mu.Unlock()

	conn.Close()
}

func (s *Supervisor) current() Transport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

// swap installs the redialed transport. It reports false when Stop won
// the race, in which case the caller must close the new transport.
func (s *Supervisor) swap(conn Transport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.conn = conn
	return true
}

func (s *Supervisor) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Run pumps messages until the session is stopped or reconnection
// gives up. It returns nil on a user-initiated close.
func (s *Supervisor) Run() error {
	for {
		conn := s.current()
		for msg := range conn.Incoming() {
			s.ctrl.Dispatch(msg)
		}

		if conn.ClosedByUser() || s.isStopped() {
			return nil
		}
		if st := s.ctrl.State(); st == StateLeft || st == StateIdle {
			// the transport dropped after the session already ended;
			// there is nothing to rejoin
			return nil
		}

		s.ctrl.HandleTransportGap()

		next, err := s.redial()
		if err != nil {
			s.ctrl.Abandon(err)
			return err
		}
		if !s.swap(next) {
			next.Close()
			return nil
		}

		s.ctrl.Rejoin(next)
	}
}

// redial retries with doubling delays up to a cap.
func (s *Supervisor) redial() (Transport, error) {
	delay := reconnectBase
	for attempt := 1; attempt <= reconnectAttempts; attempt++ {
		slog.Info("reconnecting to relay", "attempt", attempt)

		conn, err := s.dial()
		if err == nil {
			return conn, nil
		}
		slog.Warn("reconnect attempt failed", "attempt", attempt, "err", err)

		if s.isStopped() {
			return nil, ErrReconnectFailed
		}

		time.Sleep(delay)
		delay *= 2
		if delay > reconnectCap {
			delay = reconnectCap
		}
	}
	return nil, ErrReconnectFailed
}
