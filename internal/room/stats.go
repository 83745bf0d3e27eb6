package room

import (
	"sync"
	"time"
)

// Stats tracks session statistics for the exit summary and transcript.
type Stats struct {
	mu          sync.Mutex
	startedAt   time.Time
	peakViewers int
}

func NewStats() *Stats {
	return &Stats{startedAt: time.Now()}
}

// ObserveViewerCount ratchets the peak-viewer counter.
func (s *Stats) ObserveViewerCount(count int) {
	s.mu.Lock()
	if count > s.peakViewers {
		s.peakViewers = count
	}
	s.mu.Unlock()
}

// PeakViewers returns the highest viewer count seen.
func (s *Stats) PeakViewers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peakViewers
}

// Duration returns how long the session has been running.
func (s *Stats) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.startedAt)
}

// StartedAt returns the session start time.
func (s *Stats) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}
