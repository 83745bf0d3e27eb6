package room

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatLogArrivalOrder(t *testing.T) {
	log := NewChatLog()

	for i := 0; i < 5; i++ {
		log.Append("alice", fmt.Sprintf("message %d", i))
	}

	entries := log.Entries()
	require.Len(t, entries, 5)
	for i, entry := range entries {
		assert.Equal(t, fmt.Sprintf("message %d", i), entry.Text)
		assert.NotEmpty(t, entry.ID)
	}

	// Entries returns a copy
	entries[0].Text = "mutated"
	assert.Equal(t, "message 0", log.Entries()[0].Text)
}

func TestReactionBoardExpiry(t *testing.T) {
	var expired []Reaction
	b := NewReactionBoard(func(r Reaction) {
		expired = append(expired, r)
	})

	// capture timers instead of scheduling them
	var fire []func()
	b.after = func(d time.Duration, fn func()) *time.Timer {
		assert.Equal(t, ReactionTTL, d)
		fire = append(fire, fn)
		return nil
	}

	first := b.Add("alice", "❤️")
	second := b.Add("bob", "🔥")

	active := b.Active()
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)

	fire[0]()

	active = b.Active()
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
	require.Len(t, expired, 1)
	assert.Equal(t, first.ID, expired[0].ID)

	// firing an already expired timer is harmless
	fire[0]()
	assert.Len(t, expired, 1)

	fire[1]()
	assert.Empty(t, b.Active())
}

func TestStatsPeakViewersRatchet(t *testing.T) {
	s := NewStats()

	s.ObserveViewerCount(2)
	s.ObserveViewerCount(5)
	s.ObserveViewerCount(3)

	assert.Equal(t, 5, s.PeakViewers())
	assert.False(t, s.StartedAt().IsZero())
}
