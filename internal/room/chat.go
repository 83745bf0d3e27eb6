package room

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChatEntry is one chat message in local arrival order.
type ChatEntry struct {
	ID     string
	Sender string
	Text   string
	At     time.Time
}

// ChatLog is the append-only, arrival-ordered chat history. It is a
// local view, not replicated state: order is whatever the relay
// delivered.
type ChatLog struct {
	mu      sync.Mutex
	entries []ChatEntry
}

func NewChatLog() *ChatLog {
	return &ChatLog{}
}

// Append records a message and returns the stored entry.
func (l *ChatLog) Append(sender, text string) ChatEntry {
	entry := ChatEntry{
		ID:     uuid.NewString(),
		Sender: sender,
		Text:   text,
		At:     time.Now(),
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	return entry
}

// Entries returns a copy of the log.
func (l *ChatLog) Entries() []ChatEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ChatEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *ChatLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// ReactionTTL is how long a reaction stays on screen.
const ReactionTTL = time.Second

// Reaction is one ephemeral reaction.
type Reaction struct {
	ID     string
	Sender string
	Kind   string
	At     time.Time
}

// ReactionBoard holds the currently visible reactions. Each one expires
// on a local timer, independent of any protocol message.
type ReactionBoard struct {
	mu      sync.Mutex
	active  map[string]Reaction
	order   []string
	ttl     time.Duration
	after   func(time.Duration, func()) *time.Timer
	expired func(Reaction)
}

// NewReactionBoard creates a board with the protocol TTL. expired may
// be nil.
func NewReactionBoard(expired func(Reaction)) *ReactionBoard {
	return &ReactionBoard{
		active:  make(map[string]Reaction),
		ttl:     ReactionTTL,
		after:   time.AfterFunc,
		expired: expired,
	}
}

// Add appends a reaction and schedules its expiry.
func (b *ReactionBoard) Add(sender, kind string) Reaction {
	r := Reaction{
		ID:     uuid.NewString(),
		Sender: sender,
		Kind:   kind,
		At:     time.Now(),
	}

	b.mu.Lock()
	b.active[r.ID] = r
	b.order = append(b.order, r.ID)
	b.mu.Unlock()

	b.after(b.ttl, func() { b.expire(r.ID) })

	return r
}

func (b *ReactionBoard) expire(id string) {
	b.mu.Lock()
	r, ok := b.active[id]
	if ok {
		delete(b.active, id)
		for i, rid := range b.order {
			if rid == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
	b.mu.Unlock()

	if ok && b.expired != nil {
		b.expired(r)
	}
}

// Active returns the visible reactions in arrival order.
func (b *ReactionBoard) Active() []Reaction {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Reaction, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.active[id])
	}
	return out
}
