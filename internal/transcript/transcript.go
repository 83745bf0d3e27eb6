// Package transcript persists a finished session to disk so a host can
// keep the chat record of a stream.
package transcript

import (
	"fmt"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/streamalong/cli/internal/room"
	"github.com/streamalong/cli/internal/utils"
)

// Entry is one chat line in the transcript.
type Entry struct {
	Sender string    `msgpack:"sender"`
	Text   string    `msgpack:"text"`
	At     time.Time `msgpack:"at"`
}

// Transcript is the on-disk record of one session.
type Transcript struct {
	RoomID      string        `msgpack:"roomId"`
	Role        string        `msgpack:"role"`
	StartedAt   time.Time     `msgpack:"startedAt"`
	Duration    time.Duration `msgpack:"duration"`
	PeakViewers int           `msgpack:"peakViewers"`
	Chat        []Entry       `msgpack:"chat"`
}

// Build assembles a transcript from the finished session.
func Build(roomID string, role room.Role, stats *room.Stats, chat []room.ChatEntry) *Transcript {
	t := &Transcript{
		RoomID:      roomID,
		Role:        string(role),
		StartedAt:   stats.StartedAt(),
		Duration:    stats.Duration(),
		PeakViewers: stats.PeakViewers(),
	}
	for _, c := range chat {
		t.Chat = append(t.Chat, Entry{Sender: c.Sender, Text: c.Text, At: c.At})
	}
	return t
}

// Save writes the transcript into the working directory and returns
// the filename used. An existing file is never overwritten.
func (t *Transcript) Save() (string, error) {
	data, err := msgpack.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encode transcript: %w", err)
	}

	name := utils.GetUniqueFilename(fmt.Sprintf("streamalong-%s.transcript", t.RoomID))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return name, nil
}

// Load reads a transcript back, for replaying a saved chat record.
func Load(name string) (*Transcript, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var t Transcript
	if err := msgpack.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return &t, nil
}
