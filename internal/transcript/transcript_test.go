package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamalong/cli/internal/room"
)

func TestTranscriptSaveAndLoad(t *testing.T) {
	t.Chdir(t.TempDir())

	stats := room.NewStats()
	stats.ObserveViewerCount(4)

	chat := []room.ChatEntry{
		{ID: "1", Sender: "Alice", Text: "welcome", At: time.Now().Truncate(time.Second)},
		{ID: "2", Sender: "Bob", Text: "hi", At: time.Now().Truncate(time.Second)},
	}

	original := Build("movie-night", room.RoleHost, stats, chat)

	name, err := original.Save()
	require.NoError(t, err)
	assert.Contains(t, name, "movie-night")

	loaded, err := Load(name)
	require.NoError(t, err)

	assert.Equal(t, "movie-night", loaded.RoomID)
	assert.Equal(t, "host", loaded.Role)
	assert.Equal(t, 4, loaded.PeakViewers)
	require.Len(t, loaded.Chat, 2)
	assert.Equal(t, "Alice", loaded.Chat[0].Sender)
	assert.Equal(t, "hi", loaded.Chat[1].Text)
}

func TestTranscriptSaveNeverOverwrites(t *testing.T) {
	t.Chdir(t.TempDir())

	tr := Build("movie-night", room.RoleViewer, room.NewStats(), nil)

	first, err := tr.Save()
	require.NoError(t, err)
	second, err := tr.Save()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
