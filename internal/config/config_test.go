package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, DefaultDomain, cfg.Domain)
	assert.Equal(t, "wss://"+DefaultDomain+"/ws", cfg.WebSocketURL)
	assert.Equal(t, DefaultQuality, cfg.Quality)
	assert.False(t, cfg.ForceRelay)
}

func TestLoadFlagBeatsEnv(t *testing.T) {
	t.Setenv("STREAMALONG_DOMAIN", "env.example.com")
	t.Setenv("STREAM_QUALITY", "720p")

	cfg, err := Load(Options{Domain: "flag.example.com", Quality: "480p"})
	require.NoError(t, err)

	assert.Equal(t, "flag.example.com", cfg.Domain)
	assert.Equal(t, "480p", cfg.Quality)
}

func TestLoadEnvBeatsDefault(t *testing.T) {
	t.Setenv("STREAMALONG_DOMAIN", "env.example.com")

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "env.example.com", cfg.Domain)
	assert.Equal(t, "wss://env.example.com/ws", cfg.WebSocketURL)
}

func TestLoadRejectsUnknownQuality(t *testing.T) {
	_, err := Load(Options{Quality: "1080p"})
	assert.Error(t, err)
}

func TestRoomLink(t *testing.T) {
	cfg, err := Load(Options{Domain: "example.com"})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/r/movie-night", cfg.GetRoomLink("movie-night"))
}

func TestTURNServerURLs(t *testing.T) {
	cfg, err := Load(Options{TURNServer: "turn:relay.example.com"})
	require.NoError(t, err)

	servers := cfg.GetTURNServers()
	require.Len(t, servers, 3)
	assert.Equal(t, "turn:relay.example.com:3478?transport=udp", servers[0])
	assert.Equal(t, "turn:relay.example.com:3478?transport=tcp", servers[1])
}
