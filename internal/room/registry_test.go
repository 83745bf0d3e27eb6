package room

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryEnsureReusesExistingLink(t *testing.T) {
	rec := &linkRecorder{}
	reg := NewRegistry()

	first, created, err := reg.Ensure("viewer-1", rec.factory)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := reg.Ensure("viewer-1", rec.factory)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, first, second)
	assert.Equal(t, 1, rec.count())
}

func TestRegistryEnsureFactoryError(t *testing.T) {
	rec := &linkRecorder{err: errors.New("no ice servers")}
	reg := NewRegistry()

	_, _, err := reg.Ensure("viewer-1", rec.factory)
	require.Error(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryRemoveClosesAndIsIdempotent(t *testing.T) {
	rec := &linkRecorder{}
	reg := NewRegistry()

	_, _, err := reg.Ensure("viewer-1", rec.factory)
	require.NoError(t, err)

	reg.Remove("viewer-1")
	assert.True(t, rec.link(0).closed)
	assert.Equal(t, 0, reg.Len())

	// second removal converges without effect
	reg.Remove("viewer-1")
	reg.Remove("never-existed")
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryClearClosesEveryLink(t *testing.T) {
	rec := &linkRecorder{}
	reg := NewRegistry()

	for _, id := range []string{"a", "b", "c"} {
		_, _, err := reg.Ensure(id, rec.factory)
		require.NoError(t, err)
	}

	reg.Clear()

	assert.Equal(t, 0, reg.Len())
	for i := 0; i < 3; i++ {
		assert.True(t, rec.link(i).closed)
	}
}

func TestRegistryForEachVisitsAll(t *testing.T) {
	rec := &linkRecorder{}
	reg := NewRegistry()

	for _, id := range []string{"a", "b"} {
		_, _, err := reg.Ensure(id, rec.factory)
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	reg.ForEach(func(p *PeerLink) {
		seen[p.ID] = true
	})
	assert.Equal(t, map[string]bool{"a": true, "b": true}, seen)
}
