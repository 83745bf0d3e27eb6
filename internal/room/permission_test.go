package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionRequestOncePerPending(t *testing.T) {
	w := NewPermissionWorkflow()

	require.NoError(t, w.Request())
	assert.Equal(t, PermissionRequested, w.Local())

	assert.ErrorIs(t, w.Request(), ErrRequestPending)
}

func TestPermissionDenialAllowsReRequest(t *testing.T) {
	w := NewPermissionWorkflow()

	require.NoError(t, w.Request())
	state := w.Resolve(false)

	// denial leaves no sticky state
	assert.Equal(t, PermissionNone, state)
	require.NoError(t, w.Request())
}

func TestPermissionGrant(t *testing.T) {
	w := NewPermissionWorkflow()

	require.NoError(t, w.Request())
	assert.Equal(t, PermissionGranted, w.Resolve(true))

	w.ResetLocal()
	assert.Equal(t, PermissionNone, w.Local())
}

func TestPermissionHostSideOneResponsePerRequest(t *testing.T) {
	w := NewPermissionWorkflow()

	assert.True(t, w.NoteRequest("viewer-1"))
	// duplicate request while one is pending is dropped
	assert.False(t, w.NoteRequest("viewer-1"))

	assert.True(t, w.Answer("viewer-1"))
	// second response has no pending request to clear
	assert.False(t, w.Answer("viewer-1"))

	// after the answer the viewer may request again
	assert.True(t, w.NoteRequest("viewer-1"))
}

func TestPermissionForgetDroppedViewer(t *testing.T) {
	w := NewPermissionWorkflow()

	require.True(t, w.NoteRequest("viewer-1"))
	w.Forget("viewer-1")

	assert.False(t, w.Answer("viewer-1"))
}

func TestRoomMembership(t *testing.T) {
	r := NewRoom("movie-night", "host-1", "Alice")

	r.Add(Participant{ID: "v1", DisplayName: "Bob", Role: RoleViewer})
	r.Add(Participant{ID: "v2", DisplayName: "Carol", Role: RoleViewer})
	assert.Equal(t, 3, r.Len())

	// re-add updates the name only
	r.Add(Participant{ID: "v1", DisplayName: "Bobby", Role: RoleViewer})
	assert.Equal(t, 3, r.Len())
	p, ok := r.Get("v1")
	require.True(t, ok)
	assert.Equal(t, "Bobby", p.DisplayName)

	// join order preserved
	ids := []string{}
	for _, p := range r.Participants() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"host-1", "v1", "v2"}, ids)

	// host is irremovable
	r.Remove("host-1")
	assert.True(t, r.Has("host-1"))

	r.Remove("v1")
	r.Remove("v1")
	assert.Equal(t, 2, r.Len())
}
