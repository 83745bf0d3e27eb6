package room

import "sync"

// PermissionState is the viewer's publish-request state.
type PermissionState int

const (
	PermissionNone PermissionState = iota
	PermissionRequested
	PermissionGranted
	PermissionDenied
)

func (s PermissionState) String() string {
	switch s {
	case PermissionRequested:
		return "requested"
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "none"
	}
}

// PermissionWorkflow enforces the request/grant handshake from both
// sides: at most one pending request locally (viewer side), and at most
// one pending request per viewer (host side). The decision itself is the
// UI's problem.
type PermissionWorkflow struct {
	mu sync.Mutex

	// viewer side
	local PermissionState

	// host side
	pending map[string]struct{}
}

func NewPermissionWorkflow() *PermissionWorkflow {
	return &PermissionWorkflow{pending: make(map[string]struct{})}
}

// Local returns the viewer-side state.
func (w *PermissionWorkflow) Local() PermissionState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.local
}

// Request moves the viewer side to Requested. It fails while a request
// is already pending so no second message goes out.
func (w *PermissionWorkflow) Request() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.local == PermissionRequested {
		return ErrRequestPending
	}
	w.local = PermissionRequested
	return nil
}

// Resolve applies the host's verdict on the viewer side. A denial
// resets to None so the viewer may re-request.
func (w *PermissionWorkflow) Resolve(allowed bool) PermissionState {
	w.mu.Lock()
	defer w.mu.Unlock()

	if allowed {
		w.local = PermissionGranted
	} else {
		w.local = PermissionNone
	}
	return w.local
}

// ResetLocal clears the viewer side, used when a granted publish path
// fails to acquire media.
func (w *PermissionWorkflow) ResetLocal() {
	w.mu.Lock()
	w.local = PermissionNone
	w.mu.Unlock()
}

// NoteRequest records an inbound request on the host side. It returns
// false for a duplicate, which is dropped without a second prompt.
func (w *PermissionWorkflow) NoteRequest(viewerID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.pending[viewerID]; ok {
		return false
	}
	w.pending[viewerID] = struct{}{}
	return true
}

// Answer clears a pending host-side request. It returns false when no
// request was pending, guarding against double responses.
func (w *PermissionWorkflow) Answer(viewerID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.pending[viewerID]; !ok {
		return false
	}
	delete(w.pending, viewerID)
	return true
}

// Forget drops any pending request from a departed viewer.
func (w *PermissionWorkflow) Forget(viewerID string) {
	w.mu.Lock()
	delete(w.pending, viewerID)
	w.mu.Unlock()
}
