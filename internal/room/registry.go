package room

import (
	"sync"

	"github.com/streamalong/cli/internal/media"
)

// Registry owns every PeerLink, keyed by participant id. It is the only
// place links are created or destroyed, which is what upholds the
// one-link-per-participant invariant.
type Registry struct {
	mu    sync.RWMutex
	links map[string]*PeerLink
}

func NewRegistry() *Registry {
	return &Registry{links: make(map[string]*PeerLink)}
}

// Get returns the link for a participant, if one exists.
func (r *Registry) Get(id string) (*PeerLink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.links[id]
	return p, ok
}

// Ensure returns the existing link for id, or creates one via factory.
// The second return is true when a new link was created.
func (r *Registry) Ensure(id string, factory media.LinkFactory) (*PeerLink, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.links[id]; ok {
		return p, false, nil
	}

	link, err := factory()
	if err != nil {
		return nil, false, NewPeerError("create link", id, err)
	}

	p := newPeerLink(id, link)
	r.links[id] = p
	return p, true, nil
}

// Remove closes and discards the link for id. Removing an absent id is
// a no-op, so duplicate user-left delivery converges.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	p, ok := r.links[id]
	if ok {
		delete(r.links, id)
	}
	r.mu.Unlock()

	if ok {
		p.close()
	}
}

// Clear closes every link. Used on room teardown and transport gaps.
func (r *Registry) Clear() {
	r.mu.Lock()
	links := r.links
	r.links = make(map[string]*PeerLink)
	r.mu.Unlock()

	for _, p := range links {
		p.close()
	}
}

// Len returns the number of live links.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.links)
}

// ForEach visits every link. The snapshot is taken under the lock; the
// visit happens outside it.
func (r *Registry) ForEach(fn func(*PeerLink)) {
	r.mu.RLock()
	snapshot := make([]*PeerLink, 0, len(r.links))
	for _, p := range r.links {
		snapshot = append(snapshot, p)
	}
	r.mu.RUnlock()

	for _, p := range snapshot {
		fn(p)
	}
}
