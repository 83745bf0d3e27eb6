package room

import (
	"github.com/streamalong/cli/internal/media"
	"github.com/streamalong/cli/internal/signaling"
)

// Role is the local participant's role in the room.
type Role string

const (
	RoleHost   Role = "host"
	RoleViewer Role = "viewer"
)

// Participant is one room member as this client sees it.
type Participant struct {
	ID          string
	DisplayName string
	Role        Role

	// Publishing is true for viewers with an active outbound stream.
	Publishing bool
}

// Room is the local replica of room state. Participants keep join order
// for display; identity is by id.
type Room struct {
	ID        string
	HostID    string
	Streaming bool

	order []string
	byID  map[string]*Participant
}

func NewRoom(id, hostID, hostName string) *Room {
	r := &Room{
		ID:     id,
		HostID: hostID,
		byID:   make(map[string]*Participant),
	}
	r.Add(Participant{ID: hostID, DisplayName: hostName, Role: RoleHost})
	return r
}

// Add inserts a participant. Adding an id that is already present
// updates the display name and is otherwise a no-op.
func (r *Room) Add(p Participant) {
	if existing, ok := r.byID[p.ID]; ok {
		if p.DisplayName != "" {
			existing.DisplayName = p.DisplayName
		}
		return
	}
	r.order = append(r.order, p.ID)
	stored := p
	r.byID[p.ID] = &stored
}

// Remove deletes a participant. Removing an unknown id is a no-op. The
// host cannot be removed; the room dies with it instead.
func (r *Room) Remove(id string) {
	if id == r.HostID {
		return
	}
	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the participant for id, if present.
func (r *Room) Get(id string) (*Participant, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Has reports membership.
func (r *Room) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Participants returns members in join order.
func (r *Room) Participants() []Participant {
	out := make([]Participant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

// Len returns the member count, host included.
func (r *Room) Len() int {
	return len(r.byID)
}

// Merge reconciles a membership snapshot from the relay. It only adds;
// departures arrive as user-left and are handled there, so a stale
// snapshot cannot evict members.
func (r *Room) Merge(infos []signaling.ParticipantInfo) {
	for _, info := range infos {
		if info.ID == "" {
			continue
		}
		role := RoleViewer
		if info.ID == r.HostID {
			role = RoleHost
		}
		r.Add(Participant{ID: info.ID, DisplayName: info.DisplayName, Role: role})
	}
}

// LocalSession is this process's own identity within the room. ID is
// assigned by the relay and set only once the join is confirmed.
type LocalSession struct {
	ID          string
	DisplayName string
	Role        Role
	Capture     media.Capture
	Publishing  bool
}
