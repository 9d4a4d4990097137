package chat

import "sort"

type Room struct {
	Name    string
	Members map[string]Member
	History []Message
}

func newRoom(name string) *Room {
	return &Room{
		Name:    name,
		Members: make(map[string]Member),
	}
}

// Registry owns all room state: membership, per-room history and room
// lifecycle. Rooms are created on first join and deleted when the last member
// leaves, except the default room which lives for the whole process.
// The Registry does no locking of its own; the Coordinator serializes access.
type Registry struct {
	defaultRoom string
	rooms       map[string]*Room
}

func NewRegistry(defaultRoom string) *Registry {
	r := &Registry{
		defaultRoom: defaultRoom,
		rooms:       make(map[string]*Room),
	}
	r.rooms[defaultRoom] = newRoom(defaultRoom)
	return r
}

func (r *Registry) DefaultRoom() string {
	return r.defaultRoom
}

// EnsureRoom returns the named room, creating an empty one if needed. This is
// the only operation that may create a room.
func (r *Registry) EnsureRoom(name string) *Room {
	room, ok := r.rooms[name]
	if !ok {
		room = newRoom(name)
		r.rooms[name] = room
	}
	return room
}

func (r *Registry) roomExists(name string) bool {
	_, ok := r.rooms[name]
	return ok
}

// RoomIsLive reports whether the room exists and has at least one member. The
// default room with zero members is not live even though its entry remains.
func (r *Registry) RoomIsLive(name string) bool {
	room, ok := r.rooms[name]
	return ok && len(room.Members) > 0
}

func (r *Registry) HasMember(name, username string) bool {
	room, ok := r.rooms[name]
	if !ok {
		return false
	}
	_, taken := room.Members[username]
	return taken
}

// AddMember inserts a member keyed by standardized username. It fails with
// ErrUsernameTaken if the name is already held in the room.
func (r *Registry) AddMember(name, username string, member Member) error {
	room, ok := r.rooms[name]
	if !ok {
		room = r.EnsureRoom(name)
	}
	if _, taken := room.Members[username]; taken {
		return ErrUsernameTaken
	}
	room.Members[username] = member
	return nil
}

// RemoveMember drops the member. A non-default room left empty is deleted
// entirely, history included.
func (r *Registry) RemoveMember(name, username string) {
	room, ok := r.rooms[name]
	if !ok {
		return
	}
	delete(room.Members, username)
	if len(room.Members) == 0 && name != r.defaultRoom {
		delete(r.rooms, name)
	}
}

// AppendMessage appends to the room history. Appending to a room that does
// not exist is a no-op; rooms are only created via EnsureRoom.
func (r *Registry) AppendMessage(name string, msg Message) {
	room, ok := r.rooms[name]
	if !ok {
		return
	}
	room.History = append(room.History, msg)
}

// ListMembers returns a snapshot of the current members, ordered by
// standardized username for stable output.
func (r *Registry) ListMembers(name string) []Member {
	room, ok := r.rooms[name]
	if !ok {
		return nil
	}
	members := make([]Member, 0, len(room.Members))
	for _, m := range room.Members {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Username < members[j].Username
	})
	return members
}

// History returns a snapshot of the room history in insertion order.
func (r *Registry) History(name string) []Message {
	room, ok := r.rooms[name]
	if !ok {
		return nil
	}
	history := make([]Message, len(room.History))
	copy(history, room.History)
	return history
}
