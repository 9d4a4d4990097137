package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureRoomIsIdempotent(t *testing.T) {
	reg := NewRegistry("general")

	room := reg.EnsureRoom("team")
	require.NotNil(t, room)
	require.Equal(t, "team", room.Name)

	again := reg.EnsureRoom("team")
	require.Same(t, room, again)
}

func TestRoomIsLiveRequiresMembers(t *testing.T) {
	reg := NewRegistry("general")

	require.False(t, reg.RoomIsLive("general"), "empty default room is not live")
	require.False(t, reg.RoomIsLive("nowhere"))

	reg.EnsureRoom("team")
	require.False(t, reg.RoomIsLive("team"), "room without members is not live")

	require.NoError(t, reg.AddMember("team", "alice123!", Member{ConnID: "c1", Username: "alice123!"}))
	require.True(t, reg.RoomIsLive("team"))
}

func TestAddMemberRejectsDuplicateUsername(t *testing.T) {
	reg := NewRegistry("general")
	reg.EnsureRoom("team")

	require.NoError(t, reg.AddMember("team", "alice123!", Member{ConnID: "c1", Username: "alice123!"}))
	err := reg.AddMember("team", "alice123!", Member{ConnID: "c2", Username: "alice123!"})
	require.ErrorIs(t, err, ErrUsernameTaken)

	// The same username in another room is fine.
	reg.EnsureRoom("other")
	require.NoError(t, reg.AddMember("other", "alice123!", Member{ConnID: "c2", Username: "alice123!"}))
}

func TestRemoveMemberDeletesEmptyNonDefaultRoom(t *testing.T) {
	reg := NewRegistry("general")
	reg.EnsureRoom("team")
	require.NoError(t, reg.AddMember("team", "alice123!", Member{ConnID: "c1", Username: "alice123!"}))
	reg.AppendMessage("team", Message{ID: "m1", Kind: KindChat, Sender: "alice123!", Body: "hi", Timestamp: 1})

	reg.RemoveMember("team", "alice123!")

	require.False(t, reg.roomExists("team"), "empty non-default room is deleted")
	require.Nil(t, reg.History("team"), "history goes with the room")

	// A rejoin creates a fresh room with empty history.
	fresh := reg.EnsureRoom("team")
	require.Empty(t, fresh.History)
}

func TestDefaultRoomIsNeverDeleted(t *testing.T) {
	reg := NewRegistry("general")
	require.NoError(t, reg.AddMember("general", "alice123!", Member{ConnID: "c1", Username: "alice123!"}))
	reg.AppendMessage("general", Message{ID: "m1", Kind: KindSystem, Body: "alice123! joined the chat", Timestamp: 1})

	reg.RemoveMember("general", "alice123!")

	require.True(t, reg.roomExists("general"))
	require.False(t, reg.RoomIsLive("general"))
	require.Len(t, reg.History("general"), 1, "default room history survives empty membership")
}

func TestAppendMessageKeepsInsertionOrder(t *testing.T) {
	reg := NewRegistry("general")
	reg.EnsureRoom("team")

	reg.AppendMessage("team", Message{ID: "m1", Kind: KindChat, Sender: "a", Body: "one", Timestamp: 3})
	reg.AppendMessage("team", Message{ID: "m2", Kind: KindSystem, Body: "two", Timestamp: 1})
	reg.AppendMessage("team", Message{ID: "m3", Kind: KindChat, Sender: "b", Body: "three", Timestamp: 2})

	history := reg.History("team")
	require.Len(t, history, 3)
	require.Equal(t, []string{"m1", "m2", "m3"}, []string{history[0].ID, history[1].ID, history[2].ID})

	// The snapshot is detached from later appends.
	reg.AppendMessage("team", Message{ID: "m4", Kind: KindChat, Sender: "a", Body: "four", Timestamp: 4})
	require.Len(t, history, 3)
}

func TestReadsOnMissingRoomDoNotCreateIt(t *testing.T) {
	reg := NewRegistry("general")

	reg.AppendMessage("ghost", Message{ID: "m1", Kind: KindChat, Sender: "a", Body: "hi", Timestamp: 1})
	require.Nil(t, reg.History("ghost"))
	require.Nil(t, reg.ListMembers("ghost"))
	require.False(t, reg.HasMember("ghost", "alice123!"))
	require.False(t, reg.roomExists("ghost"))
}

func TestListMembersIsSortedSnapshot(t *testing.T) {
	reg := NewRegistry("general")
	reg.EnsureRoom("team")
	require.NoError(t, reg.AddMember("team", "zed99!!", Member{ConnID: "c1", Username: "zed99!!"}))
	require.NoError(t, reg.AddMember("team", "alice123!", Member{ConnID: "c2", Username: "alice123!"}))

	members := reg.ListMembers("team")
	require.Len(t, members, 2)
	require.Equal(t, "alice123!", members[0].Username)
	require.Equal(t, "zed99!!", members[1].Username)

	reg.RemoveMember("team", "zed99!!")
	require.Len(t, members, 2, "snapshot is not a live view")
}
