package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotRoom() *Room {
	return &Room{
		Code:      "AB12",
		AdminId:   "admin-id",
		AdminName: "ana",
		AdminPin:  "1234",
		Mode:      ModeImpostor,
		State:     StatePlaying,
		Settings: Settings{
			Rounds: 2,
			Words:  []string{"sun", "tree"},
			Wolves: 1,
		},
		Players: []*Player{
			{Id: "admin-id", Name: "ana", Connected: true, Word: "sun"},
			{Id: "p2", Name: "ben", Connected: true, Word: "IMPOSTOR", IsImpostor: true},
		},
		Word: &WordState{Round: 1, Votes: map[string]string{"admin-id": "p2"}},
	}
}

func TestSnapshotHidesSecrets(t *testing.T) {
	room := snapshotRoom()
	snap := room.Snapshot()

	assert.Equal(t, "AB12", snap.Code)
	assert.Equal(t, string(ModeImpostor), snap.Mode)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, 2, snap.Settings.WordCount, "the word list shows only as a count")

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "1234", "the admin PIN never leaves the creation response")
	assert.NotContains(t, string(raw), "sun", "round words stay private")

	players, err := json.Marshal(snap.Players)
	require.NoError(t, err)
	assert.NotContains(t, string(players), "IMPOSTOR", "the sentinel word stays private")
}

func TestSnapshotCopiesVotes(t *testing.T) {
	room := snapshotRoom()
	snap := room.Snapshot()

	require.Equal(t, map[string]string{"admin-id": "p2"}, snap.Votes)
	snap.Votes["p2"] = "admin-id"
	assert.Len(t, room.Word.Votes, 1, "mutating the snapshot must not touch room state")
}

func TestSnapshotRevealsRolesOnlyAfterEnd(t *testing.T) {
	room := &Room{
		Code:    "CD34",
		AdminId: "gm-id",
		Mode:    ModeWerewolf,
		State:   StateNight,
		Players: []*Player{
			{Id: "gm-id", Name: "gm", Connected: true},
			{Id: "p2", Name: "ben", Connected: true, Role: RoleWerewolf, IsAlive: true},
			{Id: "p3", Name: "cal", Connected: true, Role: RoleSeer, IsAlive: true},
		},
		Wolf: &WolfState{Night: 1, Votes: map[string]string{}},
	}

	snap := room.Snapshot()
	assert.Empty(t, snap.Winner)
	assert.Empty(t, snap.Survivors)
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), string(RoleWerewolf), "roles stay hidden mid-game")

	room.State = StateEnded
	room.Wolf.Winner = FactionVillage
	snap = room.Snapshot()
	assert.Equal(t, string(FactionVillage), snap.Winner)
	require.Len(t, snap.Survivors, 2, "the narrator is not part of the reveal")
	roles := map[string]string{}
	for _, s := range snap.Survivors {
		roles[s.PlayerId] = s.Role
	}
	assert.Equal(t, string(RoleWerewolf), roles["p2"])
	assert.Equal(t, string(RoleSeer), roles["p3"])
}

func TestSnapshotRevealsAbortedGame(t *testing.T) {
	room := &Room{
		Code:    "EF56",
		AdminId: "gm-id",
		Mode:    ModeWerewolf,
		State:   StateEnded,
		Players: []*Player{
			{Id: "gm-id", Name: "gm", Connected: true},
			{Id: "p2", Name: "ben", Connected: true, Role: RoleWitch, IsAlive: true},
		},
		Wolf: &WolfState{Night: 2},
	}

	snap := room.Snapshot()
	assert.Empty(t, snap.Winner)
	require.Len(t, snap.Survivors, 1, "an aborted game still reveals the roles")
	assert.Equal(t, string(RoleWitch), snap.Survivors[0].Role)
}

func TestSnapshotReportsDeaths(t *testing.T) {
	room := &Room{
		Code:    "GH78",
		AdminId: "gm-id",
		Mode:    ModeWerewolf,
		State:   StateDay,
		Players: []*Player{
			{Id: "gm-id", Name: "gm", Connected: true},
			{Id: "p2", Name: "ben", Connected: true, Role: RoleWerewolf, IsAlive: true},
			{Id: "p3", Name: "cal", Connected: true, Role: RoleVillager},
		},
		Wolf: &WolfState{
			Night: 1,
			LastDeaths: []DeathRecord{
				{PlayerId: "p3", Name: "cal", Role: RoleVillager, Cause: CauseWolves},
			},
		},
	}

	snap := room.Snapshot()
	require.Len(t, snap.LastDeaths, 1)
	assert.Equal(t, "p3", snap.LastDeaths[0].PlayerId)
	assert.Equal(t, CauseWolves, snap.LastDeaths[0].Cause)
	assert.Equal(t, string(RoleVillager), snap.LastDeaths[0].Role, "a death reveals that player's role")
}
