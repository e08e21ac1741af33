package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvarela/party-services/internal/roomsvc/models"
	"github.com/mvarela/party-services/internal/roomsvc/words"
)

func newWordService() *WordService {
	return NewWordService(words.NewPool())
}

// startedWordRoom returns a room mid round one with the given word list.
func startedWordRoom(t *testing.T, wordList []string, names ...string) (*WordService, *models.Room) {
	t.Helper()
	_, room := newTestRoom(t, names...)
	room.Settings.Rounds = len(wordList)
	room.Settings.Words = wordList

	svc := newWordService()
	require.NoError(t, svc.Start(room, "sock-"+names[0]))
	return svc, room
}

func findImpostor(t *testing.T, room *models.Room) *models.Player {
	t.Helper()
	var impostor *models.Player
	for _, p := range room.Players {
		if p.IsImpostor {
			require.Nil(t, impostor, "more than one impostor assigned")
			impostor = p
		}
	}
	require.NotNil(t, impostor, "no impostor assigned")
	return impostor
}

func TestStartChecks(t *testing.T) {
	_, room := newTestRoom(t, "ana", "ben", "cal")
	svc := newWordService()

	assert.ErrorIs(t, svc.Start(room, "sock-ben"), ErrNotAuthorized)

	room.Settings.Rounds = 2
	room.Settings.Words = []string{"sun"}
	assert.Error(t, svc.Start(room, "sock-ana"), "fewer words than rounds")

	room.Settings.Words = []string{"sun", "tree"}
	require.NoError(t, svc.Start(room, "sock-ana"))
	assert.Equal(t, models.StatePlaying, room.State)
	assert.Equal(t, 1, room.Word.Round)

	assert.ErrorIs(t, svc.Start(room, "sock-ana"), ErrInvalidState, "already running")
}

func TestAssignWordsOneImpostorPerRound(t *testing.T) {
	for i := 0; i < 20; i++ {
		_, room := startedWordRoom(t, []string{"sun"}, "ana", "ben", "cal", "dee")
		impostor := findImpostor(t, room)
		assert.Equal(t, SentinelWord, impostor.Word)
		for _, p := range room.Players {
			if p != impostor {
				assert.Equal(t, "sun", p.Word)
			}
		}
	}
}

func TestStartRandomDrawsWords(t *testing.T) {
	_, room := newTestRoom(t, "ana", "ben", "cal")
	room.Settings.Rounds = 3
	svc := newWordService()

	require.NoError(t, svc.StartRandom(room, "sock-ana"))
	assert.Len(t, room.Settings.Words, 3)
	assert.Equal(t, models.StatePlaying, room.State)
}

func TestVoteResolvesOnlyWhenAllEligibleVoted(t *testing.T) {
	svc, room := startedWordRoom(t, []string{"sun"}, "ana", "ben", "cal")
	ana, ben := player(t, room, "ana"), player(t, room, "ben")

	require.NoError(t, svc.OpenVoting(room, "sock-ana"))
	assert.Equal(t, models.StateVoting, room.State)

	done, err := svc.CastVote(room, "sock-ana", ben.Id)
	require.NoError(t, err)
	assert.False(t, done)

	done, err = svc.CastVote(room, "sock-ben", ana.Id)
	require.NoError(t, err)
	assert.False(t, done, "one eligible voter still missing")

	done, err = svc.CastVote(room, "sock-cal", ben.Id)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, models.StateRoundEnd, room.State)
	require.NotNil(t, room.Word.LastResult)
	assert.Equal(t, ben.Id, room.Word.LastResult.VotedOutId)
}

func TestVoteOverwriteKeepsSingleBallot(t *testing.T) {
	svc, room := startedWordRoom(t, []string{"sun"}, "ana", "ben", "cal")
	ana, ben := player(t, room, "ana"), player(t, room, "ben")

	require.NoError(t, svc.OpenVoting(room, "sock-ana"))
	_, err := svc.CastVote(room, "sock-ana", ben.Id)
	require.NoError(t, err)
	done, err := svc.CastVote(room, "sock-ana", ana.Id)
	require.NoError(t, err)

	assert.False(t, done)
	assert.Len(t, room.Word.Votes, 1)
	assert.Equal(t, []string{ana.Id}, room.Word.VoteOrder)
	assert.Equal(t, ana.Id, room.Word.Votes[ana.Id])
}

func TestVoteTieFallsToFirstReachingMax(t *testing.T) {
	svc, room := startedWordRoom(t, []string{"sun"}, "ana", "ben", "cal")
	ana, ben, cal := player(t, room, "ana"), player(t, room, "ben"), player(t, room, "cal")

	require.NoError(t, svc.OpenVoting(room, "sock-ana"))
	_, err := svc.CastVote(room, "sock-ana", ben.Id)
	require.NoError(t, err)
	_, err = svc.CastVote(room, "sock-ben", ana.Id)
	require.NoError(t, err)
	done, err := svc.CastVote(room, "sock-cal", cal.Id)
	require.NoError(t, err)

	require.True(t, done)
	assert.Equal(t, ben.Id, room.Word.LastResult.VotedOutId, "three-way tie goes to the earliest vote")
}

func TestVoteResolvesAfterDisconnect(t *testing.T) {
	svc, room := startedWordRoom(t, []string{"sun"}, "ana", "ben", "cal")
	ana := player(t, room, "ana")

	require.NoError(t, svc.OpenVoting(room, "sock-ana"))
	_, err := svc.CastVote(room, "sock-ana", ana.Id)
	require.NoError(t, err)
	done, err := svc.CastVote(room, "sock-ben", ana.Id)
	require.NoError(t, err)
	require.False(t, done)

	// the missing voter leaves; the round must not stall
	cal := player(t, room, "cal")
	cal.Connected = false
	assert.True(t, svc.MaybeResolve(room))
	assert.Equal(t, models.StateRoundEnd, room.State)
}

func TestScoringImpostorCaught(t *testing.T) {
	svc, room := startedWordRoom(t, []string{"sun"}, "ana", "ben", "cal")
	impostor := findImpostor(t, room)

	require.NoError(t, svc.OpenVoting(room, "sock-ana"))
	for _, name := range []string{"ana", "ben", "cal"} {
		_, err := svc.CastVote(room, "sock-"+name, impostor.Id)
		require.NoError(t, err)
	}

	require.NotNil(t, room.Word.LastResult)
	assert.True(t, room.Word.LastResult.ImpostorCaught)
	assert.Equal(t, 0, impostor.Score)
	for _, p := range room.Players {
		if p != impostor {
			assert.Equal(t, 1, p.Score)
		}
	}
}

// Two-round game where the impostor survives round one: the outsider
// alone scores, everyone else stays at zero.
func TestTwoRoundGameImpostorEscapes(t *testing.T) {
	svc, room := startedWordRoom(t, []string{"sun", "tree"}, "ana", "ben", "cal")
	impostor := findImpostor(t, room)

	var scapegoat *models.Player
	for _, p := range room.Players {
		if p != impostor {
			scapegoat = p
			break
		}
	}

	require.NoError(t, svc.OpenVoting(room, "sock-ana"))
	for _, name := range []string{"ana", "ben", "cal"} {
		_, err := svc.CastVote(room, "sock-"+name, scapegoat.Id)
		require.NoError(t, err)
	}

	res := room.Word.LastResult
	require.NotNil(t, res)
	assert.False(t, res.ImpostorCaught)
	assert.Equal(t, impostor.Id, res.ImpostorId)
	assert.Equal(t, 1, impostor.Score)
	assert.Equal(t, 0, scapegoat.Score)

	require.NoError(t, svc.NextRound(room, "sock-ana"))
	assert.Equal(t, 2, room.Word.Round)
	assert.Equal(t, models.StatePlaying, room.State)
	assert.Nil(t, room.Word.LastResult)
	assert.Empty(t, room.Word.Votes)
	next := findImpostor(t, room)
	assert.Equal(t, SentinelWord, next.Word)

	room.State = models.StateRoundEnd
	require.NoError(t, svc.NextRound(room, "sock-ana"))
	assert.Equal(t, models.StateGameEnd, room.State, "no rounds left")
}

func TestEndGameCutsShort(t *testing.T) {
	svc, room := startedWordRoom(t, []string{"sun", "tree"}, "ana", "ben", "cal")

	assert.ErrorIs(t, svc.EndGame(room, "sock-ben"), ErrNotAuthorized)
	require.NoError(t, svc.EndGame(room, "sock-ana"))
	assert.Equal(t, models.StateGameEnd, room.State)

	assert.ErrorIs(t, svc.EndGame(room, "sock-ana"), ErrInvalidState, "nothing left to end")
}

func TestRestartKeepsModeAndClearsGameState(t *testing.T) {
	svc, room := startedWordRoom(t, []string{"sun"}, "ana", "ben", "cal")
	player(t, room, "ben").Score = 3

	require.NoError(t, svc.Restart(room, "sock-ana"))
	assert.Equal(t, models.StateLobby, room.State)
	assert.Equal(t, models.ModeImpostor, room.Mode)
	for _, p := range room.Players {
		assert.Equal(t, 0, p.Score)
		assert.Empty(t, p.Word)
		assert.False(t, p.IsImpostor)
	}

	room.Mode = models.ModeWerewolf
	require.NoError(t, svc.Restart(room, "sock-ana"))
	assert.Equal(t, models.ModeWerewolf, room.Mode, "restart keeps the selected mode")
}
