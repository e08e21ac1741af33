package service

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mvarela/party-services/internal/roomsvc/models"
	"github.com/mvarela/party-services/internal/roomsvc/words"
)

// SentinelWord is what the hidden impostor sees instead of the round word.
const SentinelWord = "IMPOSTOR"

// WordService runs the impostor game: one hidden impostor and a shared
// secret word per round, a vote, scores. All methods expect the room lock
// to be held by the caller.
type WordService struct {
	pool *words.Pool
	rnd  *rand.Rand
}

func NewWordService(pool *words.Pool) *WordService {
	return &WordService{
		pool: pool,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins round one. Requires authority, the lobby state and at
// least as many words as rounds.
func (s *WordService) Start(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.State != models.StateLobby {
		return ErrInvalidState
	}
	if err := room.Settings.ValidateImpostor(); err != nil {
		return err
	}

	room.Mode = models.ModeImpostor
	room.Wolf = nil
	room.Word = models.NewWordState()
	room.Word.Round = 1
	room.State = models.StatePlaying
	s.assignWords(room)
	log.Infof("room %s: impostor game started, %d rounds", room.Code, room.Settings.Rounds)
	return nil
}

// StartRandom fills the word list with a unique random draw from the
// embedded pool before starting.
func (s *WordService) StartRandom(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.State != models.StateLobby {
		return ErrInvalidState
	}
	drawn, err := s.pool.Draw(room.Settings.Rounds)
	if err != nil {
		return err
	}
	room.Settings.Words = drawn
	return s.Start(room, socketId)
}

// assignWords picks one uniformly-random impostor and hands the round
// word to everyone else.
func (s *WordService) assignWords(room *models.Room) {
	word := room.Settings.Words[room.Word.Round-1]
	impostor := s.rnd.Intn(len(room.Players))
	for i, p := range room.Players {
		p.IsImpostor = i == impostor
		if p.IsImpostor {
			p.Word = SentinelWord
		} else {
			p.Word = word
		}
	}
}

func (s *WordService) OpenVoting(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.State != models.StatePlaying {
		return ErrInvalidState
	}
	room.State = models.StateVoting
	room.Word.Votes = make(map[string]string)
	room.Word.VoteOrder = nil
	return nil
}

// CastVote records or overwrites the voter's choice and resolves the
// round once every eligible voter has one recorded. Returns whether the
// round resolved.
func (s *WordService) CastVote(room *models.Room, socketId, targetId string) (bool, error) {
	if room.State != models.StateVoting {
		return false, ErrInvalidState
	}
	voter := room.FindBySocket(socketId)
	if voter == nil {
		return false, ErrPlayerNotFound
	}
	if room.FindPlayer(targetId) == nil {
		return false, ErrPlayerNotFound
	}

	if _, voted := room.Word.Votes[voter.Id]; !voted {
		room.Word.VoteOrder = append(room.Word.VoteOrder, voter.Id)
	}
	room.Word.Votes[voter.Id] = targetId

	return s.MaybeResolve(room), nil
}

// MaybeResolve tallies the round the moment recorded votes among eligible
// voters equal the eligible count, never earlier or later. Also run
// after a disconnect so a vote never stalls on a voter who left.
func (s *WordService) MaybeResolve(room *models.Room) bool {
	if room.State != models.StateVoting {
		return false
	}

	eligible := make(map[string]bool)
	for _, p := range room.Players {
		if p.Connected {
			eligible[p.Id] = true
		}
	}
	cast := 0
	for voterId := range room.Word.Votes {
		if eligible[voterId] {
			cast++
		}
	}
	if len(eligible) == 0 || cast < len(eligible) {
		return false
	}

	s.resolve(room, eligible)
	return true
}

// resolve picks the voted-out player and updates scores. Ties go to the
// first target to reach the winning count in vote-arrival order; this
// mirrors the behavior clients already rely on.
func (s *WordService) resolve(room *models.Room, eligible map[string]bool) {
	counts := make(map[string]int)
	maxVotes := 0
	votedOut := ""
	for _, voterId := range room.Word.VoteOrder {
		if !eligible[voterId] {
			continue
		}
		target := room.Word.Votes[voterId]
		counts[target]++
		if counts[target] > maxVotes {
			maxVotes = counts[target]
			votedOut = target
		}
	}

	var impostor *models.Player
	for _, p := range room.Players {
		if p.IsImpostor {
			impostor = p
			break
		}
	}
	if impostor == nil {
		// no round in flight; nothing to tally
		return
	}

	caught := votedOut == impostor.Id
	if caught {
		for _, p := range room.Players {
			if !p.IsImpostor {
				p.Score++
			}
		}
	} else {
		impostor.Score++
	}

	room.Word.LastResult = &models.RoundResult{
		ImpostorId:     impostor.Id,
		ImpostorName:   impostor.Name,
		VotedOutId:     votedOut,
		ImpostorCaught: caught,
	}
	room.State = models.StateRoundEnd
	log.Infof("room %s: round %d resolved, impostor caught=%v", room.Code, room.Word.Round, caught)
}

// NextRound advances past a round summary: either into the next round or
// into the final standings.
func (s *WordService) NextRound(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.State != models.StateRoundEnd {
		return ErrInvalidState
	}
	if room.Word.Round >= room.Settings.Rounds {
		room.State = models.StateGameEnd
		return nil
	}
	room.Word.Round++
	room.Word.Votes = make(map[string]string)
	room.Word.VoteOrder = nil
	room.Word.LastResult = nil
	room.State = models.StatePlaying
	s.assignWords(room)
	return nil
}

// EndGame cuts the game short and shows the standings.
func (s *WordService) EndGame(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if !room.GameActive() {
		return ErrInvalidState
	}
	room.State = models.StateGameEnd
	return nil
}

// Restart returns the room to the lobby from any state, wiping rounds,
// votes, scores and role fields.
func (s *WordService) Restart(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	room.State = models.StateLobby
	room.Word = models.NewWordState()
	room.Wolf = nil
	for _, p := range room.Players {
		p.ResetGameFields()
	}
	return nil
}
