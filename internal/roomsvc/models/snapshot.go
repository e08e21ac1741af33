package models

import (
	"github.com/mvarela/party-services/internal/comm"
)

// Snapshot builds the sanitized public view of the room. Secret state
// (words, roles, lover links, the admin PIN) never appears here; it is
// delivered through private per-socket messages instead. Callers must
// hold the room lock.
func (r *Room) Snapshot() comm.RoomSnapshot {
	snap := comm.RoomSnapshot{
		Code:    r.Code,
		Mode:    string(r.Mode),
		State:   string(r.State),
		AdminId: r.AdminId,
		Settings: comm.SettingsView{
			Rounds:      r.Settings.Rounds,
			WordCount:   len(r.Settings.Words),
			Wolves:      r.Settings.Wolves,
			Seers:       r.Settings.Seers,
			Witches:     r.Settings.Witches,
			Hunters:     r.Settings.Hunters,
			Cupids:      r.Settings.Cupids,
			LittleGirls: r.Settings.LittleGirls,
		},
		Players: make([]comm.PlayerView, 0, len(r.Players)),
	}

	for _, p := range r.Players {
		snap.Players = append(snap.Players, comm.PlayerView{
			Id:        p.Id,
			Name:      p.Name,
			Score:     p.Score,
			Connected: p.Connected,
			IsAlive:   p.IsAlive,
			IsMayor:   p.IsMayor,
		})
	}

	switch r.Mode {
	case ModeImpostor:
		if r.Word != nil {
			snap.Round = r.Word.Round
			snap.Votes = copyVotes(r.Word.Votes)
			if res := r.Word.LastResult; res != nil {
				snap.LastResult = &comm.RoundResultView{
					ImpostorId:     res.ImpostorId,
					ImpostorName:   res.ImpostorName,
					VotedOutId:     res.VotedOutId,
					ImpostorCaught: res.ImpostorCaught,
				}
			}
		}
	case ModeWerewolf:
		if r.Wolf != nil {
			snap.Night = r.Wolf.Night
			snap.Votes = copyVotes(r.Wolf.Votes)
			for _, d := range r.Wolf.LastDeaths {
				snap.LastDeaths = append(snap.LastDeaths, comm.DeathView{
					PlayerId: d.PlayerId,
					Name:     d.Name,
					Role:     string(d.Role),
					IsWolf:   d.IsWolf,
					Cause:    d.Cause,
				})
			}
			if r.State == StateEnded {
				snap.Winner = string(r.Wolf.Winner)
				snap.Survivors = r.RevealAll()
			}
		}
	}

	return snap
}

// RevealAll lists every role-holding player with their role uncovered.
// Only valid once the game has ended or for the narrator's private list.
func (r *Room) RevealAll() []comm.RevealView {
	out := make([]comm.RevealView, 0, len(r.Players))
	for _, p := range r.NonAdminPlayers() {
		out = append(out, comm.RevealView{
			PlayerId: p.Id,
			Name:     p.Name,
			Role:     string(p.Role),
			IsAlive:  p.IsAlive,
		})
	}
	return out
}

func copyVotes(votes map[string]string) map[string]string {
	if len(votes) == 0 {
		return nil
	}
	out := make(map[string]string, len(votes))
	for k, v := range votes {
		out[k] = v
	}
	return out
}
