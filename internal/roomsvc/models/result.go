package models

// RoundResult records one resolved impostor-mode vote. It replaces the
// previous round's result and is cleared when the next round starts.
type RoundResult struct {
	ImpostorId     string
	ImpostorName   string
	VotedOutId     string
	ImpostorCaught bool
}

// Death causes, as reported in death records and notices.
const (
	CauseWolves     = "wolves"
	CausePotion     = "potion"
	CauseVote       = "vote"
	CauseHunter     = "hunter"
	CauseHeartbreak = "heartbreak"
)

// DeathRecord is one entry of the ordered death list produced by a single
// cascade resolution pass.
type DeathRecord struct {
	PlayerId string
	Name     string
	Role     Role
	IsWolf   bool
	Cause    string
}
