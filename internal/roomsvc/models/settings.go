package models

import "fmt"

// Settings are the admin-editable room options. Word fields drive the
// impostor mode, role counts drive the werewolf mode.
type Settings struct {
	Rounds int      `json:"rounds"`
	Words  []string `json:"words"`

	Wolves      int `json:"wolves"`
	Seers       int `json:"seers"`
	Witches     int `json:"witches"`
	Hunters     int `json:"hunters"`
	Cupids      int `json:"cupids"`
	LittleGirls int `json:"little_girls"`
}

func DefaultSettings() Settings {
	return Settings{
		Rounds:  3,
		Words:   []string{},
		Wolves:  1,
		Seers:   1,
		Witches: 1,
		Hunters: 1,
	}
}

// ValidateImpostor checks the settings a round start depends on.
func (s Settings) ValidateImpostor() error {
	if s.Rounds < 1 {
		return fmt.Errorf("at least one round is required")
	}
	if len(s.Words) < s.Rounds {
		return fmt.Errorf("need %d words, have %d", s.Rounds, len(s.Words))
	}
	return nil
}

// ValidateWerewolf checks that the role pool fits the role-eligible
// roster: the configured counts plus villager filler must sum exactly
// to the non-narrator player count.
func (s Settings) ValidateWerewolf(eligible int) error {
	if eligible < 3 {
		return fmt.Errorf("need at least 3 players besides the narrator, have %d", eligible)
	}
	if s.Wolves < 1 {
		return fmt.Errorf("at least one werewolf is required")
	}
	for _, c := range []struct {
		name  string
		count int
	}{
		{"wolves", s.Wolves},
		{"seers", s.Seers},
		{"witches", s.Witches},
		{"hunters", s.Hunters},
		{"cupids", s.Cupids},
		{"little girls", s.LittleGirls},
	} {
		if c.count < 0 {
			return fmt.Errorf("%s count cannot be negative", c.name)
		}
	}
	special := s.Wolves + s.Seers + s.Witches + s.Hunters + s.Cupids + s.LittleGirls
	if special > eligible {
		return fmt.Errorf("role pool (%d) exceeds player count (%d)", special, eligible)
	}
	if s.Wolves >= eligible-s.Wolves {
		return fmt.Errorf("wolves would start at parity with the village")
	}
	return nil
}
