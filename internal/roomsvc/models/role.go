package models

type Role string

const (
	RoleWerewolf   Role = "Werewolf"
	RoleSeer       Role = "Seer"
	RoleWitch      Role = "Witch"
	RoleHunter     Role = "Hunter"
	RoleCupid      Role = "Cupid"
	RoleLittleGirl Role = "Little Girl"
	RoleVillager   Role = "Villager"
)

func (r Role) IsWolf() bool {
	return r == RoleWerewolf
}

func (r Role) Description() string {
	switch r {
	case RoleWerewolf:
		return "Each night, pick a villager to eliminate. Win when the wolves equal the rest."
	case RoleSeer:
		return "Each night you may learn one player's true allegiance."
	case RoleWitch:
		return "You hold two potions: one heals the night's victim, one kills. Each works once."
	case RoleHunter:
		return "If you die, you immediately take one player down with you."
	case RoleCupid:
		return "On the first night, bind two players in love. If one dies, so does the other."
	case RoleLittleGirl:
		return "You may peek during the night, but getting caught is on you."
	case RoleVillager:
		return "Find the wolves and vote them out before they outnumber you."
	default:
		return ""
	}
}

type Faction string

const (
	FactionWolves  Faction = "WEREWOLVES"
	FactionVillage Faction = "VILLAGE"
)
