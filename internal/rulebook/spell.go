package rulebook

type Spell struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Level       int     `json:"level"` // 0 is a cantrip
	School      string  `json:"school"`
	Range       string  `json:"range"` // "self" or a distance such as "120 feet"
	DamageDice  string  `json:"damage_dice"`
	HealDice    string  `json:"heal_dice"`
	SaveAbility Ability `json:"save_ability"` // empty for attack-roll spells
}

func (s *Spell) IsCantrip() bool {
	return s.Level == 0
}

// IsSelfTargeted reports whether the spell only targets the caster.
// Self-targeted spells show no attack bonus.
func (s *Spell) IsSelfTargeted() bool {
	return s.Range == "self"
}
