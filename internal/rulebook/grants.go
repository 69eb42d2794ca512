package rulebook

// ChoiceKind partitions player-selected options by what they grant.
type ChoiceKind string

const (
	ChoiceKindAbilities ChoiceKind = "abilities"
	ChoiceKindSkills    ChoiceKind = "skills"
	ChoiceKindTools     ChoiceKind = "tools"
	ChoiceKindLanguages ChoiceKind = "languages"
	ChoiceKindSpells    ChoiceKind = "spells"
	ChoiceKindFeats     ChoiceKind = "feats"
)

// ChoiceSpec describes a choice slot a source offers the player. The player's
// selections are stored on the draft under the slot's source key.
type ChoiceSpec struct {
	// Key is the opaque source key the draft's chosen maps are keyed by,
	// e.g. "background:feat:skilled".
	Key     string     `json:"key"`
	Kind    ChoiceKind `json:"kind"`
	Count   int        `json:"count"`
	Options []string   `json:"options"` // empty means any legal option

	// MaxSameChoice caps how many times the same option may repeat in an
	// ability-score choice: 2 allows the +2/+1 shape, 1 forces +1/+1/+1.
	MaxSameChoice int `json:"max_same_choice"`
}

// Grants are the unconditional benefits a source confers.
type Grants struct {
	AbilityBonuses      map[Ability]int `json:"ability_bonuses"`
	AbilityMax          map[Ability]int `json:"ability_max"` // raised per-ability score caps
	Skills              []string        `json:"skills"`
	Tools               []string        `json:"tools"`
	Languages           []string        `json:"languages"`
	SavingThrows        []Ability       `json:"saving_throws"`
	WeaponProficiencies []string        `json:"weapon_proficiencies"` // categories or specific keys
	ArmorProficiencies  []string        `json:"armor_proficiencies"`
	Spells              []string        `json:"spells"`
	SpeedBonus          int             `json:"speed_bonus"`
	InitiativeBonus     int             `json:"initiative_bonus"`
}

type Subrace struct {
	Key     string       `json:"key"`
	Name    string       `json:"name"`
	Grants  Grants       `json:"grants"`
	Choices []ChoiceSpec `json:"choices"`
}

type Race struct {
	Key      string       `json:"key"`
	Name     string       `json:"name"`
	Speed    int          `json:"speed"`
	Grants   Grants       `json:"grants"`
	Choices  []ChoiceSpec `json:"choices"`
	Subraces []Subrace    `json:"subraces"`
}

// FindSubrace looks up a subrace by key.
func (r *Race) FindSubrace(key string) (*Subrace, bool) {
	for i := range r.Subraces {
		if r.Subraces[i].Key == key {
			return &r.Subraces[i], true
		}
	}
	return nil, false
}

type Background struct {
	Key     string       `json:"key"`
	Name    string       `json:"name"`
	Grants  Grants       `json:"grants"`
	Choices []ChoiceSpec `json:"choices"`
}

type Feat struct {
	Key     string       `json:"key"`
	Name    string       `json:"name"`
	Grants  Grants       `json:"grants"`
	Choices []ChoiceSpec `json:"choices"`
}
