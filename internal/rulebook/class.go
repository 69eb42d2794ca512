package rulebook

// LevelGrant attaches grants and choices to a class or subclass level.
type LevelGrant struct {
	Level   int          `json:"level"`
	Grants  Grants       `json:"grants"`
	Choices []ChoiceSpec `json:"choices"`
}

type Subclass struct {
	Key    string       `json:"key"`
	Name   string       `json:"name"`
	Levels []LevelGrant `json:"levels"`
}

// Spellcasting describes a class's casting progression.
type Spellcasting struct {
	Ability Ability `json:"ability"`

	// PreparedFormula is a whitelisted expression over "level" and ability
	// modifier names, e.g. "max(1, level + wis)".
	PreparedFormula string `json:"prepared_formula"`

	// Progression maps character level to spell slots by spell level;
	// index 0 holds first-level slots. Missing levels mean no slots.
	Progression map[int][]int `json:"progression"`
}

type Class struct {
	Key          string        `json:"key"`
	Name         string        `json:"name"`
	HitDie       int           `json:"hit_die"`
	Grants       Grants        `json:"grants"` // level-1 grants: saves, armor and weapon proficiencies
	Choices      []ChoiceSpec  `json:"choices"`
	Levels       []LevelGrant  `json:"levels"`
	Spellcasting *Spellcasting `json:"spellcasting"`
	Subclasses   []Subclass    `json:"subclasses"`
}

// FindSubclass looks up a subclass by key.
func (c *Class) FindSubclass(key string) (*Subclass, bool) {
	for i := range c.Subclasses {
		if c.Subclasses[i].Key == key {
			return &c.Subclasses[i], true
		}
	}
	return nil, false
}

// SlotsAt returns the spell-slot row for a character level, or nil for
// non-casters and levels without slots.
func (c *Class) SlotsAt(level int) []int {
	if c.Spellcasting == nil {
		return nil
	}
	return c.Spellcasting.Progression[level]
}
