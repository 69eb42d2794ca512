package character

import (
	"log"

	"github.com/KirkDiggler/sheet-engine/internal/rulebook"
)

const (
	baseUnarmoredAC   = 10
	defaultSpeed      = 30
	fallbackHitDie    = 8
	mediumArmorDexCap = 2
)

// SlotInfo is the spell-slot availability at one spell level.
type SlotInfo struct {
	Max  int `json:"max"`
	Used int `json:"used"`
	Free int `json:"free"`
}

// Derived is the complete effective character state computed from a draft
// and the static catalogs. It is recomputed from scratch after every
// mutation; nothing in it is authoritative.
type Derived struct {
	Scores           map[rulebook.Ability]int
	Mods             map[rulebook.Ability]int
	ProficiencyBonus int
	AC               int
	MaxHP            int
	HitDie           int
	Speed            int
	InitiativeBonus  int
	SpellSlots       map[int]SlotInfo
	MaxPrepared      int
	CastingAbility   rulebook.Ability
	KnownSpells      []string

	// Bonuses carries the aggregated proficiency sets for queries.
	Bonuses *Bonuses
}

// Derive computes the full derived state. It never fails: unknown references
// resolve to safe defaults and are logged so the sheet stays viewable.
func Derive(draft *Draft, catalog *rulebook.Catalog) *Derived {
	bonuses := AggregateBonuses(draft, catalog)

	derived := &Derived{
		Scores:  make(map[rulebook.Ability]int),
		Mods:    make(map[rulebook.Ability]int),
		Bonuses: bonuses,
	}

	for _, ability := range rulebook.Abilities {
		score := draft.BaseScores[ability] + bonuses.AbilityBonuses[ability]
		if max := bonuses.AbilityMax[ability]; score > max {
			score = max
		}
		derived.Scores[ability] = score
		derived.Mods[ability] = rulebook.Modifier(score)
	}

	derived.ProficiencyBonus = ProficiencyBonus(draft.Level)
	derived.InitiativeBonus = derived.Mods[rulebook.AbilityDexterity] + bonuses.InitiativeBonus

	derived.Speed = defaultSpeed
	if race, ok := catalog.FindRace(draft.Race); ok && race.Speed > 0 {
		derived.Speed = race.Speed
	}
	derived.Speed += bonuses.SpeedBonus

	class, haveClass := catalog.FindClass(draft.Class)
	derived.HitDie = fallbackHitDie
	if haveClass {
		derived.HitDie = class.HitDie
	} else if draft.Class != "" {
		log.Printf("unknown class %q on character %s, using d%d hit die", draft.Class, draft.ID, fallbackHitDie)
	}

	derived.MaxHP = maxHitPoints(draft, derived.HitDie, derived.Mods[rulebook.AbilityConstitution])
	derived.AC = armorClass(draft, catalog, derived.Mods[rulebook.AbilityDexterity])

	if haveClass && class.Spellcasting != nil {
		derived.CastingAbility = class.Spellcasting.Ability
		derived.SpellSlots = spellSlots(draft, class)
		derived.MaxPrepared = maxPrepared(draft, class, derived.Mods)
	}

	derived.KnownSpells = knownSpells(draft, bonuses)

	return derived
}

// ProficiencyBonus returns the proficiency bonus for a character level:
// +2 at 1-4 up to +6 at 17-20.
func ProficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}
	return 2 + ((level - 1) / 4)
}

// maxHitPoints computes max HP: first level grants the full hit die, later
// levels grant the fixed average or the stored roll depending on HP mode.
func maxHitPoints(draft *Draft, hitDie, conMod int) int {
	total := hitDie + conMod

	for level := 2; level <= draft.Level; level++ {
		switch draft.HPMode {
		case HPModeRolled:
			roll := 1 // unset rolls default to 1
			if i := level - 2; i < len(draft.HPRolls) && draft.HPRolls[i] > 0 {
				roll = draft.HPRolls[i]
			}
			total += roll + conMod
		default:
			total += hitDie/2 + 1 + conMod
		}
	}

	if total < 0 {
		total = 0
	}
	return total
}

// armorClass applies the armor, shield, and accessory rules from the
// equipped projection.
func armorClass(draft *Draft, catalog *rulebook.Catalog, dexMod int) int {
	ac := baseUnarmoredAC + dexMod

	if draft.Equipped.Armor != nil {
		name := draft.Equipped.Armor.Name
		if magic := draft.FindMagicItem(name); magic != nil && magic.Armor != nil {
			ac = magicArmorAC(magic.Armor, dexMod)
		} else if armor, ok := catalog.FindArmor(name); ok {
			ac = catalogArmorAC(armor, dexMod)
		} else {
			log.Printf("equipped armor %q not found, keeping unarmored AC", name)
		}
	}

	// Shields count only in the active weapon set.
	if shield := draft.Equipped.shield(draft.Equipped.Active()); shield != nil {
		ac += shieldBonus(draft, catalog, shield.Name)
	}

	// A magic accessory raises the final AC to its value; it never stacks.
	for _, item := range draft.Equipped.Other {
		magic := draft.FindMagicItem(item.Name)
		if magic != nil && magic.Item != nil && magic.Item.ArmorClass > ac {
			ac = magic.Item.ArmorClass
		}
	}

	return ac
}

func catalogArmorAC(armor *rulebook.Armor, dexMod int) int {
	if !armor.DexBonus {
		return armor.BaseAC
	}

	contribution := dexMod
	dexCap := armor.MaxDexBonus
	if dexCap == 0 && armor.Category == rulebook.ArmorCategoryMedium {
		dexCap = mediumArmorDexCap
	}
	if dexCap > 0 && contribution > dexCap {
		contribution = dexCap
	}
	return armor.BaseAC + contribution
}

func magicArmorAC(armor *MagicArmor, dexMod int) int {
	contribution := 0
	switch armor.DexPolicy {
	case DexPolicyFull:
		contribution = dexMod
	case DexPolicyLimited:
		contribution = dexMod
		if armor.DexCap > 0 && contribution > armor.DexCap {
			contribution = armor.DexCap
		}
	case DexPolicyNone:
		contribution = 0
	default:
		contribution = dexMod
	}
	return armor.BaseAC + armor.ACBonus + contribution
}

func shieldBonus(draft *Draft, catalog *rulebook.Catalog, name string) int {
	if magic := draft.FindMagicItem(name); magic != nil && magic.Armor != nil {
		bonus := magic.Armor.BaseAC
		if bonus == 0 {
			bonus = 2
		}
		return bonus + magic.Armor.ACBonus
	}
	if armor, ok := catalog.FindArmor(name); ok {
		return armor.BaseAC
	}
	log.Printf("equipped shield %q not found, using +2", name)
	return 2
}

// spellSlots reads the class progression row for the character level.
// Cantrips never consume slots and have no row.
func spellSlots(draft *Draft, class *rulebook.Class) map[int]SlotInfo {
	slots := make(map[int]SlotInfo)
	row := class.SlotsAt(draft.Level)
	for i, max := range row {
		level := i + 1
		used := draft.UsedSpellSlots[level]
		free := max - used
		if free < 0 {
			free = 0
		}
		slots[level] = SlotInfo{Max: max, Used: used, Free: free}
	}
	return slots
}

// maxPrepared evaluates the class's prepared-spells formula, falling back to
// level + casting modifier when the formula is missing or malformed. Never
// below 1.
func maxPrepared(draft *Draft, class *rulebook.Class, mods map[rulebook.Ability]int) int {
	vars := map[string]int{"level": draft.Level}
	for _, ability := range rulebook.Abilities {
		vars[string(ability)] = mods[ability]
	}

	count := 0
	if formula := class.Spellcasting.PreparedFormula; formula != "" {
		var err error
		count, err = EvalFormula(formula, vars)
		if err != nil {
			log.Printf("prepared-spells formula %q failed (%v), using fallback", formula, err)
			count = 0
		}
	}
	if count == 0 {
		count = draft.Level + mods[class.Spellcasting.Ability]
	}

	if count < 1 {
		count = 1
	}
	return count
}

func knownSpells(draft *Draft, bonuses *Bonuses) []string {
	seen := make(map[string]bool)
	var spells []string
	add := func(key string) {
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		spells = append(spells, key)
	}

	for _, key := range bonuses.Spells {
		add(key)
	}
	for _, keys := range draft.Chosen.LearnedSpells {
		for _, key := range keys {
			add(key)
		}
	}
	return spells
}

// SavingThrowBonus is the ability modifier plus proficiency when proficient.
func (d *Derived) SavingThrowBonus(ability rulebook.Ability) int {
	bonus := d.Mods[ability]
	if d.Bonuses.SavingThrows[ability] {
		bonus += d.ProficiencyBonus
	}
	return bonus
}

// SkillBonus is the governing ability modifier plus proficiency when the
// skill is proficient.
func (d *Derived) SkillBonus(skill string, ability rulebook.Ability) int {
	bonus := d.Mods[ability]
	if d.Bonuses.Skills[skill] {
		bonus += d.ProficiencyBonus
	}
	return bonus
}

// SpellSaveDC is 8 + proficiency bonus + casting-ability modifier.
func (d *Derived) SpellSaveDC() int {
	return 8 + d.ProficiencyBonus + d.Mods[d.CastingAbility]
}
