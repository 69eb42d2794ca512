package character

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
	"github.com/KirkDiggler/sheet-engine/internal/rulebook"
)

// AttackProfile is the computed combat line for one equipped weapon or one
// known spell, before any dice are rolled.
type AttackProfile struct {
	Name        string
	Ability     rulebook.Ability
	AttackBonus int
	// ShowAttack is false for self-targeted spells, which have no attack
	// roll to present.
	ShowAttack  bool
	DamageDice  string
	DamageBonus int
	DamageType  string
	HealDice    string
	SaveDC      int
	SaveAbility rulebook.Ability

	Ranged   bool
	Thrown   bool
	UsesAmmo bool
	AmmoKind string
}

// WeaponProfile computes the attack line for an equipped weapon. Homebrew
// magic weapons supply their own stats; everything else resolves through the
// catalog.
func WeaponProfile(draft *Draft, derived *Derived, catalog *rulebook.Catalog, item *EquippedItem) (*AttackProfile, error) {
	if magic := draft.FindMagicItem(item.Name); magic != nil && magic.Weapon != nil {
		return magicWeaponProfile(derived, item.Name, magic.Weapon), nil
	}

	weapon, ok := catalog.FindWeapon(item.Name)
	if !ok {
		return nil, dnderr.NotFoundf("weapon %q not found", item.Name)
	}

	ability := rulebook.AbilityStrength
	if weapon.IsRanged() {
		ability = rulebook.AbilityDexterity
	}
	mod := derived.Mods[ability]

	bonus := mod
	if derived.Bonuses.HasWeaponMastery(weapon.Key, weapon.Category.ProficiencyKey()) {
		bonus += derived.ProficiencyBonus
	}

	dice := weapon.Damage
	if item.Versatile && item.VersatileMode {
		dice = stepUpDamageDie(dice)
	}

	return &AttackProfile{
		Name:        weapon.Name,
		Ability:     ability,
		AttackBonus: bonus,
		ShowAttack:  true,
		DamageDice:  dice,
		DamageBonus: mod,
		DamageType:  weapon.DamageType,
		Ranged:      weapon.IsRanged(),
		Thrown:      weapon.IsThrown(),
		UsesAmmo:    weapon.UsesAmmunition(),
		AmmoKind:    weapon.AmmoKind,
	}, nil
}

func magicWeaponProfile(derived *Derived, name string, weapon *MagicWeapon) *AttackProfile {
	ability := rulebook.AbilityStrength
	if weapon.Range == rulebook.WeaponRangeRanged {
		ability = rulebook.AbilityDexterity
	}
	mod := derived.Mods[ability]

	bonus := mod + weapon.AttackBonus
	if derived.Bonuses.HasWeaponMastery(CleanName(name), weapon.Category) {
		bonus += derived.ProficiencyBonus
	}

	return &AttackProfile{
		Name:        name,
		Ability:     ability,
		AttackBonus: bonus,
		ShowAttack:  true,
		DamageDice:  strings.Join(weapon.DamageSources, "+"),
		DamageBonus: mod + weapon.DamageBonus,
		Ranged:      weapon.Range == rulebook.WeaponRangeRanged,
		Thrown:      weapon.Thrown,
	}
}

// SpellProfile computes the attack line for a known spell. Self-targeted
// spells carry no attack bonus.
func SpellProfile(derived *Derived, spell *rulebook.Spell) *AttackProfile {
	mod := derived.Mods[derived.CastingAbility]
	profile := &AttackProfile{
		Name:        spell.Name,
		Ability:     derived.CastingAbility,
		AttackBonus: mod + derived.ProficiencyBonus,
		ShowAttack:  !spell.IsSelfTargeted(),
		DamageDice:  spell.DamageDice,
		HealDice:    spell.HealDice,
		DamageBonus: mod,
	}
	if spell.SaveAbility != "" {
		profile.SaveDC = derived.SpellSaveDC()
		profile.SaveAbility = spell.SaveAbility
	}
	return profile
}

// damage die progression for versatile two-handed use
var dieStepUp = map[int]int{4: 6, 6: 8, 8: 10, 10: 12, 12: 12}

// stepUpDamageDie bumps each die term one size, capping at d12. Flat terms
// pass through unchanged.
func stepUpDamageDie(expr string) string {
	terms := strings.Split(expr, "+")
	for i, term := range terms {
		count, sides, ok := splitDiceTerm(term)
		if !ok {
			continue
		}
		if next, found := dieStepUp[sides]; found {
			terms[i] = fmt.Sprintf("%dd%d", count, next)
		}
	}
	return strings.Join(terms, "+")
}

// DoubleDiceCounts doubles the die count of every dice term in a damage
// expression, leaving flat modifiers alone. Used for critical hits.
func DoubleDiceCounts(expr string) string {
	terms := strings.Split(expr, "+")
	for i, term := range terms {
		count, sides, ok := splitDiceTerm(term)
		if !ok {
			continue
		}
		terms[i] = fmt.Sprintf("%dd%d", count*2, sides)
	}
	return strings.Join(terms, "+")
}

// DamageTerm is one additive piece of a damage expression: either dice
// (Count > 0) or a flat amount.
type DamageTerm struct {
	Count int
	Sides int
	Flat  int
}

// SplitDamageTerms breaks a damage expression like "2d6+1d4+2" into its
// additive terms. Unparseable terms are dropped.
func SplitDamageTerms(expr string) []DamageTerm {
	var out []DamageTerm
	for _, raw := range strings.Split(expr, "+") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if count, sides, ok := splitDiceTerm(raw); ok {
			out = append(out, DamageTerm{Count: count, Sides: sides})
			continue
		}
		if flat, err := strconv.Atoi(raw); err == nil {
			out = append(out, DamageTerm{Flat: flat})
		}
	}
	return out
}

func splitDiceTerm(term string) (count, sides int, ok bool) {
	term = strings.TrimSpace(term)
	d := strings.IndexByte(term, 'd')
	if d < 0 {
		return 0, 0, false
	}
	count = 1
	if d > 0 {
		n, err := strconv.Atoi(term[:d])
		if err != nil {
			return 0, 0, false
		}
		count = n
	}
	sides, err := strconv.Atoi(term[d+1:])
	if err != nil || sides < 1 {
		return 0, 0, false
	}
	return count, sides, true
}

// CritTracker remembers which attacks landed a natural 20 so the next damage
// computation for that attack doubles its dice. State is per session, not
// persisted.
type CritTracker struct {
	mu      sync.Mutex
	pending map[string]bool
}

func NewCritTracker() *CritTracker {
	return &CritTracker{pending: make(map[string]bool)}
}

// WeaponCritKey identifies a weapon attack by character, weapon, and set.
func WeaponCritKey(characterID, weaponName string, set int) string {
	return fmt.Sprintf("%s|%s|%d", characterID, CleanName(weaponName), set)
}

// SpellCritKey identifies a spell attack by character and spell.
func SpellCritKey(characterID, spellKey string) string {
	return fmt.Sprintf("%s|%s|spell", characterID, CleanName(spellKey))
}

func (t *CritTracker) Set(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[key] = true
}

func (t *CritTracker) Pending(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending[key]
}

// Consume clears the flag and reports whether it was set.
func (t *CritTracker) Consume(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := t.pending[key]
	delete(t.pending, key)
	return was
}

// HasAmmunition reports whether the backpack holds at least one unit of
// ammunition of the given kind.
func HasAmmunition(draft *Draft, catalog *rulebook.Catalog, kind string) bool {
	return findAmmunitionStack(draft, catalog, kind) != nil
}

// ConsumeAmmunition removes one unit of the first matching ammunition stack.
func ConsumeAmmunition(draft *Draft, catalog *rulebook.Catalog, kind string) bool {
	stack := findAmmunitionStack(draft, catalog, kind)
	if stack == nil {
		return false
	}
	return draft.ConsumeOne(stack.Name)
}

func findAmmunitionStack(draft *Draft, catalog *rulebook.Catalog, kind string) *InventoryEntry {
	for i := range draft.Backpack {
		entry := &draft.Backpack[i]
		if entry.Quantity < 1 || entry.Magic != nil {
			continue
		}
		ammo, ok := catalog.FindAmmunition(entry.Name)
		if ok && ammo.Kind == kind {
			return entry
		}
	}
	return nil
}

// HasThrownWeapon reports whether the backpack still holds a unit of the
// weapon to throw.
func HasThrownWeapon(draft *Draft, name string) bool {
	stack := draft.FindStack(name)
	return stack != nil && stack.Quantity > 0
}
