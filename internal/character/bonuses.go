package character

import (
	"log"

	"github.com/KirkDiggler/sheet-engine/internal/rulebook"
)

// defaultAbilityMax is the score cap unless a source raises it.
const defaultAbilityMax = 20

// defaultMaxSameChoice allows the +2/+1 shape of a flexible ability-score
// increase when the choice spec does not say otherwise.
const defaultMaxSameChoice = 2

// Bonuses is the aggregate of everything the character's sources grant:
// ability bonuses and caps, proficiency sets, languages, and flat speed and
// initiative bonuses.
type Bonuses struct {
	AbilityBonuses      map[rulebook.Ability]int
	AbilityMax          map[rulebook.Ability]int
	Skills              map[string]bool
	Tools               map[string]bool
	Languages           map[string]bool
	SavingThrows        map[rulebook.Ability]bool
	WeaponProficiencies map[string]bool
	ArmorProficiencies  map[string]bool
	Spells              []string
	SpeedBonus          int
	InitiativeBonus     int
}

func newBonuses() *Bonuses {
	b := &Bonuses{
		AbilityBonuses:      make(map[rulebook.Ability]int),
		AbilityMax:          make(map[rulebook.Ability]int),
		Skills:              make(map[string]bool),
		Tools:               make(map[string]bool),
		Languages:           make(map[string]bool),
		SavingThrows:        make(map[rulebook.Ability]bool),
		WeaponProficiencies: make(map[string]bool),
		ArmorProficiencies:  make(map[string]bool),
	}
	for _, ability := range rulebook.Abilities {
		b.AbilityMax[ability] = defaultAbilityMax
	}
	return b
}

// HasWeaponMastery reports proficiency with a specific weapon key or its
// category proficiency key.
func (b *Bonuses) HasWeaponMastery(weaponKey, categoryKey string) bool {
	if b.WeaponProficiencies[weaponKey] {
		return true
	}
	return categoryKey != "" && b.WeaponProficiencies[categoryKey]
}

// aggregator walks the bonus sources in their fixed order, tracking which
// non-additive grants were already seen so the first occurrence wins.
type aggregator struct {
	draft   *Draft
	catalog *rulebook.Catalog
	bonuses *Bonuses
	seen    map[string]bool
	feats   []string // feat keys collected during the walk, applied last
}

// AggregateBonuses walks all bonus-granting sources in the fixed order
// race → subrace → background → class features up to the current level →
// subclass features up to the current level → chosen feats. The order is
// load-bearing: it decides which duplicate grant wins.
func AggregateBonuses(draft *Draft, catalog *rulebook.Catalog) *Bonuses {
	a := &aggregator{
		draft:   draft,
		catalog: catalog,
		bonuses: newBonuses(),
		seen:    make(map[string]bool),
	}

	if race, ok := catalog.FindRace(draft.Race); ok {
		a.applySource(race.Grants, race.Choices)
		if draft.Subrace != "" {
			if subrace, ok := race.FindSubrace(draft.Subrace); ok {
				a.applySource(subrace.Grants, subrace.Choices)
			} else {
				log.Printf("unknown subrace %q on character %s, skipping", draft.Subrace, draft.ID)
			}
		}
	} else if draft.Race != "" {
		log.Printf("unknown race %q on character %s, skipping", draft.Race, draft.ID)
	}

	if draft.Background != "" {
		if background, ok := catalog.FindBackground(draft.Background); ok {
			a.applySource(background.Grants, background.Choices)
		} else {
			log.Printf("unknown background %q on character %s, skipping", draft.Background, draft.ID)
		}
	}

	if class, ok := catalog.FindClass(draft.Class); ok {
		a.applySource(class.Grants, class.Choices)
		for _, lg := range class.Levels {
			if lg.Level <= draft.Level {
				a.applySource(lg.Grants, lg.Choices)
			}
		}
		if draft.Subclass != "" {
			if subclass, ok := class.FindSubclass(draft.Subclass); ok {
				for _, lg := range subclass.Levels {
					if lg.Level <= draft.Level {
						a.applySource(lg.Grants, lg.Choices)
					}
				}
			} else {
				log.Printf("unknown subclass %q on character %s, skipping", draft.Subclass, draft.ID)
			}
		}
	} else if draft.Class != "" {
		log.Printf("unknown class %q on character %s, skipping", draft.Class, draft.ID)
	}

	a.applyFeats()

	return a.bonuses
}

// applySource applies a source's fixed grants, records its feat selections,
// and resolves its choice slots against the draft's chosen maps.
func (a *aggregator) applySource(grants rulebook.Grants, choices []rulebook.ChoiceSpec) {
	a.applyGrants(grants)

	for _, spec := range choices {
		switch spec.Kind {
		case rulebook.ChoiceKindAbilities:
			a.applyAbilityChoice(spec)
		case rulebook.ChoiceKindSkills:
			a.applyPickChoice(spec, a.draft.Chosen.Skills, "skill", a.bonuses.Skills)
		case rulebook.ChoiceKindTools:
			a.applyPickChoice(spec, a.draft.Chosen.Tools, "tool", a.bonuses.Tools)
		case rulebook.ChoiceKindLanguages:
			a.applyPickChoice(spec, a.draft.Chosen.Languages, "language", a.bonuses.Languages)
		case rulebook.ChoiceKindSpells:
			a.applySpellChoice(spec)
		case rulebook.ChoiceKindFeats:
			a.feats = append(a.feats, a.draft.Chosen.Feats[spec.Key]...)
		}
	}
}

func (a *aggregator) applyGrants(grants rulebook.Grants) {
	b := a.bonuses

	// Ability-score increases stack by design.
	for ability, bonus := range grants.AbilityBonuses {
		b.AbilityBonuses[ability] += bonus
	}
	for ability, scoreCap := range grants.AbilityMax {
		if scoreCap > b.AbilityMax[ability] {
			b.AbilityMax[ability] = scoreCap
		}
	}

	for _, skill := range grants.Skills {
		a.grantOnce("skill", skill, b.Skills)
	}
	for _, tool := range grants.Tools {
		a.grantOnce("tool", tool, b.Tools)
	}
	for _, language := range grants.Languages {
		a.grantOnce("language", language, b.Languages)
	}
	for _, save := range grants.SavingThrows {
		if !a.seen["save:"+string(save)] {
			a.seen["save:"+string(save)] = true
			b.SavingThrows[save] = true
		}
	}
	for _, prof := range grants.WeaponProficiencies {
		a.grantOnce("weapon", prof, b.WeaponProficiencies)
	}
	for _, prof := range grants.ArmorProficiencies {
		a.grantOnce("armor", prof, b.ArmorProficiencies)
	}
	for _, spell := range grants.Spells {
		a.grantSpell(spell)
	}

	b.SpeedBonus += grants.SpeedBonus
	b.InitiativeBonus += grants.InitiativeBonus
}

// grantOnce applies a non-additive grant only on its first occurrence across
// all sources.
func (a *aggregator) grantOnce(kind, key string, into map[string]bool) {
	dedupKey := kind + ":" + key
	if a.seen[dedupKey] {
		return
	}
	a.seen[dedupKey] = true
	into[key] = true
}

func (a *aggregator) grantSpell(key string) {
	if a.seen["spell:"+key] {
		return
	}
	a.seen["spell:"+key] = true
	a.bonuses.Spells = append(a.bonuses.Spells, key)
}

// applyAbilityChoice resolves a flexible ability-score increase: each chosen
// entry is +1 to that ability, the same ability may repeat up to
// MaxSameChoice times (2 gives the +2/+1 shape), and at most Count entries
// apply.
func (a *aggregator) applyAbilityChoice(spec rulebook.ChoiceSpec) {
	chosen := a.draft.Chosen.Abilities[spec.Key]
	if len(chosen) == 0 {
		return
	}

	maxSame := spec.MaxSameChoice
	if maxSame <= 0 {
		maxSame = defaultMaxSameChoice
	}

	applied := 0
	perOption := make(map[string]int)
	for _, option := range chosen {
		if applied >= spec.Count && spec.Count > 0 {
			break
		}
		if !rulebook.IsValidAbility(option) {
			log.Printf("invalid ability %q chosen for %s, skipping", option, spec.Key)
			continue
		}
		if len(spec.Options) > 0 && !contains(spec.Options, option) {
			log.Printf("ability %q is not offered by %s, skipping", option, spec.Key)
			continue
		}
		if perOption[option] >= maxSame {
			continue
		}
		perOption[option]++
		applied++
		a.bonuses.AbilityBonuses[rulebook.Ability(option)]++
	}
}

// applyPickChoice resolves a simple pick-N choice (skills, tools, languages).
func (a *aggregator) applyPickChoice(spec rulebook.ChoiceSpec, chosen map[string][]string, kind string, into map[string]bool) {
	applied := 0
	for _, option := range chosen[spec.Key] {
		if spec.Count > 0 && applied >= spec.Count {
			break
		}
		if len(spec.Options) > 0 && !contains(spec.Options, option) {
			log.Printf("%s %q is not offered by %s, skipping", kind, option, spec.Key)
			continue
		}
		a.grantOnce(kind, option, into)
		applied++
	}
}

func (a *aggregator) applySpellChoice(spec rulebook.ChoiceSpec) {
	applied := 0
	for _, option := range a.draft.Chosen.Spells[spec.Key] {
		if spec.Count > 0 && applied >= spec.Count {
			break
		}
		if _, ok := a.catalog.FindSpell(option); !ok {
			log.Printf("unknown spell %q chosen for %s, skipping", option, spec.Key)
			continue
		}
		a.grantSpell(option)
		applied++
	}
}

// applyFeats applies chosen feats last, after all other sources.
func (a *aggregator) applyFeats() {
	for _, featKey := range a.feats {
		feat, ok := a.catalog.FindFeat(featKey)
		if !ok {
			log.Printf("unknown feat %q, skipping", featKey)
			continue
		}
		if a.seen["feat:"+feat.Key] {
			continue
		}
		a.seen["feat:"+feat.Key] = true
		a.applySource(feat.Grants, feat.Choices)
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
