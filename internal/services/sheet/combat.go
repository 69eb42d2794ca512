package sheet

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/sheet-engine/internal/character"
	"github.com/KirkDiggler/sheet-engine/internal/dice"
	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
)

func (s *service) RollAttack(ctx context.Context, input *RollAttackInput) (*RollOutput, error) {
	if input == nil || input.WeaponName == "" {
		return nil, dnderr.InvalidArgument("weapon name is required")
	}

	draft, err := s.repository.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	set := input.Set
	if set == 0 {
		set = draft.Equipped.Active()
	}
	item := draft.Equipped.FindWeapon(input.WeaponName, set)
	if item == nil {
		return nil, dnderr.NotFoundf("weapon %q is not equipped", input.WeaponName)
	}

	derived := character.Derive(draft, s.catalog)
	profile, err := character.WeaponProfile(draft, derived, s.catalog, item)
	if err != nil {
		return nil, err
	}

	if profile.UsesAmmo && !character.HasAmmunition(draft, s.catalog, profile.AmmoKind) {
		return nil, dnderr.Validationf("out of %s ammunition", profile.AmmoKind)
	}
	if profile.Thrown && !profile.UsesAmmo && !character.HasThrownWeapon(draft, item.Name) {
		return nil, dnderr.Validationf("no %s left to throw", item.Name)
	}

	result, err := s.roller.Roll(1, 20, profile.AttackBonus)
	if err != nil {
		return nil, dnderr.Wrap(err, "attack roll failed")
	}

	out := &RollOutput{
		Profile: profile,
		Results: []*dice.RollResult{result},
		Total:   result.Total,
	}
	if len(result.Rolls) == 1 && result.Rolls[0] == 20 {
		out.Crit = true
		s.crits.Set(character.WeaponCritKey(draft.ID, item.Name, set))
	}

	consumed := false
	if profile.UsesAmmo {
		consumed = character.ConsumeAmmunition(draft, s.catalog, profile.AmmoKind)
	} else if profile.Thrown {
		consumed = draft.ConsumeOne(item.Name)
	}

	s.emit(&RollEvent{
		CharacterID: draft.ID,
		Type:        "attack",
		Description: fmt.Sprintf("%s attack", profile.Name),
		Expression:  fmt.Sprintf("1d20%+d", profile.AttackBonus),
		Result:      result,
	})

	if consumed {
		if err := s.repository.Update(ctx, draft); err != nil {
			out.Dirty = true
			return out, dnderr.Wrap(err, "failed to save character").
				WithMeta("character_id", draft.ID)
		}
	}

	return out, nil
}

func (s *service) RollDamage(ctx context.Context, input *RollDamageInput) (*RollOutput, error) {
	if input == nil || input.WeaponName == "" {
		return nil, dnderr.InvalidArgument("weapon name is required")
	}

	draft, err := s.repository.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	set := input.Set
	if set == 0 {
		set = draft.Equipped.Active()
	}
	item := draft.Equipped.FindWeapon(input.WeaponName, set)
	if item == nil {
		return nil, dnderr.NotFoundf("weapon %q is not equipped", input.WeaponName)
	}

	derived := character.Derive(draft, s.catalog)
	profile, err := character.WeaponProfile(draft, derived, s.catalog, item)
	if err != nil {
		return nil, err
	}

	// A pending critical always allows the damage action, even with the
	// ammunition pouch empty.
	expr := profile.DamageDice
	crit := s.crits.Consume(character.WeaponCritKey(draft.ID, item.Name, set))
	if crit {
		expr = character.DoubleDiceCounts(expr)
	}

	out, err := s.rollExpression(expr, profile.DamageBonus)
	if err != nil {
		return nil, err
	}
	out.Profile = profile
	out.Crit = crit

	s.emit(&RollEvent{
		CharacterID: draft.ID,
		Type:        "damage",
		Description: fmt.Sprintf("%s damage", profile.Name),
		Expression:  expr,
		Result:      firstResult(out.Results),
	})

	return out, nil
}

func (s *service) RollSpellAttack(ctx context.Context, input *SpellRollInput) (*RollOutput, error) {
	if input == nil || input.SpellKey == "" {
		return nil, dnderr.InvalidArgument("spell key is required")
	}

	draft, err := s.repository.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	spell, ok := s.catalog.FindSpell(input.SpellKey)
	if !ok {
		return nil, dnderr.NotFoundf("spell %q not found", input.SpellKey)
	}

	derived := character.Derive(draft, s.catalog)
	profile := character.SpellProfile(derived, spell)
	if !profile.ShowAttack {
		return nil, dnderr.Validationf("%s has no attack roll", spell.Name)
	}

	result, err := s.roller.Roll(1, 20, profile.AttackBonus)
	if err != nil {
		return nil, dnderr.Wrap(err, "spell attack roll failed")
	}

	out := &RollOutput{
		Profile: profile,
		Results: []*dice.RollResult{result},
		Total:   result.Total,
	}
	if len(result.Rolls) == 1 && result.Rolls[0] == 20 {
		out.Crit = true
		s.crits.Set(character.SpellCritKey(draft.ID, spell.Key))
	}

	s.emit(&RollEvent{
		CharacterID: draft.ID,
		Type:        "spell_attack",
		Description: fmt.Sprintf("%s attack", spell.Name),
		Expression:  fmt.Sprintf("1d20%+d", profile.AttackBonus),
		Result:      result,
	})

	return out, nil
}

func (s *service) RollSpellDamage(ctx context.Context, input *SpellRollInput) (*RollOutput, error) {
	if input == nil || input.SpellKey == "" {
		return nil, dnderr.InvalidArgument("spell key is required")
	}

	draft, err := s.repository.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	spell, ok := s.catalog.FindSpell(input.SpellKey)
	if !ok {
		return nil, dnderr.NotFoundf("spell %q not found", input.SpellKey)
	}

	derived := character.Derive(draft, s.catalog)
	profile := character.SpellProfile(derived, spell)

	expr := profile.DamageDice
	eventType := "spell_damage"
	if expr == "" {
		expr = profile.HealDice
		eventType = "spell_heal"
	}
	if expr == "" {
		return nil, dnderr.Validationf("%s has no damage or healing dice", spell.Name)
	}

	crit := s.crits.Consume(character.SpellCritKey(draft.ID, spell.Key))
	if crit {
		expr = character.DoubleDiceCounts(expr)
	}

	out, err := s.rollExpression(expr, profile.DamageBonus)
	if err != nil {
		return nil, err
	}
	out.Profile = profile
	out.Crit = crit

	s.emit(&RollEvent{
		CharacterID: draft.ID,
		Type:        eventType,
		Description: spell.Name,
		Expression:  expr,
		Result:      firstResult(out.Results),
	})

	return out, nil
}

func (s *service) UseSpellSlot(ctx context.Context, input *SpellSlotInput) (*MutateOutput, error) {
	if input == nil || input.SpellLevel < 1 {
		return nil, dnderr.InvalidArgument("spell level must be at least 1")
	}

	draft, err := s.repository.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	derived := character.Derive(draft, s.catalog)
	info, ok := derived.SpellSlots[input.SpellLevel]
	if !ok || info.Max == 0 {
		return nil, dnderr.Validationf("no level %d spell slots", input.SpellLevel)
	}

	if !draft.UseSpellSlot(input.SpellLevel, info.Max) {
		return nil, dnderr.Validationf("no free level %d spell slots", input.SpellLevel)
	}

	return s.save(ctx, draft, true)
}

func (s *service) FreeSpellSlot(ctx context.Context, input *SpellSlotInput) (*MutateOutput, error) {
	if input == nil || input.SpellLevel < 1 {
		return nil, dnderr.InvalidArgument("spell level must be at least 1")
	}

	draft, err := s.repository.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	before := draft.UsedSpellSlots[input.SpellLevel]
	draft.FreeSpellSlot(input.SpellLevel)

	return s.save(ctx, draft, draft.UsedSpellSlots[input.SpellLevel] != before)
}

// rollExpression rolls a multi-term damage expression like "1d8" or
// "2d6+1d4", applying the flat bonus once to the grand total.
func (s *service) rollExpression(expr string, bonus int) (*RollOutput, error) {
	out := &RollOutput{Total: bonus}
	for _, term := range character.SplitDamageTerms(expr) {
		if term.Count == 0 {
			out.Total += term.Flat
			continue
		}
		result, err := s.roller.Roll(term.Count, term.Sides, 0)
		if err != nil {
			return nil, dnderr.Wrapf(err, "rolling %s", expr)
		}
		out.Results = append(out.Results, result)
		out.Total += result.Total
	}
	return out, nil
}

func firstResult(results []*dice.RollResult) *dice.RollResult {
	if len(results) == 0 {
		return nil
	}
	return results[0]
}
