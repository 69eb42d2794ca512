package sheet

import (
	"context"

	"github.com/KirkDiggler/sheet-engine/internal/character"
	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
)

func (s *service) ToggleEquip(ctx context.Context, input *ToggleEquipInput) (*MutateOutput, error) {
	if input == nil || input.ItemName == "" {
		return nil, dnderr.InvalidArgument("item name is required")
	}

	draft, err := s.repository.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	// Rejected transitions are a no-op, not an error.
	manager := character.NewSlotManager(draft, s.catalog)
	changed := manager.ToggleEquipped(input.ItemName)

	return s.save(ctx, draft, changed)
}

func (s *service) ToggleVersatile(ctx context.Context, input *ToggleVersatileInput) (*MutateOutput, error) {
	if input == nil || input.WeaponName == "" {
		return nil, dnderr.InvalidArgument("weapon name is required")
	}

	draft, err := s.repository.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	manager := character.NewSlotManager(draft, s.catalog)
	changed := manager.ToggleVersatileMode(input.WeaponName)

	return s.save(ctx, draft, changed)
}

func (s *service) SetActiveSet(ctx context.Context, input *SetActiveSetInput) (*MutateOutput, error) {
	if input == nil || (input.Set != 1 && input.Set != 2) {
		return nil, dnderr.InvalidArgument("set must be 1 or 2")
	}

	draft, err := s.repository.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	manager := character.NewSlotManager(draft, s.catalog)
	changed := manager.SetActiveSet(input.Set)

	return s.save(ctx, draft, changed)
}
