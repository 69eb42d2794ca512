package sheet

import (
	"context"

	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
)

func (s *service) PurchaseItem(ctx context.Context, input *PurchaseItemInput) (*MutateOutput, error) {
	if input == nil || input.ItemName == "" {
		return nil, dnderr.InvalidArgument("item name is required")
	}
	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}

	draft, err := s.repository.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	if err := draft.Purchase(s.catalog, input.ItemName, qty); err != nil {
		// All or nothing; the purse is untouched.
		return nil, err
	}

	return s.save(ctx, draft, true)
}

func (s *service) AddItem(ctx context.Context, input *AddItemInput) (*MutateOutput, error) {
	if input == nil || input.ItemName == "" {
		return nil, dnderr.InvalidArgument("item name is required")
	}
	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, dnderr.InvalidArgumentf("quantity must be positive, got %d", qty)
	}

	draft, err := s.repository.Get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	draft.AddStack(input.ItemName, qty)

	return s.save(ctx, draft, true)
}
