package sheet

//go:generate mockgen -destination=mock/mock.go -package=mocksheet -source=service.go

import (
	"context"

	"github.com/KirkDiggler/sheet-engine/internal/character"
	"github.com/KirkDiggler/sheet-engine/internal/dice"
	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
	characterRepo "github.com/KirkDiggler/sheet-engine/internal/repositories/characters"
	"github.com/KirkDiggler/sheet-engine/internal/rulebook"
)

// Repository is an alias for the character repository interface
type Repository = characterRepo.Repository

// Service is the character-sheet orchestration layer: it loads a draft,
// applies one mutation in memory, persists the updated document, and returns
// the recomputed derived state.
type Service interface {
	// CreateCharacter stores a new draft
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// ListCharacters lists all drafts for an owner
	ListCharacters(ctx context.Context, ownerID string) ([]*character.Draft, error)

	// GetSheet returns the draft plus its full derived state
	GetSheet(ctx context.Context, characterID string) (*Sheet, error)

	// ToggleEquip equips or unequips an item by name
	ToggleEquip(ctx context.Context, input *ToggleEquipInput) (*MutateOutput, error)

	// ToggleVersatile flips a versatile weapon between one- and two-handed
	ToggleVersatile(ctx context.Context, input *ToggleVersatileInput) (*MutateOutput, error)

	// SetActiveSet switches the active weapon set
	SetActiveSet(ctx context.Context, input *SetActiveSetInput) (*MutateOutput, error)

	// PurchaseItem buys an item from the catalog, all or nothing
	PurchaseItem(ctx context.Context, input *PurchaseItemInput) (*MutateOutput, error)

	// AddItem adds an item to the backpack without payment
	AddItem(ctx context.Context, input *AddItemInput) (*MutateOutput, error)

	// RollAttack rolls a weapon attack, consuming ammunition and arming
	// the critical flag on a natural 20
	RollAttack(ctx context.Context, input *RollAttackInput) (*RollOutput, error)

	// RollDamage rolls weapon damage, doubling dice while a critical is
	// pending
	RollDamage(ctx context.Context, input *RollDamageInput) (*RollOutput, error)

	// RollSpellAttack rolls a spell attack
	RollSpellAttack(ctx context.Context, input *SpellRollInput) (*RollOutput, error)

	// RollSpellDamage rolls a spell's damage or healing dice
	RollSpellDamage(ctx context.Context, input *SpellRollInput) (*RollOutput, error)

	// UseSpellSlot expends one slot of the given level
	UseSpellSlot(ctx context.Context, input *SpellSlotInput) (*MutateOutput, error)

	// FreeSpellSlot returns one expended slot of the given level
	FreeSpellSlot(ctx context.Context, input *SpellSlotInput) (*MutateOutput, error)
}

// RollEvent describes a dice roll for an external listener (a message
// channel, an activity log).
type RollEvent struct {
	CharacterID string
	Type        string // "attack", "damage", "spell_attack", "spell_damage"
	Description string
	Expression  string
	Result      *dice.RollResult
}

// RollSink receives roll events. Implementations must not block.
type RollSink interface {
	OnRoll(event *RollEvent)
}

// CreateCharacterInput contains the draft to store
type CreateCharacterInput struct {
	Draft *character.Draft
}

// CreateCharacterOutput contains the stored draft with its assigned ID
type CreateCharacterOutput struct {
	Draft *character.Draft
}

// Sheet is a draft plus everything derived from it
type Sheet struct {
	Draft   *character.Draft
	Derived *character.Derived
}

// MutateOutput is the result of any mutating operation. Dirty is true when
// the in-memory mutation succeeded but the save did not; the returned state
// is then ahead of the store.
type MutateOutput struct {
	Sheet   *Sheet
	Changed bool
	Dirty   bool
}

type ToggleEquipInput struct {
	CharacterID string
	ItemName    string
}

type ToggleVersatileInput struct {
	CharacterID string
	WeaponName  string
}

type SetActiveSetInput struct {
	CharacterID string
	Set         int // 1 or 2
}

type PurchaseItemInput struct {
	CharacterID string
	ItemName    string
	Quantity    int
}

type AddItemInput struct {
	CharacterID string
	ItemName    string
	Quantity    int
}

type RollAttackInput struct {
	CharacterID string
	WeaponName  string
	Set         int // 0 means the active set
}

type RollDamageInput struct {
	CharacterID string
	WeaponName  string
	Set         int
}

type SpellRollInput struct {
	CharacterID string
	SpellKey    string
}

type SpellSlotInput struct {
	CharacterID string
	SpellLevel  int
}

// RollOutput carries the rolled results plus the attack line they came from
type RollOutput struct {
	Profile *character.AttackProfile
	Results []*dice.RollResult
	Total   int
	// Crit is true on an attack that just rolled a natural 20, or on a
	// damage roll that consumed a pending critical
	Crit  bool
	Dirty bool
}

// service implements the Service interface
type service struct {
	repository Repository
	catalog    *rulebook.Catalog
	roller     dice.Roller
	crits      *character.CritTracker
	sink       RollSink
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository Repository        // Required
	Catalog    *rulebook.Catalog // Required
	Roller     dice.Roller       // Optional, defaults to the random roller
	Sink       RollSink          // Optional
}

// NewService creates a new sheet service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Catalog == nil {
		panic("catalog is required")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	return &service{
		repository: cfg.Repository,
		catalog:    cfg.Catalog,
		roller:     roller,
		crits:      character.NewCritTracker(),
		sink:       cfg.Sink,
	}
}

func (s *service) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil || input.Draft == nil {
		return nil, dnderr.InvalidArgument("draft is required")
	}
	if input.Draft.Level < 1 {
		input.Draft.Level = 1
	}

	if err := s.repository.Create(ctx, input.Draft); err != nil {
		return nil, dnderr.Wrap(err, "failed to create character").
			WithMeta("owner_id", input.Draft.OwnerID)
	}

	return &CreateCharacterOutput{Draft: input.Draft}, nil
}

func (s *service) ListCharacters(ctx context.Context, ownerID string) ([]*character.Draft, error) {
	return s.repository.GetByOwner(ctx, ownerID)
}

func (s *service) GetSheet(ctx context.Context, characterID string) (*Sheet, error) {
	draft, err := s.repository.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}
	return s.sheet(draft), nil
}

func (s *service) sheet(draft *character.Draft) *Sheet {
	return &Sheet{
		Draft:   draft,
		Derived: character.Derive(draft, s.catalog),
	}
}

// save persists the mutated draft. The mutation already happened; a save
// failure leaves the caller holding state the store does not have, so the
// output is marked dirty and the error surfaced together.
func (s *service) save(ctx context.Context, draft *character.Draft, changed bool) (*MutateOutput, error) {
	out := &MutateOutput{Sheet: s.sheet(draft), Changed: changed}
	if !changed {
		return out, nil
	}

	if err := s.repository.Update(ctx, draft); err != nil {
		out.Dirty = true
		return out, dnderr.Wrap(err, "failed to save character").
			WithMeta("character_id", draft.ID)
	}
	return out, nil
}

func (s *service) emit(event *RollEvent) {
	if s.sink != nil {
		s.sink.OnRoll(event)
	}
}
