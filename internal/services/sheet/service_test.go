package sheet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/sheet-engine/internal/character"
	mockdice "github.com/KirkDiggler/sheet-engine/internal/dice/mock"
	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
	"github.com/KirkDiggler/sheet-engine/internal/repositories/characters"
	"github.com/KirkDiggler/sheet-engine/internal/rulebook"
)

type captureSink struct {
	events []*RollEvent
}

func (c *captureSink) OnRoll(event *RollEvent) {
	c.events = append(c.events, event)
}

type SheetServiceSuite struct {
	suite.Suite
	repo   Repository
	roller *mockdice.ManualMockRoller
	sink   *captureSink
	svc    Service
	ctx    context.Context
}

func (s *SheetServiceSuite) SetupTest() {
	s.repo = characters.NewInMemory()
	s.roller = mockdice.NewManualMockRoller()
	s.sink = &captureSink{}
	s.svc = NewService(&ServiceConfig{
		Repository: s.repo,
		Catalog:    rulebook.SRD(),
		Roller:     s.roller,
		Sink:       s.sink,
	})
	s.ctx = context.Background()
}

func TestSheetServiceSuite(t *testing.T) {
	suite.Run(t, new(SheetServiceSuite))
}

// createFighter stores a level 1 dwarf fighter with a stocked backpack and
// returns its ID. str 16, dex 14, proficiency +2.
func (s *SheetServiceSuite) createFighter() string {
	draft := &character.Draft{
		ID:      "fighter-1",
		OwnerID: "owner-1",
		Name:    "Tordek",
		Race:    "dwarf",
		Class:   "fighter",
		Level:   1,
		BaseScores: map[rulebook.Ability]int{
			"str": 16, "dex": 14, "con": 14, "int": 10, "wis": 12, "cha": 8,
		},
		Backpack: []character.InventoryEntry{
			{Name: "Longsword", Quantity: 1},
			{Name: "Dagger", Quantity: 3},
			{Name: "Shortbow", Quantity: 1},
			{Name: "Leather Armor", Quantity: 1},
		},
	}
	s.Require().NoError(s.repo.Create(s.ctx, draft))
	return draft.ID
}

// createWizard stores a level 5 human wizard. int 17 after the racial bonus,
// proficiency +3.
func (s *SheetServiceSuite) createWizard() string {
	draft := &character.Draft{
		ID:      "wizard-1",
		OwnerID: "owner-1",
		Name:    "Mialee",
		Race:    "human",
		Class:   "wizard",
		Level:   5,
		BaseScores: map[rulebook.Ability]int{
			"str": 8, "dex": 14, "con": 12, "int": 16, "wis": 12, "cha": 10,
		},
	}
	s.Require().NoError(s.repo.Create(s.ctx, draft))
	return draft.ID
}

func (s *SheetServiceSuite) equip(characterID, itemName string) {
	out, err := s.svc.ToggleEquip(s.ctx, &ToggleEquipInput{CharacterID: characterID, ItemName: itemName})
	s.Require().NoError(err)
	s.Require().True(out.Changed)
}

func (s *SheetServiceSuite) TestCreateAndGetSheet() {
	id := s.createFighter()

	sheet, err := s.svc.GetSheet(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Tordek", sheet.Draft.Name)
	s.Equal(2, sheet.Derived.ProficiencyBonus)
	s.Equal(12, sheet.Derived.AC, "unarmored, 10 + dex")
}

func (s *SheetServiceSuite) TestCreateCharacterValidation() {
	_, err := s.svc.CreateCharacter(s.ctx, nil)
	s.Error(err)
	_, err = s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{})
	s.Error(err)
}

func (s *SheetServiceSuite) TestListCharacters() {
	s.createFighter()
	s.createWizard()

	drafts, err := s.svc.ListCharacters(s.ctx, "owner-1")
	s.Require().NoError(err)
	s.Len(drafts, 2)
}

func (s *SheetServiceSuite) TestToggleEquipPersists() {
	id := s.createFighter()
	s.equip(id, "Leather Armor")

	stored, err := s.repo.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(stored.Equipped.Armor)
	s.Equal("Leather Armor", stored.Equipped.Armor.Name)

	sheet, err := s.svc.GetSheet(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(13, sheet.Derived.AC, "leather 11 + dex 2")
}

func (s *SheetServiceSuite) TestSetActiveSet() {
	id := s.createFighter()

	out, err := s.svc.SetActiveSet(s.ctx, &SetActiveSetInput{CharacterID: id, Set: 2})
	s.Require().NoError(err)
	s.True(out.Changed)

	stored, err := s.repo.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(2, stored.Equipped.Active())

	_, err = s.svc.SetActiveSet(s.ctx, &SetActiveSetInput{CharacterID: id, Set: 3})
	s.Error(err)
}

func (s *SheetServiceSuite) TestToggleVersatilePersists() {
	id := s.createFighter()
	s.equip(id, "Longsword")

	out, err := s.svc.ToggleVersatile(s.ctx, &ToggleVersatileInput{CharacterID: id, WeaponName: "Longsword"})
	s.Require().NoError(err)
	s.True(out.Changed)

	stored, err := s.repo.Get(s.ctx, id)
	s.Require().NoError(err)
	item := stored.Equipped.FindWeapon("Longsword", 1)
	s.Require().NotNil(item)
	s.True(item.VersatileMode)
	s.Equal(2, item.Slots)
}

func (s *SheetServiceSuite) TestRollAttackCritThenDamage() {
	id := s.createFighter()
	s.equip(id, "Longsword")

	// Natural 20: str +3 and proficiency +2 on top.
	s.roller.SetRolls([]int{20})
	attack, err := s.svc.RollAttack(s.ctx, &RollAttackInput{CharacterID: id, WeaponName: "Longsword"})
	s.Require().NoError(err)
	s.True(attack.Crit)
	s.Equal(25, attack.Total)

	// The pending critical doubles 1d8 to 2d8.
	s.roller.SetRolls([]int{8, 6})
	damage, err := s.svc.RollDamage(s.ctx, &RollDamageInput{CharacterID: id, WeaponName: "Longsword"})
	s.Require().NoError(err)
	s.True(damage.Crit)
	s.Equal(17, damage.Total, "8 + 6 + str 3")

	// Consumed: the next damage roll is a plain 1d8.
	s.roller.SetRolls([]int{4})
	damage, err = s.svc.RollDamage(s.ctx, &RollDamageInput{CharacterID: id, WeaponName: "Longsword"})
	s.Require().NoError(err)
	s.False(damage.Crit)
	s.Equal(7, damage.Total)
}

func (s *SheetServiceSuite) TestRollAttackNotCrit() {
	id := s.createFighter()
	s.equip(id, "Longsword")

	s.roller.SetRolls([]int{12})
	attack, err := s.svc.RollAttack(s.ctx, &RollAttackInput{CharacterID: id, WeaponName: "Longsword"})
	s.Require().NoError(err)
	s.False(attack.Crit)
	s.Equal(17, attack.Total)

	s.Require().Len(s.sink.events, 1)
	s.Equal("attack", s.sink.events[0].Type)
	s.Equal("1d20+5", s.sink.events[0].Expression)
}

func (s *SheetServiceSuite) TestRollAttackUnequipped() {
	id := s.createFighter()

	_, err := s.svc.RollAttack(s.ctx, &RollAttackInput{CharacterID: id, WeaponName: "Longsword"})
	s.Require().Error(err)
	s.True(dnderr.IsNotFound(err))
}

func (s *SheetServiceSuite) TestRollAttackConsumesAmmunition() {
	id := s.createFighter()
	s.equip(id, "Shortbow")

	out, err := s.svc.AddItem(s.ctx, &AddItemInput{CharacterID: id, ItemName: "Arrow", Quantity: 1})
	s.Require().NoError(err)
	s.True(out.Changed)

	s.roller.SetRolls([]int{10})
	_, err = s.svc.RollAttack(s.ctx, &RollAttackInput{CharacterID: id, WeaponName: "Shortbow"})
	s.Require().NoError(err)

	stored, err := s.repo.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Nil(stored.FindStack("Arrow"), "last arrow spent and persisted")

	// Empty pouch refuses the attack.
	s.roller.SetRolls([]int{10})
	_, err = s.svc.RollAttack(s.ctx, &RollAttackInput{CharacterID: id, WeaponName: "Shortbow"})
	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
}

func (s *SheetServiceSuite) TestRollAttackConsumesThrownWeapon() {
	id := s.createFighter()
	s.equip(id, "Dagger")

	s.roller.SetRolls([]int{10})
	_, err := s.svc.RollAttack(s.ctx, &RollAttackInput{CharacterID: id, WeaponName: "Dagger"})
	s.Require().NoError(err)

	stored, err := s.repo.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(2, stored.FindStack("Dagger").Quantity)
}

func (s *SheetServiceSuite) TestRollSpellAttackCritThenDamage() {
	id := s.createWizard()

	// int +3 and proficiency +3.
	s.roller.SetRolls([]int{20})
	attack, err := s.svc.RollSpellAttack(s.ctx, &SpellRollInput{CharacterID: id, SpellKey: "fire-bolt"})
	s.Require().NoError(err)
	s.True(attack.Crit)
	s.Equal(26, attack.Total)

	// 1d10 doubled to 2d10.
	s.roller.SetRolls([]int{10, 7})
	damage, err := s.svc.RollSpellDamage(s.ctx, &SpellRollInput{CharacterID: id, SpellKey: "fire-bolt"})
	s.Require().NoError(err)
	s.True(damage.Crit)
	s.Equal(20, damage.Total, "10 + 7 + int 3")
}

func (s *SheetServiceSuite) TestRollSpellAttackSelfTargeted() {
	id := s.createWizard()

	_, err := s.svc.RollSpellAttack(s.ctx, &SpellRollInput{CharacterID: id, SpellKey: "shield"})
	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
}

func (s *SheetServiceSuite) TestRollSpellHeal() {
	id := s.createWizard()

	s.roller.SetRolls([]int{5})
	out, err := s.svc.RollSpellDamage(s.ctx, &SpellRollInput{CharacterID: id, SpellKey: "cure-wounds"})
	s.Require().NoError(err)
	s.Equal(8, out.Total, "5 + int 3")

	s.Require().Len(s.sink.events, 1)
	s.Equal("spell_heal", s.sink.events[0].Type)
}

func (s *SheetServiceSuite) TestRollSpellDamageWithoutDice() {
	id := s.createWizard()

	_, err := s.svc.RollSpellDamage(s.ctx, &SpellRollInput{CharacterID: id, SpellKey: "shield"})
	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
}

func (s *SheetServiceSuite) TestUseAndFreeSpellSlot() {
	id := s.createWizard()

	// A level 5 wizard has four first-level slots.
	for i := 0; i < 4; i++ {
		out, err := s.svc.UseSpellSlot(s.ctx, &SpellSlotInput{CharacterID: id, SpellLevel: 1})
		s.Require().NoError(err)
		s.True(out.Changed)
	}

	_, err := s.svc.UseSpellSlot(s.ctx, &SpellSlotInput{CharacterID: id, SpellLevel: 1})
	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))

	_, err = s.svc.UseSpellSlot(s.ctx, &SpellSlotInput{CharacterID: id, SpellLevel: 9})
	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))

	out, err := s.svc.FreeSpellSlot(s.ctx, &SpellSlotInput{CharacterID: id, SpellLevel: 1})
	s.Require().NoError(err)
	s.True(out.Changed)
	s.Equal(3, out.Sheet.Draft.UsedSpellSlots[1])

	stored, err := s.repo.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(3, stored.UsedSpellSlots[1])
}

func (s *SheetServiceSuite) TestFreeSpellSlotAtZero() {
	id := s.createWizard()

	out, err := s.svc.FreeSpellSlot(s.ctx, &SpellSlotInput{CharacterID: id, SpellLevel: 1})
	s.Require().NoError(err)
	s.False(out.Changed, "nothing to free, nothing saved")
}

func (s *SheetServiceSuite) TestPurchaseItem() {
	id := s.createFighter()

	stored, err := s.repo.Get(s.ctx, id)
	s.Require().NoError(err)
	stored.Purse.Gold = 20
	s.Require().NoError(s.repo.Update(s.ctx, stored))

	out, err := s.svc.PurchaseItem(s.ctx, &PurchaseItemInput{CharacterID: id, ItemName: "Longsword"})
	s.Require().NoError(err)
	s.True(out.Changed)

	stored, err = s.repo.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(5, stored.Purse.Gold)
	s.Equal(2, stored.FindStack("Longsword").Quantity)
}

func (s *SheetServiceSuite) TestPurchaseItemInsufficientFunds() {
	id := s.createFighter()

	_, err := s.svc.PurchaseItem(s.ctx, &PurchaseItemInput{CharacterID: id, ItemName: "Longsword"})
	s.Require().Error(err)
	s.True(dnderr.IsInsufficientFunds(err))

	stored, err := s.repo.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(1, stored.FindStack("Longsword").Quantity, "nothing changed")
}

func (s *SheetServiceSuite) TestAddItemValidation() {
	id := s.createFighter()

	_, err := s.svc.AddItem(s.ctx, &AddItemInput{CharacterID: id, ItemName: "Torch", Quantity: -2})
	s.Error(err)
	_, err = s.svc.AddItem(s.ctx, &AddItemInput{CharacterID: id, ItemName: ""})
	s.Error(err)
}

// failingRepo wraps a working repository and fails every Update.
type failingRepo struct {
	Repository
}

func (f *failingRepo) Update(_ context.Context, _ *character.Draft) error {
	return errors.New("store is down")
}

func (s *SheetServiceSuite) TestSaveFailureMarksDirty() {
	id := s.createFighter()

	svc := NewService(&ServiceConfig{
		Repository: &failingRepo{Repository: s.repo},
		Catalog:    rulebook.SRD(),
		Roller:     s.roller,
	})

	out, err := svc.ToggleEquip(s.ctx, &ToggleEquipInput{CharacterID: id, ItemName: "Leather Armor"})
	s.Require().Error(err)
	s.Require().NotNil(out)
	s.True(out.Dirty)
	s.True(out.Changed)
	s.NotNil(out.Sheet.Draft.Equipped.Armor, "in-memory mutation kept")

	stored, storeErr := s.repo.Get(s.ctx, id)
	s.Require().NoError(storeErr)
	s.Nil(stored.Equipped.Armor, "store unchanged")
}
