package character

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLegacyStack(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		quantity int
	}{
		{"20x Arrow", "Arrow", 20},
		{"1x Rations", "Rations", 1},
		{"Longsword", "Longsword", 1},
		{"  3x Torch  ", "Torch", 3},
		{"0x Torch", "0x Torch", 1},  // zero is not a quantity prefix
		{"x Torch", "x Torch", 1},
		{"2xTorch", "2xTorch", 1}, // no space, no prefix
	}

	for _, tt := range tests {
		name, quantity := ParseLegacyStack(tt.input)
		assert.Equal(t, tt.name, name, "input %q", tt.input)
		assert.Equal(t, tt.quantity, quantity, "input %q", tt.input)
	}
}

func TestInventoryEntryUnmarshalLegacyString(t *testing.T) {
	var backpack []InventoryEntry
	raw := `["20x Arrow", "Longsword", {"name": "Torch", "quantity": 3}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &backpack))

	require.Len(t, backpack, 3)
	assert.Equal(t, InventoryEntry{Name: "Arrow", Quantity: 20}, backpack[0])
	assert.Equal(t, InventoryEntry{Name: "Longsword", Quantity: 1}, backpack[1])
	assert.Equal(t, InventoryEntry{Name: "Torch", Quantity: 3}, backpack[2])
}

func TestInventoryEntryUnmarshalMagicItem(t *testing.T) {
	raw := `{
		"type": "magic_item",
		"name": "Flametongue",
		"magic_item_id": "mi-1",
		"item_type": "weapon",
		"rarity": "rare",
		"weapon": {
			"category": "martial-weapons",
			"range": "melee",
			"attack_bonus": 1,
			"damage_bonus": 1,
			"damage_sources": ["1d8", "2d6"]
		}
	}`

	var entry InventoryEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))

	assert.Equal(t, "Flametongue", entry.Name)
	assert.Equal(t, 1, entry.Quantity)
	require.NotNil(t, entry.Magic)
	assert.Equal(t, MagicItemWeapon, entry.Magic.Kind)
	require.NotNil(t, entry.Magic.Weapon)
	assert.Equal(t, []string{"1d8", "2d6"}, entry.Magic.Weapon.DamageSources)
}

func TestInventoryEntryMarshalRoundTrip(t *testing.T) {
	entry := InventoryEntry{
		Name:     "Amulet",
		Quantity: 1,
		Magic: &MagicItem{
			ID:   "mi-2",
			Kind: MagicItemAccessory,
			Item: &MagicAccessory{ArmorClass: 16},
		},
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded InventoryEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, entry, decoded)
}

func TestAddStackMerges(t *testing.T) {
	draft := &Draft{}
	draft.AddStack("Torch", 2)
	draft.AddStack("  torch ", 3)

	require.Len(t, draft.Backpack, 1)
	assert.Equal(t, 5, draft.Backpack[0].Quantity)

	draft.AddStack("Rope", 1)
	assert.Len(t, draft.Backpack, 2)
}

func TestConsumeOne(t *testing.T) {
	draft := &Draft{Backpack: []InventoryEntry{{Name: "Arrow", Quantity: 2}}}

	assert.True(t, draft.ConsumeOne("arrow"))
	assert.Equal(t, 1, draft.FindStack("Arrow").Quantity)

	// The stack disappears at zero.
	assert.True(t, draft.ConsumeOne("Arrow"))
	assert.Nil(t, draft.FindStack("Arrow"))

	assert.False(t, draft.ConsumeOne("Arrow"))
}

func TestUseAndFreeSpellSlot(t *testing.T) {
	draft := &Draft{}

	assert.True(t, draft.UseSpellSlot(1, 2))
	assert.True(t, draft.UseSpellSlot(1, 2))
	assert.False(t, draft.UseSpellSlot(1, 2), "refuses past the maximum")
	assert.Equal(t, 2, draft.UsedSpellSlots[1])

	draft.FreeSpellSlot(1)
	assert.Equal(t, 1, draft.UsedSpellSlots[1])

	draft.FreeSpellSlot(1)
	draft.FreeSpellSlot(1)
	assert.Equal(t, 0, draft.UsedSpellSlots[1], "never negative")

	assert.False(t, draft.UseSpellSlot(0, 2), "cantrips have no slots")
}

func TestApplyDamageAndHeal(t *testing.T) {
	draft := &Draft{HPCurrent: 10, TempHP: 5}

	draft.ApplyDamage(3)
	assert.Equal(t, 2, draft.TempHP)
	assert.Equal(t, 10, draft.HPCurrent)

	draft.ApplyDamage(6)
	assert.Equal(t, 0, draft.TempHP)
	assert.Equal(t, 6, draft.HPCurrent)

	draft.ApplyDamage(100)
	assert.Equal(t, 0, draft.HPCurrent, "floors at zero")

	draft.Heal(4, 12)
	assert.Equal(t, 4, draft.HPCurrent)
	draft.Heal(100, 12)
	assert.Equal(t, 12, draft.HPCurrent)
}

func TestLongRest(t *testing.T) {
	draft := &Draft{HPCurrent: 1, TempHP: 3, UsedSpellSlots: map[int]int{1: 2}}

	draft.LongRest(20)

	assert.Equal(t, 20, draft.HPCurrent)
	assert.Equal(t, 0, draft.TempHP)
	assert.Empty(t, draft.UsedSpellSlots)
}
