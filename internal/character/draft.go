package character

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/KirkDiggler/sheet-engine/internal/rulebook"
)

// HPMode selects how hit points are computed past level 1.
type HPMode string

const (
	HPModeFixed  HPMode = "fixed"
	HPModeRolled HPMode = "rolled"
)

// Draft is the persisted character document. It is loaded whole, mutated in
// memory by the resolvers, and written back as one atomic document. All
// derivation is a pure function of (Draft, Catalog); nothing here caches
// derived state.
type Draft struct {
	ID         string `json:"id"`
	OwnerID    string `json:"owner_id"`
	Name       string `json:"name"`
	Race       string `json:"race"`
	Subrace    string `json:"subrace,omitempty"`
	Class      string `json:"class"`
	Subclass   string `json:"subclass,omitempty"`
	Background string `json:"background,omitempty"`
	Level      int    `json:"level"`

	BaseScores map[rulebook.Ability]int `json:"base_ability_scores"`

	HPMode    HPMode `json:"hp_mode"`
	HPRolls   []int  `json:"hp_rolls,omitempty"` // per-level rolls starting at level 2
	HPCurrent int    `json:"hp_current"`
	TempHP    int    `json:"temp_hp"`

	Purse    Purse            `json:"currency"`
	Backpack []InventoryEntry `json:"equipment"`

	Chosen   Chosen   `json:"chosen"`
	Equipped Equipped `json:"equipped"`

	UsedSpellSlots map[int]int `json:"used_spell_slots,omitempty"`
}

// Chosen holds player selections keyed by the opaque source key of the choice
// slot that offered them, partitioned by kind.
type Chosen struct {
	Abilities     map[string][]string `json:"abilities,omitempty"`
	Skills        map[string][]string `json:"skills,omitempty"`
	Tools         map[string][]string `json:"tools,omitempty"`
	Languages     map[string][]string `json:"languages,omitempty"`
	Spells        map[string][]string `json:"spells,omitempty"`
	LearnedSpells map[string][]string `json:"learned_spells,omitempty"`
	Feats         map[string][]string `json:"feats,omitempty"`
}

// MagicItemKind is the slot class of a homebrew magic item.
type MagicItemKind string

const (
	MagicItemWeapon    MagicItemKind = "weapon"
	MagicItemArmor     MagicItemKind = "armor"
	MagicItemAccessory MagicItemKind = "item"
)

// DexPolicy is how a homebrew magic armor treats the dexterity modifier,
// overriding the category defaults of catalog armor.
type DexPolicy string

const (
	DexPolicyFull    DexPolicy = "full"
	DexPolicyLimited DexPolicy = "limited"
	DexPolicyNone    DexPolicy = "none"
)

// MagicWeapon carries combat stats independent of the catalog.
type MagicWeapon struct {
	// Category is the proficiency key the item counts under, either a
	// category ("martial-weapons") or a specific weapon key.
	Category      string               `json:"category"`
	Range         rulebook.WeaponRange `json:"range"`
	TwoHanded     bool                 `json:"two_handed"`
	Thrown        bool                 `json:"thrown"`
	AttackBonus   int                  `json:"attack_bonus"`
	DamageBonus   int                  `json:"damage_bonus"`
	DamageSources []string             `json:"damage_sources"` // dice expressions, joined with "+"
}

type MagicArmor struct {
	BaseAC    int       `json:"base_ac"`
	ACBonus   int       `json:"ac_bonus"`
	DexPolicy DexPolicy `json:"dex_policy"`
	DexCap    int       `json:"dex_cap"` // used when DexPolicy is "limited"
	Shield    bool      `json:"shield"`
}

// MagicAccessory raises the wearer's AC to Armor Class when that beats the
// computed value. It never stacks additively.
type MagicAccessory struct {
	ArmorClass int `json:"armor_class"`
}

// MagicItem is a homebrew item instance authored in the workshop and dropped
// into a character's backpack. It carries its own stats; the catalog is never
// consulted for it.
type MagicItem struct {
	ID     string          `json:"magic_item_id"`
	Kind   MagicItemKind   `json:"item_type"`
	Rarity string          `json:"rarity,omitempty"`
	Weapon *MagicWeapon    `json:"weapon,omitempty"`
	Armor  *MagicArmor     `json:"armor,omitempty"`
	Item   *MagicAccessory `json:"item,omitempty"`
}

// InventoryEntry is one backpack stack: either a catalog reference with a
// quantity or a homebrew magic item.
type InventoryEntry struct {
	Name     string     `json:"name"`
	Quantity int        `json:"quantity"`
	Magic    *MagicItem `json:"magic_item,omitempty"`
}

// inventoryEntryJSON is the wire shape; legacy documents stored magic items
// with an inline "type" discriminator and plain stacks as bare strings.
type inventoryEntryJSON struct {
	Type     string          `json:"type,omitempty"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity,omitempty"`
	Kind     MagicItemKind   `json:"item_type,omitempty"`
	ID       string          `json:"magic_item_id,omitempty"`
	Rarity   string          `json:"rarity,omitempty"`
	Weapon   *MagicWeapon    `json:"weapon,omitempty"`
	Armor    *MagicArmor     `json:"armor,omitempty"`
	Item     *MagicAccessory `json:"item,omitempty"`
}

// UnmarshalJSON normalizes the three historical encodings of a backpack entry
// at the load boundary: a bare "Nx Name" string, a plain stack object, and a
// magic-item object. Downstream code only ever sees the canonical shape.
func (e *InventoryEntry) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		e.Name, e.Quantity = ParseLegacyStack(s)
		e.Magic = nil
		return nil
	}

	var raw inventoryEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Name = raw.Name
	e.Quantity = raw.Quantity
	if e.Quantity < 1 {
		e.Quantity = 1
	}

	if raw.Type == "magic_item" || raw.Kind != "" {
		e.Magic = &MagicItem{
			ID:     raw.ID,
			Kind:   raw.Kind,
			Rarity: raw.Rarity,
			Weapon: raw.Weapon,
			Armor:  raw.Armor,
			Item:   raw.Item,
		}
	}

	return nil
}

// MarshalJSON always writes the canonical object shape.
func (e InventoryEntry) MarshalJSON() ([]byte, error) {
	raw := inventoryEntryJSON{
		Name:     e.Name,
		Quantity: e.Quantity,
	}
	if e.Magic != nil {
		raw.Type = "magic_item"
		raw.Kind = e.Magic.Kind
		raw.ID = e.Magic.ID
		raw.Rarity = e.Magic.Rarity
		raw.Weapon = e.Magic.Weapon
		raw.Armor = e.Magic.Armor
		raw.Item = e.Magic.Item
	}
	return json.Marshal(raw)
}

// ParseLegacyStack splits a legacy "Nx Name" stack string into its name and
// quantity. Anything that does not match the prefix is a single item.
func ParseLegacyStack(s string) (name string, quantity int) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "x "); i > 0 {
		if n, err := strconv.Atoi(s[:i]); err == nil && n > 0 {
			return strings.TrimSpace(s[i+2:]), n
		}
	}
	return s, 1
}

// CleanName normalizes an item name for stack matching.
func CleanName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FindStack returns the backpack stack matching name, or nil.
func (d *Draft) FindStack(name string) *InventoryEntry {
	cleaned := CleanName(name)
	for i := range d.Backpack {
		if CleanName(d.Backpack[i].Name) == cleaned {
			return &d.Backpack[i]
		}
	}
	return nil
}

// FindMagicItem returns the magic item with the given name, or nil.
func (d *Draft) FindMagicItem(name string) *MagicItem {
	entry := d.FindStack(name)
	if entry == nil {
		return nil
	}
	return entry.Magic
}

// AddStack merges quantity into an existing stack by cleaned-name match or
// appends a new stack. Both purchase and plain add go through here.
func (d *Draft) AddStack(name string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if stack := d.FindStack(name); stack != nil && stack.Magic == nil {
		stack.Quantity += quantity
		return
	}
	d.Backpack = append(d.Backpack, InventoryEntry{Name: strings.TrimSpace(name), Quantity: quantity})
}

// ConsumeOne decrements a stack by one, removing it when empty. Returns false
// when no stack matched.
func (d *Draft) ConsumeOne(name string) bool {
	cleaned := CleanName(name)
	for i := range d.Backpack {
		if CleanName(d.Backpack[i].Name) != cleaned {
			continue
		}
		d.Backpack[i].Quantity--
		if d.Backpack[i].Quantity <= 0 {
			d.Backpack = append(d.Backpack[:i], d.Backpack[i+1:]...)
		}
		return true
	}
	return false
}

// UseSpellSlot consumes a slot of the given level. It refuses to go past the
// class maximum; cantrips (level 0) never consume slots.
func (d *Draft) UseSpellSlot(level, max int) bool {
	if level < 1 || max < 1 {
		return false
	}
	if d.UsedSpellSlots == nil {
		d.UsedSpellSlots = make(map[int]int)
	}
	if d.UsedSpellSlots[level] >= max {
		return false
	}
	d.UsedSpellSlots[level]++
	return true
}

// FreeSpellSlot returns a consumed slot of the given level. The used count
// never goes negative.
func (d *Draft) FreeSpellSlot(level int) {
	if d.UsedSpellSlots == nil {
		return
	}
	if d.UsedSpellSlots[level] > 0 {
		d.UsedSpellSlots[level]--
	}
}

// ApplyDamage reduces hit points, soaking through temporary HP first.
func (d *Draft) ApplyDamage(amount int) {
	if amount <= 0 {
		return
	}
	if d.TempHP > 0 {
		if d.TempHP >= amount {
			d.TempHP -= amount
			return
		}
		amount -= d.TempHP
		d.TempHP = 0
	}
	d.HPCurrent -= amount
	if d.HPCurrent < 0 {
		d.HPCurrent = 0
	}
}

// Heal restores hit points up to the given maximum.
func (d *Draft) Heal(amount, maxHP int) {
	if amount <= 0 {
		return
	}
	d.HPCurrent += amount
	if d.HPCurrent > maxHP {
		d.HPCurrent = maxHP
	}
}

// LongRest restores hit points and all spell slots.
func (d *Draft) LongRest(maxHP int) {
	d.HPCurrent = maxHP
	d.TempHP = 0
	d.UsedSpellSlots = make(map[int]int)
}
