package character

import (
	"log"

	"github.com/KirkDiggler/sheet-engine/internal/rulebook"
)

// EquippedItem is one occupied slot entry. VersatileMode true means the
// weapon is wielded two-handed, doubling its slot cost and stepping up its
// damage die.
type EquippedItem struct {
	Name          string `json:"name"`
	Slots         int    `json:"slots"`
	Versatile     bool   `json:"is_versatile,omitempty"`
	VersatileMode bool   `json:"versatile_mode,omitempty"`
}

// Equipped is the grouped equip projection persisted with the draft: one
// armor slot, two weapon/shield sets of two slots each, and four accessory
// slots.
type Equipped struct {
	Armor      *EquippedItem  `json:"armor,omitempty"`
	WeaponSet1 []EquippedItem `json:"weapon_slot_1,omitempty"`
	WeaponSet2 []EquippedItem `json:"weapon_slot_2,omitempty"`
	ActiveSet  int            `json:"active_weapon_slot,omitempty"` // 1 or 2
	Shield1    *EquippedItem  `json:"shield_1,omitempty"`
	Shield2    *EquippedItem  `json:"shield_2,omitempty"`
	Other      []EquippedItem `json:"other_items,omitempty"`
}

const (
	weaponSetCapacity = 2
	otherSlotCapacity = 4
)

// Active returns the active weapon set number, defaulting to 1.
func (e *Equipped) Active() int {
	if e.ActiveSet == 2 {
		return 2
	}
	return 1
}

// UsedSlots sums the occupied slots of a weapon set, including its shield.
func (e *Equipped) UsedSlots(set int) int {
	used := 0
	for _, item := range e.weaponSet(set) {
		used += item.Slots
	}
	if e.shield(set) != nil {
		used++
	}
	return used
}

func (e *Equipped) weaponSet(set int) []EquippedItem {
	if set == 2 {
		return e.WeaponSet2
	}
	return e.WeaponSet1
}

func (e *Equipped) shield(set int) *EquippedItem {
	if set == 2 {
		return e.Shield2
	}
	return e.Shield1
}

// FindWeapon returns the equipped weapon matching name in the given set, or
// nil. Set 0 means the active set.
func (e *Equipped) FindWeapon(name string, set int) *EquippedItem {
	if set == 0 {
		set = e.Active()
	}
	weapons := e.weaponSet(set)
	for i := range weapons {
		if CleanName(weapons[i].Name) == CleanName(name) {
			return &weapons[i]
		}
	}
	return nil
}

// ShieldBearing reports whether the given set carries a shield. Set 0 means
// the active set.
func (e *Equipped) ShieldBearing(set int) bool {
	if set == 0 {
		set = e.Active()
	}
	return e.shield(set) != nil
}

// itemClass is how an inventory item maps onto the equip slots.
type itemClass int

const (
	classUnknown itemClass = iota
	classWeapon
	classShield
	classBodyArmor
	classAccessory
)

// SlotManager enforces the equip-slot state machine over a draft. Every item
// is, by name, in exactly one of: backpack, the armor slot, a weapon set, or
// the accessory slots.
type SlotManager struct {
	draft   *Draft
	catalog *rulebook.Catalog
}

// NewSlotManager creates a slot manager bound to a draft and catalog.
func NewSlotManager(draft *Draft, catalog *rulebook.Catalog) *SlotManager {
	return &SlotManager{draft: draft, catalog: catalog}
}

// classify resolves an item name to its slot class, required slot count and
// versatile flag. Catalog misses resolve to classUnknown, logged, never an
// error.
func (m *SlotManager) classify(name string) (class itemClass, slots int, versatile bool) {
	if magic := m.draft.FindMagicItem(name); magic != nil {
		switch magic.Kind {
		case MagicItemWeapon:
			slots = 1
			if magic.Weapon != nil && magic.Weapon.TwoHanded {
				slots = 2
			}
			return classWeapon, slots, false
		case MagicItemArmor:
			if magic.Armor != nil && magic.Armor.Shield {
				return classShield, 1, false
			}
			return classBodyArmor, 1, false
		case MagicItemAccessory:
			return classAccessory, 1, false
		}
		log.Printf("magic item %q has unknown kind %q", name, magic.Kind)
		return classUnknown, 0, false
	}

	if armor, ok := m.catalog.FindArmor(name); ok {
		if armor.Category == rulebook.ArmorCategoryShield {
			return classShield, 1, false
		}
		return classBodyArmor, 1, false
	}

	if weapon, ok := m.catalog.FindWeapon(name); ok {
		slots = 1
		if weapon.IsTwoHanded() {
			slots = 2
		}
		// Versatile weapons default to one-handed wielding.
		return classWeapon, slots, weapon.IsVersatile()
	}

	log.Printf("item %q not found in any catalog, treating as non-equippable", name)
	return classUnknown, 0, false
}

// equippedIn reports where an item currently sits: set 1, set 2, or 0 when it
// is not in a weapon set (shields included).
func (m *SlotManager) equippedIn(name string) int {
	eq := &m.draft.Equipped
	for set := 1; set <= 2; set++ {
		for _, item := range eq.weaponSet(set) {
			if CleanName(item.Name) == CleanName(name) {
				return set
			}
		}
		if s := eq.shield(set); s != nil && CleanName(s.Name) == CleanName(name) {
			return set
		}
	}
	return 0
}

func (m *SlotManager) inOther(name string) int {
	for i, item := range m.draft.Equipped.Other {
		if CleanName(item.Name) == CleanName(name) {
			return i
		}
	}
	return -1
}

// CanEquipItem is the capability query the UI consults before offering the
// equip action. ToggleEquipped re-checks defensively.
func (m *SlotManager) CanEquipItem(name string) bool {
	class, _, _ := m.classify(name)
	eq := &m.draft.Equipped

	switch class {
	case classBodyArmor:
		return eq.Armor == nil || CleanName(eq.Armor.Name) == CleanName(name)
	case classWeapon, classShield:
		// The full-set eviction fallback means a weapon or shield can
		// always be placed somewhere.
		return true
	case classAccessory:
		if m.inOther(name) >= 0 {
			return true
		}
		return len(eq.Other) < otherSlotCapacity
	}
	return false
}

// ToggleEquipped moves an item between the backpack and its slot. Illegal
// attempts are rejected with no state change. Returns true when the equipped
// state changed.
func (m *SlotManager) ToggleEquipped(name string) bool {
	class, slots, versatile := m.classify(name)
	eq := &m.draft.Equipped

	switch class {
	case classBodyArmor:
		if eq.Armor != nil {
			if CleanName(eq.Armor.Name) != CleanName(name) {
				// Occupied by something else; the caller must unequip first.
				return false
			}
			eq.Armor = nil
			return true
		}
		eq.Armor = &EquippedItem{Name: name, Slots: 1}
		return true

	case classShield:
		if set := m.equippedIn(name); set != 0 {
			m.removeFromSet(set, name)
			return true
		}
		item := &EquippedItem{Name: name, Slots: 1}
		if eq.Shield1 == nil && eq.UsedSlots(1)+1 <= weaponSetCapacity {
			eq.Shield1 = item
			return true
		}
		if eq.Shield2 == nil && eq.UsedSlots(2)+1 <= weaponSetCapacity {
			eq.Shield2 = item
			return true
		}
		// Last resort: displace the whole main set.
		eq.WeaponSet1 = nil
		eq.Shield1 = item
		return true

	case classWeapon:
		if set := m.equippedIn(name); set != 0 {
			m.removeFromSet(set, name)
			return true
		}
		item := EquippedItem{Name: name, Slots: slots, Versatile: versatile}
		if eq.UsedSlots(1)+slots <= weaponSetCapacity {
			eq.WeaponSet1 = append(eq.WeaponSet1, item)
			return true
		}
		if eq.UsedSlots(2)+slots <= weaponSetCapacity {
			eq.WeaponSet2 = append(eq.WeaponSet2, item)
			return true
		}
		// Last resort: displace the whole main set, shield included.
		eq.WeaponSet1 = []EquippedItem{item}
		eq.Shield1 = nil
		return true

	case classAccessory:
		if i := m.inOther(name); i >= 0 {
			eq.Other = append(eq.Other[:i], eq.Other[i+1:]...)
			return true
		}
		if len(eq.Other) >= otherSlotCapacity {
			return false
		}
		eq.Other = append(eq.Other, EquippedItem{Name: name, Slots: 1})
		return true
	}

	return false
}

func (m *SlotManager) removeFromSet(set int, name string) {
	eq := &m.draft.Equipped
	if s := eq.shield(set); s != nil && CleanName(s.Name) == CleanName(name) {
		if set == 2 {
			eq.Shield2 = nil
		} else {
			eq.Shield1 = nil
		}
		return
	}

	items := eq.weaponSet(set)
	for i, item := range items {
		if CleanName(item.Name) == CleanName(name) {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}
	if set == 2 {
		eq.WeaponSet2 = items
	} else {
		eq.WeaponSet1 = items
	}
}

// findVersatile locates an equipped versatile weapon by name.
func (m *SlotManager) findVersatile(name string) (set, index int) {
	eq := &m.draft.Equipped
	for set := 1; set <= 2; set++ {
		for i, item := range eq.weaponSet(set) {
			if CleanName(item.Name) == CleanName(name) && item.Versatile {
				return set, i
			}
		}
	}
	return 0, -1
}

// CanToggleVersatileMode reports whether flipping the wield mode is legal.
// Dropping to one hand always is; going two-handed needs the slot delta to
// fit in the current set or a free spot in the other set.
func (m *SlotManager) CanToggleVersatileMode(name string) bool {
	set, i := m.findVersatile(name)
	if i < 0 {
		return false
	}
	eq := &m.draft.Equipped
	item := eq.weaponSet(set)[i]
	if item.VersatileMode {
		return true
	}
	if eq.UsedSlots(set)-item.Slots+2 <= weaponSetCapacity {
		return true
	}
	other := 3 - set
	return eq.UsedSlots(other)+2 <= weaponSetCapacity
}

// ToggleVersatileMode flips a versatile weapon between one- and two-handed
// wielding, moving it to the other set when only that set has room. Rejected
// toggles are a no-op.
func (m *SlotManager) ToggleVersatileMode(name string) bool {
	set, i := m.findVersatile(name)
	if i < 0 {
		return false
	}

	eq := &m.draft.Equipped
	items := eq.weaponSet(set)
	item := items[i]

	if item.VersatileMode {
		items[i].VersatileMode = false
		items[i].Slots = 1
		return true
	}

	if eq.UsedSlots(set)-item.Slots+2 <= weaponSetCapacity {
		items[i].VersatileMode = true
		items[i].Slots = 2
		return true
	}

	other := 3 - set
	if eq.UsedSlots(other)+2 <= weaponSetCapacity {
		items = append(items[:i], items[i+1:]...)
		if set == 2 {
			eq.WeaponSet2 = items
		} else {
			eq.WeaponSet1 = items
		}
		moved := EquippedItem{Name: item.Name, Slots: 2, Versatile: true, VersatileMode: true}
		if other == 2 {
			eq.WeaponSet2 = append(eq.WeaponSet2, moved)
		} else {
			eq.WeaponSet1 = append(eq.WeaponSet1, moved)
		}
		return true
	}

	return false
}

// SetActiveSet switches which weapon set is active. Shields only contribute
// AC from the active set.
func (m *SlotManager) SetActiveSet(set int) bool {
	if set != 1 && set != 2 {
		return false
	}
	m.draft.Equipped.ActiveSet = set
	return true
}
