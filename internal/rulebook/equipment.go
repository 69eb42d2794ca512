package rulebook

// Cost is the catalog price of an item in a single denomination.
type Cost struct {
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"` // pp, gp, ep, sp, cp
}

type WeaponCategory string

const (
	WeaponCategorySimple  WeaponCategory = "simple"
	WeaponCategoryMartial WeaponCategory = "martial"
)

// ProficiencyKey maps a weapon category to the proficiency key that covers it.
func (c WeaponCategory) ProficiencyKey() string {
	switch c {
	case WeaponCategorySimple:
		return "simple-weapons"
	case WeaponCategoryMartial:
		return "martial-weapons"
	}
	return ""
}

type WeaponRange string

const (
	WeaponRangeMelee  WeaponRange = "melee"
	WeaponRangeRanged WeaponRange = "ranged"
)

// Weapon property keys as they appear in the catalog.
const (
	PropertyTwoHanded  = "two-handed"
	PropertyVersatile  = "versatile"
	PropertyThrown     = "thrown"
	PropertyFinesse    = "finesse"
	PropertyLight      = "light"
	PropertyAmmunition = "ammunition"
)

type Weapon struct {
	Key        string         `json:"key"`
	Name       string         `json:"name"`
	Category   WeaponCategory `json:"weapon_category"`
	Range      WeaponRange    `json:"weapon_range"`
	Damage     string         `json:"damage"` // dice expression, e.g. "1d8"
	DamageType string         `json:"damage_type"`
	Properties []string       `json:"properties"`
	AmmoKind   string         `json:"ammo_kind"` // e.g. "arrow"; set for ammunition weapons
	Cost       Cost           `json:"cost"`
}

func (w *Weapon) HasProperty(prop string) bool {
	for _, p := range w.Properties {
		if p == prop {
			return true
		}
	}
	return false
}

func (w *Weapon) IsTwoHanded() bool { return w.HasProperty(PropertyTwoHanded) }

func (w *Weapon) IsVersatile() bool { return w.HasProperty(PropertyVersatile) }

func (w *Weapon) IsThrown() bool { return w.HasProperty(PropertyThrown) }

func (w *Weapon) UsesAmmunition() bool { return w.HasProperty(PropertyAmmunition) }

func (w *Weapon) IsRanged() bool { return w.Range == WeaponRangeRanged }

func (w *Weapon) IsMelee() bool { return w.Range == WeaponRangeMelee }

type ArmorCategory string

const (
	ArmorCategoryLight  ArmorCategory = "light"
	ArmorCategoryMedium ArmorCategory = "medium"
	ArmorCategoryHeavy  ArmorCategory = "heavy"
	ArmorCategoryShield ArmorCategory = "shield"
)

type Armor struct {
	Key                 string        `json:"key"`
	Name                string        `json:"name"`
	Category            ArmorCategory `json:"armor_category"`
	BaseAC              int           `json:"armor_class"`
	DexBonus            bool          `json:"dex_bonus"`
	MaxDexBonus         int           `json:"max_dex_bonus"` // 0 means no cap when DexBonus is true
	StrMin              int           `json:"str_minimum"`
	StealthDisadvantage bool          `json:"stealth_disadvantage"`
	Cost                Cost          `json:"cost"`
}

type Gear struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Cost Cost   `json:"cost"`
}

type Tool struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Cost Cost   `json:"cost"`
}

type Ammunition struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Kind string `json:"kind"` // matched against Weapon.AmmoKind
	Cost Cost   `json:"cost"`
}
