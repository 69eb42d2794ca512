package rulebook

// Catalog is the full set of static rule tables, loaded once at process start
// and never mutated. Lookups match the exact key or display name. A miss is
// not an error; callers fall back to a generic category so homebrew and
// malformed references stay usable.
type Catalog struct {
	Weapons     []Weapon
	Armor       []Armor
	Gear        []Gear
	Tools       []Tool
	Ammunition  []Ammunition
	Spells      []Spell
	Feats       []Feat
	Backgrounds []Background
	Races       []Race
	Classes     []Class
}

func (c *Catalog) FindWeapon(nameOrKey string) (*Weapon, bool) {
	for i := range c.Weapons {
		if c.Weapons[i].Key == nameOrKey || c.Weapons[i].Name == nameOrKey {
			return &c.Weapons[i], true
		}
	}
	return nil, false
}

func (c *Catalog) FindArmor(nameOrKey string) (*Armor, bool) {
	for i := range c.Armor {
		if c.Armor[i].Key == nameOrKey || c.Armor[i].Name == nameOrKey {
			return &c.Armor[i], true
		}
	}
	return nil, false
}

func (c *Catalog) FindGear(nameOrKey string) (*Gear, bool) {
	for i := range c.Gear {
		if c.Gear[i].Key == nameOrKey || c.Gear[i].Name == nameOrKey {
			return &c.Gear[i], true
		}
	}
	return nil, false
}

func (c *Catalog) FindTool(nameOrKey string) (*Tool, bool) {
	for i := range c.Tools {
		if c.Tools[i].Key == nameOrKey || c.Tools[i].Name == nameOrKey {
			return &c.Tools[i], true
		}
	}
	return nil, false
}

func (c *Catalog) FindAmmunition(nameOrKey string) (*Ammunition, bool) {
	for i := range c.Ammunition {
		if c.Ammunition[i].Key == nameOrKey || c.Ammunition[i].Name == nameOrKey {
			return &c.Ammunition[i], true
		}
	}
	return nil, false
}

func (c *Catalog) FindSpell(nameOrKey string) (*Spell, bool) {
	for i := range c.Spells {
		if c.Spells[i].Key == nameOrKey || c.Spells[i].Name == nameOrKey {
			return &c.Spells[i], true
		}
	}
	return nil, false
}

func (c *Catalog) FindFeat(nameOrKey string) (*Feat, bool) {
	for i := range c.Feats {
		if c.Feats[i].Key == nameOrKey || c.Feats[i].Name == nameOrKey {
			return &c.Feats[i], true
		}
	}
	return nil, false
}

func (c *Catalog) FindBackground(nameOrKey string) (*Background, bool) {
	for i := range c.Backgrounds {
		if c.Backgrounds[i].Key == nameOrKey || c.Backgrounds[i].Name == nameOrKey {
			return &c.Backgrounds[i], true
		}
	}
	return nil, false
}

func (c *Catalog) FindRace(nameOrKey string) (*Race, bool) {
	for i := range c.Races {
		if c.Races[i].Key == nameOrKey || c.Races[i].Name == nameOrKey {
			return &c.Races[i], true
		}
	}
	return nil, false
}

func (c *Catalog) FindClass(nameOrKey string) (*Class, bool) {
	for i := range c.Classes {
		if c.Classes[i].Key == nameOrKey || c.Classes[i].Name == nameOrKey {
			return &c.Classes[i], true
		}
	}
	return nil, false
}
