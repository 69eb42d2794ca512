package rulebook

// SRD returns the built-in subset of the 5e SRD used by the demo binary and
// the test suite. The full catalogs are authored outside this package and can
// be swapped in wholesale; nothing here is load-bearing beyond the data.
func SRD() *Catalog {
	return &Catalog{
		Weapons:     srdWeapons,
		Armor:       srdArmor,
		Gear:        srdGear,
		Tools:       srdTools,
		Ammunition:  srdAmmunition,
		Spells:      srdSpells,
		Feats:       srdFeats,
		Backgrounds: srdBackgrounds,
		Races:       srdRaces,
		Classes:     srdClasses,
	}
}

var srdWeapons = []Weapon{
	{
		Key: "dagger", Name: "Dagger",
		Category: WeaponCategorySimple, Range: WeaponRangeMelee,
		Damage: "1d4", DamageType: "piercing",
		Properties: []string{PropertyFinesse, PropertyLight, PropertyThrown},
		Cost:       Cost{Quantity: 2, Unit: "gp"},
	},
	{
		Key: "handaxe", Name: "Handaxe",
		Category: WeaponCategorySimple, Range: WeaponRangeMelee,
		Damage: "1d6", DamageType: "slashing",
		Properties: []string{PropertyLight, PropertyThrown},
		Cost:       Cost{Quantity: 5, Unit: "gp"},
	},
	{
		Key: "spear", Name: "Spear",
		Category: WeaponCategorySimple, Range: WeaponRangeMelee,
		Damage: "1d6", DamageType: "piercing",
		Properties: []string{PropertyThrown, PropertyVersatile},
		Cost:       Cost{Quantity: 1, Unit: "gp"},
	},
	{
		Key: "mace", Name: "Mace",
		Category: WeaponCategorySimple, Range: WeaponRangeMelee,
		Damage: "1d6", DamageType: "bludgeoning",
		Cost:   Cost{Quantity: 5, Unit: "gp"},
	},
	{
		Key: "shortbow", Name: "Shortbow",
		Category: WeaponCategorySimple, Range: WeaponRangeRanged,
		Damage: "1d6", DamageType: "piercing",
		Properties: []string{PropertyAmmunition, PropertyTwoHanded},
		AmmoKind:   "arrow",
		Cost:       Cost{Quantity: 25, Unit: "gp"},
	},
	{
		Key: "longsword", Name: "Longsword",
		Category: WeaponCategoryMartial, Range: WeaponRangeMelee,
		Damage: "1d8", DamageType: "slashing",
		Properties: []string{PropertyVersatile},
		Cost:       Cost{Quantity: 15, Unit: "gp"},
	},
	{
		Key: "greatsword", Name: "Greatsword",
		Category: WeaponCategoryMartial, Range: WeaponRangeMelee,
		Damage: "2d6", DamageType: "slashing",
		Properties: []string{PropertyTwoHanded},
		Cost:       Cost{Quantity: 50, Unit: "gp"},
	},
	{
		Key: "rapier", Name: "Rapier",
		Category: WeaponCategoryMartial, Range: WeaponRangeMelee,
		Damage: "1d8", DamageType: "piercing",
		Properties: []string{PropertyFinesse},
		Cost:       Cost{Quantity: 25, Unit: "gp"},
	},
	{
		Key: "longbow", Name: "Longbow",
		Category: WeaponCategoryMartial, Range: WeaponRangeRanged,
		Damage: "1d8", DamageType: "piercing",
		Properties: []string{PropertyAmmunition, PropertyTwoHanded},
		AmmoKind:   "arrow",
		Cost:       Cost{Quantity: 50, Unit: "gp"},
	},
	{
		Key: "light-crossbow", Name: "Light Crossbow",
		Category: WeaponCategorySimple, Range: WeaponRangeRanged,
		Damage: "1d8", DamageType: "piercing",
		Properties: []string{PropertyAmmunition, PropertyTwoHanded},
		AmmoKind:   "bolt",
		Cost:       Cost{Quantity: 25, Unit: "gp"},
	},
}

var srdArmor = []Armor{
	{
		Key: "leather-armor", Name: "Leather Armor",
		Category: ArmorCategoryLight, BaseAC: 11, DexBonus: true,
		Cost: Cost{Quantity: 10, Unit: "gp"},
	},
	{
		Key: "studded-leather-armor", Name: "Studded Leather Armor",
		Category: ArmorCategoryLight, BaseAC: 12, DexBonus: true,
		Cost: Cost{Quantity: 45, Unit: "gp"},
	},
	{
		Key: "chain-shirt", Name: "Chain Shirt",
		Category: ArmorCategoryMedium, BaseAC: 13, DexBonus: true, MaxDexBonus: 2,
		Cost: Cost{Quantity: 50, Unit: "gp"},
	},
	{
		Key: "half-plate-armor", Name: "Half Plate Armor",
		Category: ArmorCategoryMedium, BaseAC: 15, DexBonus: true, MaxDexBonus: 2,
		StealthDisadvantage: true,
		Cost:                Cost{Quantity: 750, Unit: "gp"},
	},
	{
		Key: "chain-mail", Name: "Chain Mail",
		Category: ArmorCategoryHeavy, BaseAC: 16, StrMin: 13,
		StealthDisadvantage: true,
		Cost:                Cost{Quantity: 75, Unit: "gp"},
	},
	{
		Key: "plate-armor", Name: "Plate Armor",
		Category: ArmorCategoryHeavy, BaseAC: 18, StrMin: 15,
		StealthDisadvantage: true,
		Cost:                Cost{Quantity: 1500, Unit: "gp"},
	},
	{
		Key: "shield", Name: "Shield",
		Category: ArmorCategoryShield, BaseAC: 2,
		Cost: Cost{Quantity: 10, Unit: "gp"},
	},
}

var srdGear = []Gear{
	{Key: "rope-hempen", Name: "Hempen Rope", Cost: Cost{Quantity: 1, Unit: "gp"}},
	{Key: "torch", Name: "Torch", Cost: Cost{Quantity: 1, Unit: "cp"}},
	{Key: "rations", Name: "Rations", Cost: Cost{Quantity: 5, Unit: "sp"}},
	{Key: "healers-kit", Name: "Healer's Kit", Cost: Cost{Quantity: 5, Unit: "gp"}},
	{Key: "potion-of-healing", Name: "Potion of Healing", Cost: Cost{Quantity: 50, Unit: "gp"}},
	{Key: "lantern-hooded", Name: "Hooded Lantern", Cost: Cost{Quantity: 5, Unit: "gp"}},
	{Key: "waterskin", Name: "Waterskin", Cost: Cost{Quantity: 2, Unit: "sp"}},
}

var srdTools = []Tool{
	{Key: "thieves-tools", Name: "Thieves' Tools", Cost: Cost{Quantity: 25, Unit: "gp"}},
	{Key: "herbalism-kit", Name: "Herbalism Kit", Cost: Cost{Quantity: 5, Unit: "gp"}},
	{Key: "smiths-tools", Name: "Smith's Tools", Cost: Cost{Quantity: 20, Unit: "gp"}},
	{Key: "dice-set", Name: "Dice Set", Cost: Cost{Quantity: 1, Unit: "sp"}},
}

var srdAmmunition = []Ammunition{
	{Key: "arrow", Name: "Arrow", Kind: "arrow", Cost: Cost{Quantity: 5, Unit: "cp"}},
	{Key: "crossbow-bolt", Name: "Crossbow Bolt", Kind: "bolt", Cost: Cost{Quantity: 5, Unit: "cp"}},
	{Key: "sling-bullet", Name: "Sling Bullet", Kind: "bullet", Cost: Cost{Quantity: 1, Unit: "cp"}},
}

var srdSpells = []Spell{
	{Key: "fire-bolt", Name: "Fire Bolt", Level: 0, School: "evocation", Range: "120 feet", DamageDice: "1d10"},
	{Key: "sacred-flame", Name: "Sacred Flame", Level: 0, School: "evocation", Range: "60 feet", DamageDice: "1d8", SaveAbility: AbilityDexterity},
	{Key: "shield", Name: "Shield", Level: 1, School: "abjuration", Range: "self"},
	{Key: "magic-missile", Name: "Magic Missile", Level: 1, School: "evocation", Range: "120 feet", DamageDice: "3d4"},
	{Key: "cure-wounds", Name: "Cure Wounds", Level: 1, School: "evocation", Range: "touch", HealDice: "1d8"},
	{Key: "scorching-ray", Name: "Scorching Ray", Level: 2, School: "evocation", Range: "120 feet", DamageDice: "2d6"},
	{Key: "fireball", Name: "Fireball", Level: 3, School: "evocation", Range: "150 feet", DamageDice: "8d6", SaveAbility: AbilityDexterity},
	{Key: "guiding-bolt", Name: "Guiding Bolt", Level: 1, School: "evocation", Range: "120 feet", DamageDice: "4d6"},
}

var srdFeats = []Feat{
	{
		Key: "alert", Name: "Alert",
		Grants: Grants{InitiativeBonus: 5},
	},
	{
		Key: "mobile", Name: "Mobile",
		Grants: Grants{SpeedBonus: 10},
	},
	{
		Key: "skilled", Name: "Skilled",
		Choices: []ChoiceSpec{
			{Key: "feat:skilled", Kind: ChoiceKindSkills, Count: 3},
		},
	},
	{
		Key: "athlete", Name: "Athlete",
		Choices: []ChoiceSpec{
			{Key: "feat:athlete", Kind: ChoiceKindAbilities, Count: 1, Options: []string{"str", "dex"}, MaxSameChoice: 1},
		},
	},
	{
		Key: "linguist", Name: "Linguist",
		Grants: Grants{AbilityBonuses: map[Ability]int{AbilityIntelligence: 1}},
		Choices: []ChoiceSpec{
			{Key: "feat:linguist", Kind: ChoiceKindLanguages, Count: 3},
		},
	},
}

var srdBackgrounds = []Background{
	{
		Key: "soldier", Name: "Soldier",
		Grants: Grants{
			Skills:    []string{"athletics", "intimidation"},
			Tools:     []string{"dice-set"},
			Languages: nil,
		},
		Choices: []ChoiceSpec{
			{Key: "background:language", Kind: ChoiceKindLanguages, Count: 1},
		},
	},
	{
		Key: "sage", Name: "Sage",
		Grants: Grants{
			Skills: []string{"arcana", "history"},
		},
		Choices: []ChoiceSpec{
			{Key: "background:language", Kind: ChoiceKindLanguages, Count: 2},
		},
	},
	{
		Key: "criminal", Name: "Criminal",
		Grants: Grants{
			Skills: []string{"deception", "stealth"},
			Tools:  []string{"thieves-tools", "dice-set"},
		},
	},
}

var srdRaces = []Race{
	{
		Key: "human", Name: "Human", Speed: 30,
		Grants: Grants{
			AbilityBonuses: map[Ability]int{
				AbilityStrength: 1, AbilityDexterity: 1, AbilityConstitution: 1,
				AbilityIntelligence: 1, AbilityWisdom: 1, AbilityCharisma: 1,
			},
			Languages: []string{"common"},
		},
		Choices: []ChoiceSpec{
			{Key: "race:language", Kind: ChoiceKindLanguages, Count: 1},
		},
	},
	{
		Key: "half-elf", Name: "Half-Elf", Speed: 30,
		Grants: Grants{
			AbilityBonuses: map[Ability]int{AbilityCharisma: 2},
			Languages:      []string{"common", "elvish"},
		},
		Choices: []ChoiceSpec{
			{Key: "race:ability", Kind: ChoiceKindAbilities, Count: 2,
				Options:       []string{"str", "dex", "con", "int", "wis"},
				MaxSameChoice: 1},
			{Key: "race:skill", Kind: ChoiceKindSkills, Count: 2},
		},
	},
	{
		Key: "dwarf", Name: "Dwarf", Speed: 25,
		Grants: Grants{
			AbilityBonuses:      map[Ability]int{AbilityConstitution: 2},
			Languages:           []string{"common", "dwarvish"},
			WeaponProficiencies: []string{"handaxe", "warhammer"},
		},
		Subraces: []Subrace{
			{
				Key: "hill-dwarf", Name: "Hill Dwarf",
				Grants: Grants{AbilityBonuses: map[Ability]int{AbilityWisdom: 1}},
			},
			{
				Key: "mountain-dwarf", Name: "Mountain Dwarf",
				Grants: Grants{
					AbilityBonuses:     map[Ability]int{AbilityStrength: 2},
					ArmorProficiencies: []string{"light", "medium"},
				},
			},
		},
	},
	{
		Key: "elf", Name: "Elf", Speed: 30,
		Grants: Grants{
			AbilityBonuses:      map[Ability]int{AbilityDexterity: 2},
			Skills:              []string{"perception"},
			Languages:           []string{"common", "elvish"},
			WeaponProficiencies: []string{"longsword", "shortbow", "longbow"},
		},
		Subraces: []Subrace{
			{
				Key: "high-elf", Name: "High Elf",
				Grants: Grants{
					AbilityBonuses: map[Ability]int{AbilityIntelligence: 1},
					Spells:         []string{"fire-bolt"},
				},
				Choices: []ChoiceSpec{
					{Key: "subrace:language", Kind: ChoiceKindLanguages, Count: 1},
				},
			},
		},
	},
}

// fullCasterProgression covers levels 1-5; higher levels are authored with the
// full catalogs.
var fullCasterProgression = map[int][]int{
	1: {2},
	2: {3},
	3: {4, 2},
	4: {4, 3},
	5: {4, 3, 2},
}

var srdClasses = []Class{
	{
		Key: "fighter", Name: "Fighter", HitDie: 10,
		Grants: Grants{
			SavingThrows:        []Ability{AbilityStrength, AbilityConstitution},
			WeaponProficiencies: []string{"simple-weapons", "martial-weapons"},
			ArmorProficiencies:  []string{"light", "medium", "heavy", "shield"},
		},
		Choices: []ChoiceSpec{
			{Key: "class:skill", Kind: ChoiceKindSkills, Count: 2,
				Options: []string{"acrobatics", "animal-handling", "athletics", "history",
					"insight", "intimidation", "perception", "survival"}},
		},
		Levels: []LevelGrant{
			// Each slot takes either the ability increase or a feat.
			{Level: 4, Choices: []ChoiceSpec{
				{Key: "class:asi:4", Kind: ChoiceKindAbilities, Count: 2, MaxSameChoice: 2},
				{Key: "class:feat:4", Kind: ChoiceKindFeats, Count: 1},
			}},
			{Level: 6, Choices: []ChoiceSpec{
				{Key: "class:asi:6", Kind: ChoiceKindAbilities, Count: 2, MaxSameChoice: 2},
				{Key: "class:feat:6", Kind: ChoiceKindFeats, Count: 1},
			}},
		},
		Subclasses: []Subclass{
			{Key: "champion", Name: "Champion"},
		},
	},
	{
		Key: "barbarian", Name: "Barbarian", HitDie: 12,
		Grants: Grants{
			SavingThrows:        []Ability{AbilityStrength, AbilityConstitution},
			WeaponProficiencies: []string{"simple-weapons", "martial-weapons"},
			ArmorProficiencies:  []string{"light", "medium", "shield"},
		},
		Choices: []ChoiceSpec{
			{Key: "class:skill", Kind: ChoiceKindSkills, Count: 2,
				Options: []string{"animal-handling", "athletics", "intimidation",
					"nature", "perception", "survival"}},
		},
		Levels: []LevelGrant{
			{Level: 20, Grants: Grants{
				AbilityBonuses: map[Ability]int{AbilityStrength: 4, AbilityConstitution: 4},
				AbilityMax:     map[Ability]int{AbilityStrength: 24, AbilityConstitution: 24},
			}},
		},
	},
	{
		Key: "rogue", Name: "Rogue", HitDie: 8,
		Grants: Grants{
			SavingThrows:        []Ability{AbilityDexterity, AbilityIntelligence},
			WeaponProficiencies: []string{"simple-weapons", "rapier", "longsword"},
			ArmorProficiencies:  []string{"light"},
			Tools:               []string{"thieves-tools"},
		},
		Choices: []ChoiceSpec{
			{Key: "class:skill", Kind: ChoiceKindSkills, Count: 4,
				Options: []string{"acrobatics", "athletics", "deception", "insight",
					"intimidation", "investigation", "perception", "performance",
					"persuasion", "sleight-of-hand", "stealth"}},
		},
	},
	{
		Key: "wizard", Name: "Wizard", HitDie: 6,
		Grants: Grants{
			SavingThrows:        []Ability{AbilityIntelligence, AbilityWisdom},
			WeaponProficiencies: []string{"dagger", "light-crossbow"},
		},
		Choices: []ChoiceSpec{
			{Key: "class:skill", Kind: ChoiceKindSkills, Count: 2,
				Options: []string{"arcana", "history", "insight", "investigation",
					"medicine", "religion"}},
			{Key: "class:cantrip", Kind: ChoiceKindSpells, Count: 2,
				Options: []string{"fire-bolt", "magic-missile", "shield"}},
		},
		Spellcasting: &Spellcasting{
			Ability:         AbilityIntelligence,
			PreparedFormula: "max(1, level + int)",
			Progression:     fullCasterProgression,
		},
	},
	{
		Key: "cleric", Name: "Cleric", HitDie: 8,
		Grants: Grants{
			SavingThrows:        []Ability{AbilityWisdom, AbilityCharisma},
			WeaponProficiencies: []string{"simple-weapons"},
			ArmorProficiencies:  []string{"light", "medium", "shield"},
		},
		Choices: []ChoiceSpec{
			{Key: "class:skill", Kind: ChoiceKindSkills, Count: 2,
				Options: []string{"history", "insight", "medicine", "persuasion", "religion"}},
		},
		Spellcasting: &Spellcasting{
			Ability:         AbilityWisdom,
			PreparedFormula: "max(1, level + wis)",
			Progression:     fullCasterProgression,
		},
		Subclasses: []Subclass{
			{
				Key: "life-domain", Name: "Life Domain",
				Levels: []LevelGrant{
					{Level: 1, Grants: Grants{
						ArmorProficiencies: []string{"heavy"},
						Spells:             []string{"cure-wounds"},
					}},
				},
			},
		},
	},
}
