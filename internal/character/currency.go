package character

import (
	"log"

	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
	"github.com/KirkDiggler/sheet-engine/internal/rulebook"
)

// Copper values of each coin denomination.
const (
	CopperPerPlatinum = 1000
	CopperPerGold     = 100
	CopperPerElectrum = 50
	CopperPerSilver   = 10
)

// Purse holds coin counts per denomination. Counts are never negative.
type Purse struct {
	Platinum int `json:"platinum"`
	Gold     int `json:"gold"`
	Electrum int `json:"electrum"`
	Silver   int `json:"silver"`
	Copper   int `json:"copper"`
}

// TotalCopper is the purse's total value in copper pieces.
func (p *Purse) TotalCopper() int {
	return p.Platinum*CopperPerPlatinum +
		p.Gold*CopperPerGold +
		p.Electrum*CopperPerElectrum +
		p.Silver*CopperPerSilver +
		p.Copper
}

// ToCopper converts an amount in the given coin unit to copper pieces.
// Unknown units are treated as copper.
func ToCopper(amount int, unit string) int {
	switch unit {
	case "pp":
		return amount * CopperPerPlatinum
	case "gp":
		return amount * CopperPerGold
	case "ep":
		return amount * CopperPerElectrum
	case "sp":
		return amount * CopperPerSilver
	case "cp", "":
		return amount
	default:
		log.Printf("unknown coin unit %q, treating as copper", unit)
		return amount
	}
}

// Pay removes cost copper pieces worth of coins from the purse, breaking
// larger coins as needed and returning change in gold, silver, and copper.
// When the purse cannot cover the cost nothing changes and an
// insufficient-funds error reports the shortfall in whole gold pieces.
func (p *Purse) Pay(cost int) error {
	if cost <= 0 {
		return nil
	}

	total := p.TotalCopper()
	if total < cost {
		shortfall := (cost - total + CopperPerGold - 1) / CopperPerGold
		return dnderr.InsufficientFundsf("need %d more gold", shortfall).
			WithMeta("cost_copper", cost).
			WithMeta("have_copper", total)
	}

	p.convertForPayment(cost)

	// Spend smallest coins first so large coins survive where possible.
	remaining := cost
	remaining -= spendCoins(&p.Copper, remaining, 1)
	remaining -= spendCoins(&p.Silver, remaining, CopperPerSilver)
	remaining -= spendCoins(&p.Electrum, remaining, CopperPerElectrum)
	remaining -= spendCoins(&p.Gold, remaining, CopperPerGold)
	remaining -= spendCoins(&p.Platinum, remaining, CopperPerPlatinum)

	// Overpayment comes back as change. Change never includes electrum
	// or platinum.
	if remaining < 0 {
		change := -remaining
		p.Gold += change / CopperPerGold
		change %= CopperPerGold
		p.Silver += change / CopperPerSilver
		p.Copper += change % CopperPerSilver
	}

	return nil
}

// convertForPayment breaks platinum into gold, gold into silver, and silver
// into copper until the smaller coins cover the cost. Electrum is never
// created; existing electrum is spent as-is.
func (p *Purse) convertForPayment(cost int) {
	for p.Platinum > 0 && p.TotalCopper()-p.Platinum*CopperPerPlatinum < cost {
		p.Platinum--
		p.Gold += 10
	}
	for p.Gold > 0 && p.Silver*CopperPerSilver+p.Copper < cost {
		p.Gold--
		p.Silver += 10
	}
	for p.Silver > 0 && p.Copper < cost {
		p.Silver--
		p.Copper += 10
	}
}

// spendCoins removes up to enough coins of one denomination to cover
// remaining copper, returning the value spent. The last coin may overpay.
func spendCoins(count *int, remaining, value int) int {
	if remaining <= 0 || *count == 0 {
		return 0
	}
	need := (remaining + value - 1) / value
	if need > *count {
		need = *count
	}
	*count -= need
	return need * value
}

// Purchase buys qty of a catalog item, paying its listed cost and adding the
// purchased stack to the backpack. The purchase is all or nothing. Items
// without a catalog price are free.
func (d *Draft) Purchase(catalog *rulebook.Catalog, name string, qty int) error {
	if qty < 1 {
		return dnderr.InvalidArgumentf("quantity must be positive, got %d", qty)
	}

	cost, displayName := lookupCost(catalog, name)
	if err := d.Purse.Pay(cost * qty); err != nil {
		return dnderr.Wrapf(err, "purchasing %dx %s", qty, displayName)
	}
	d.AddStack(displayName, qty)
	return nil
}

// lookupCost finds an item's unit cost in copper across the equipment tables
// and resolves its canonical display name. Misses cost nothing.
func lookupCost(catalog *rulebook.Catalog, name string) (int, string) {
	if weapon, ok := catalog.FindWeapon(name); ok {
		return ToCopper(weapon.Cost.Quantity, weapon.Cost.Unit), weapon.Name
	}
	if armor, ok := catalog.FindArmor(name); ok {
		return ToCopper(armor.Cost.Quantity, armor.Cost.Unit), armor.Name
	}
	if gear, ok := catalog.FindGear(name); ok {
		return ToCopper(gear.Cost.Quantity, gear.Cost.Unit), gear.Name
	}
	if tool, ok := catalog.FindTool(name); ok {
		return ToCopper(tool.Cost.Quantity, tool.Cost.Unit), tool.Name
	}
	if ammo, ok := catalog.FindAmmunition(name); ok {
		return ToCopper(ammo.Cost.Quantity, ammo.Cost.Unit), ammo.Name
	}
	log.Printf("item %q has no catalog price, purchasing free", name)
	return 0, name
}
