package entities

import "github.com/shopspring/decimal"

// ClassifiedTrolley is a Trolley enriched with fertility figures derived from its candling counts.
// It is recomputed on every read and never stored independently of the raw trolley.
type ClassifiedTrolley struct {
	Trolley

	Candled int
	// FertilityRatio is fertile / candled, or zero when nothing was candled
	FertilityRatio   decimal.Decimal
	FertilityPercent decimal.Decimal
	Status           FertilityStatus
	// ViableShortfall is capacity minus fertile, floored at zero
	ViableShortfall  int
	ShortfallPercent decimal.Decimal
}

// Clone returns a deep copy of the classified trolley
func (c ClassifiedTrolley) Clone() ClassifiedTrolley {
	cp := c
	cp.Trolley = c.Trolley.Clone()
	return cp
}
