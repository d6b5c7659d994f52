package entities

import (
	"fmt"
	"time"
)

// ChickBoxTrolley is an output unit of chicks packed into boxes at a fixed density
type ChickBoxTrolley struct {
	ID     string
	Boxes  int
	Chicks int
	PerBox int
	Full   bool

	// Weak reference to the source trolley, used for lookup and display only
	SourceID            TrolleyID
	SourceTransferredAt *time.Time
	SourceSlotLabel     string
}

// BoxTrolleyID builds the identifier of the n-th (1-based) box-trolley produced from a source trolley
func BoxTrolleyID(source TrolleyID, n int) string {
	return fmt.Sprintf("%s-BT%02d", source, n)
}

// Capacity returns the number of chicks the box-trolley could hold at its density
func (b ChickBoxTrolley) Capacity(boxesPerTrolley int) int {
	return boxesPerTrolley * b.PerBox
}

// IsPlaceholder reports whether the record stands in for a trolley without fertile eggs
func (b ChickBoxTrolley) IsPlaceholder() bool {
	return b.Boxes == 0 && b.Chicks == 0
}
