package entities

import (
	"fmt"
	"time"
)

// TrolleyID represents a unique trolley identifier
type TrolleyID string

// FertilityStatus represents the three-tier fertility classification of a trolley
type FertilityStatus int

const (
	StatusGood FertilityStatus = iota
	StatusWarn
	StatusBad
)

// String method for FertilityStatus enum
func (s FertilityStatus) String() string {
	switch s {
	case StatusGood:
		return "good"
	case StatusWarn:
		return "warn"
	case StatusBad:
		return "bad"
	default:
		return "unknown"
	}
}

// ParseFertilityStatus converts a status name into a FertilityStatus
func ParseFertilityStatus(s string) (FertilityStatus, error) {
	switch s {
	case "good":
		return StatusGood, nil
	case "warn":
		return StatusWarn, nil
	case "bad":
		return StatusBad, nil
	default:
		return 0, fmt.Errorf("invalid fertility status: %s (expected good, warn or bad)", s)
	}
}

// CandlingCounts holds the egg counts recorded when a trolley was candled
type CandlingCounts struct {
	Fertile   int
	Infertile int
	EarlyDead int
	LateDead  int
	Cracked   int
}

// Candled returns the number of eggs classified as viable or non-viable.
// Cracked eggs are never candled and are excluded.
func (c CandlingCounts) Candled() int {
	return c.Fertile + c.Infertile + c.EarlyDead + c.LateDead
}

// VaccineInfo describes the vaccine applied to the chicks of a trolley
type VaccineInfo struct {
	Name  string
	Batch string
}

// Trolley represents a raw per-trolley production record as supplied by the source
type Trolley struct {
	ID        TrolleyID
	HatcherID string
	// TransferredAt is nil when the source has no transfer timestamp
	TransferredAt *time.Time
	Candling      CandlingCounts
	// Capacity is the number of eggs set on the trolley; 0 means the configured default applies
	Capacity    int
	PreHatchRef *string
	Operator    string
	Vaccine     VaccineInfo
	// Status overrides the computed fertility tier when set
	Status *FertilityStatus
}

// NewTrolley creates a validated Trolley
func NewTrolley(id TrolleyID, hatcherID string, transferredAt *time.Time, candling CandlingCounts) (*Trolley, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("trolley id cannot be empty")
	}
	counts := map[string]int{
		"fertile":    candling.Fertile,
		"infertile":  candling.Infertile,
		"early dead": candling.EarlyDead,
		"late dead":  candling.LateDead,
		"cracked":    candling.Cracked,
	}
	for _, name := range []string{"fertile", "infertile", "early dead", "late dead", "cracked"} {
		if counts[name] < 0 {
			return nil, fmt.Errorf("%s count cannot be negative, got %d", name, counts[name])
		}
	}

	return &Trolley{
		ID:            id,
		HatcherID:     hatcherID,
		TransferredAt: transferredAt,
		Candling:      candling,
	}, nil
}

// Clone returns a deep copy of the trolley
func (t Trolley) Clone() Trolley {
	c := t
	if t.TransferredAt != nil {
		ts := *t.TransferredAt
		c.TransferredAt = &ts
	}
	if t.PreHatchRef != nil {
		ref := *t.PreHatchRef
		c.PreHatchRef = &ref
	}
	if t.Status != nil {
		status := *t.Status
		c.Status = &status
	}
	return c
}
