package services

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/hatchery/pkg/domain/entities"
)

const (
	// DefaultBadBelowPercent is the fertility percentage under which a trolley is bad
	DefaultBadBelowPercent = 82
	// DefaultWarnBelowPercent is the fertility percentage under which a trolley needs attention
	DefaultWarnBelowPercent = 90
	// DefaultTrolleyCapacity is the number of eggs set on a trolley when the source omits it
	DefaultTrolleyCapacity = 3520
)

var hundred = decimal.NewFromInt(100)

// FertilityClassifier derives fertility figures and a status tier from candling counts
type FertilityClassifier struct {
	badBelow        decimal.Decimal
	warnBelow       decimal.Decimal
	defaultCapacity int
}

// NewFertilityClassifier creates a classifier with the default thresholds
func NewFertilityClassifier() *FertilityClassifier {
	return NewFertilityClassifierWithThresholds(DefaultBadBelowPercent, DefaultWarnBelowPercent, DefaultTrolleyCapacity)
}

// NewFertilityClassifierWithThresholds creates a classifier with custom thresholds (in percent)
func NewFertilityClassifierWithThresholds(badBelow, warnBelow float64, defaultCapacity int) *FertilityClassifier {
	return &FertilityClassifier{
		badBelow:        decimal.NewFromFloat(badBelow),
		warnBelow:       decimal.NewFromFloat(warnBelow),
		defaultCapacity: defaultCapacity,
	}
}

// Classify derives the ClassifiedTrolley for a raw trolley. It never fails:
// a trolley with no candling data is treated as 0% fertile.
func (fc *FertilityClassifier) Classify(trolley entities.Trolley) entities.ClassifiedTrolley {
	fertile := trolley.Candling.Fertile
	candled := trolley.Candling.Candled()

	ratio := decimal.Zero
	if candled > 0 {
		ratio = decimal.NewFromInt(int64(fertile)).Div(decimal.NewFromInt(int64(candled)))
	}
	percent := ratio.Mul(hundred)

	status := fc.StatusFor(percent)
	if trolley.Status != nil {
		status = *trolley.Status
	}

	capacity := trolley.Capacity
	if capacity <= 0 {
		capacity = fc.defaultCapacity
	}
	shortfall := capacity - fertile
	if shortfall < 0 {
		shortfall = 0
	}
	shortfallPercent := decimal.Zero
	if capacity > 0 {
		shortfallPercent = decimal.NewFromInt(int64(shortfall)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(capacity))).
			Round(2)
	}

	return entities.ClassifiedTrolley{
		Trolley:          trolley.Clone(),
		Candled:          candled,
		FertilityRatio:   ratio,
		FertilityPercent: percent.Round(2),
		Status:           status,
		ViableShortfall:  shortfall,
		ShortfallPercent: shortfallPercent,
	}
}

// StatusFor maps a fertility percentage onto its status tier
func (fc *FertilityClassifier) StatusFor(percent decimal.Decimal) entities.FertilityStatus {
	switch {
	case percent.LessThan(fc.badBelow):
		return entities.StatusBad
	case percent.LessThan(fc.warnBelow):
		return entities.StatusWarn
	default:
		return entities.StatusGood
	}
}
