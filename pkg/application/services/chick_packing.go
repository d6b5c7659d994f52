package services

import (
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/vsinha/hatchery/pkg/domain/entities"
)

// PackingConfig holds the box-trolley constants of the packing engine
type PackingConfig struct {
	// BoxesPerTrolley is the number of chick boxes on a full box-trolley
	BoxesPerTrolley int
	// StandardDensity is the default number of chicks per box
	StandardDensity int
	// ReducedDensity is used for every ReducedEvery-th box-trolley produced in a run
	ReducedDensity int
	ReducedEvery   int
}

// DefaultPackingConfig returns 32 boxes per trolley, 90 chicks per box and a 70-chick box-trolley every sixth
func DefaultPackingConfig() PackingConfig {
	return PackingConfig{
		BoxesPerTrolley: 32,
		StandardDensity: 90,
		ReducedDensity:  70,
		ReducedEvery:    6,
	}
}

// Validate rejects constants that would stall or corrupt the packing loop
func (c PackingConfig) Validate() error {
	if c.BoxesPerTrolley <= 0 {
		return fmt.Errorf("boxes per trolley must be positive, got %d", c.BoxesPerTrolley)
	}
	if c.StandardDensity <= 0 {
		return fmt.Errorf("standard density must be positive, got %d", c.StandardDensity)
	}
	if c.ReducedDensity <= 0 {
		return fmt.Errorf("reduced density must be positive, got %d", c.ReducedDensity)
	}
	if c.ReducedEvery < 1 {
		return fmt.Errorf("reduced density interval must be at least 1, got %d", c.ReducedEvery)
	}
	return nil
}

// ChickPacker repackages fertile egg totals into fixed-capacity box-trolleys
type ChickPacker struct {
	config PackingConfig
}

// NewChickPacker creates a packer, failing fast on invalid constants
func NewChickPacker(config PackingConfig) (*ChickPacker, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid packing config: %w", err)
	}
	return &ChickPacker{config: config}, nil
}

// Config returns the packer's constants
func (p *ChickPacker) Config() PackingConfig {
	return p.config
}

// PackSource is the part of a slot assignment the packer reads
type PackSource struct {
	ID            entities.TrolleyID
	Fertile       int
	TransferredAt *time.Time
	SlotLabel     string
}

// SourceFromAssignment extracts the packing input of a slot assignment
func SourceFromAssignment(a entities.SlotAssignment) PackSource {
	return PackSource{
		ID:            a.Trolley.ID,
		Fertile:       a.Trolley.Candling.Fertile,
		TransferredAt: a.Trolley.TransferredAt,
		SlotLabel:     a.DisplayLabel,
	}
}

// PackingRun carries the density counter shared by every box-trolley produced in one run
type PackingRun struct {
	config  PackingConfig
	counter int
}

// NewRun starts a packing run with the density counter at zero
func (p *ChickPacker) NewRun() *PackingRun {
	return &PackingRun{config: p.config}
}

// Produced returns the number of box-trolleys emitted so far in the run
func (r *PackingRun) Produced() int {
	return r.counter
}

// nextDensity advances the run counter and returns the density of the next box-trolley
func (r *PackingRun) nextDensity() int {
	r.counter++
	if r.counter%r.config.ReducedEvery == 0 {
		return r.config.ReducedDensity
	}
	return r.config.StandardDensity
}

// Pack lazily yields the box-trolleys for one source. The chicks across all
// yielded records sum to the source's fertile count; a source without fertile
// eggs yields a single empty placeholder.
func (r *PackingRun) Pack(src PackSource) iter.Seq[entities.ChickBoxTrolley] {
	return func(yield func(entities.ChickBoxTrolley) bool) {
		boxesPerTrolley := r.config.BoxesPerTrolley
		n := 0
		emit := func(boxes, chicks, perBox int) bool {
			n++
			return yield(entities.ChickBoxTrolley{
				ID:                  entities.BoxTrolleyID(src.ID, n),
				Boxes:               boxes,
				Chicks:              chicks,
				PerBox:              perBox,
				Full:                boxes == boxesPerTrolley && chicks == boxes*perBox,
				SourceID:            src.ID,
				SourceTransferredAt: src.TransferredAt,
				SourceSlotLabel:     src.SlotLabel,
			})
		}

		remaining := src.Fertile
		if remaining <= 0 {
			emit(0, 0, r.nextDensity())
			return
		}

		for remaining > 0 {
			perBox := r.nextDensity()
			capacity := boxesPerTrolley * perBox
			// Guard against a zero density stalling the loop
			if capacity <= 0 {
				return
			}

			var boxes, chicks int
			if remaining >= capacity {
				boxes, chicks = boxesPerTrolley, capacity
			} else {
				boxes = min(boxesPerTrolley, ceilDiv(remaining, perBox))
				chicks = min(remaining, boxes*perBox)
			}
			if chicks <= 0 {
				return
			}
			remaining -= chicks

			if !emit(boxes, chicks, perBox) {
				return
			}
		}
	}
}

// PackChicks packs every eligible assignment in order within a single run and
// returns the box-trolleys sorted most recent source first, ties by record id descending
func (p *ChickPacker) PackChicks(assignments []entities.SlotAssignment, eligible func(entities.ClassifiedTrolley) bool) []entities.ChickBoxTrolley {
	run := p.NewRun()
	var boxTrolleys []entities.ChickBoxTrolley

	for _, assignment := range assignments {
		if eligible != nil && !eligible(assignment.Trolley) {
			continue
		}
		for bt := range run.Pack(SourceFromAssignment(assignment)) {
			boxTrolleys = append(boxTrolleys, bt)
		}
	}

	sort.SliceStable(boxTrolleys, func(i, j int) bool {
		return moreRecent(
			boxTrolleys[i].SourceTransferredAt, boxTrolleys[i].ID,
			boxTrolleys[j].SourceTransferredAt, boxTrolleys[j].ID,
		)
	})

	return boxTrolleys
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
