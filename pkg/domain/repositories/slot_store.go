package repositories

import (
	"errors"

	"github.com/vsinha/hatchery/pkg/domain/entities"
)

// ErrSlotOutOfRange is returned when a slot number does not address a rack position
var ErrSlotOutOfRange = errors.New("slot number out of range")

// SlotStore holds the trolley currently occupying each rack slot.
// Reads return clones; writes replace a single slot (last write wins).
type SlotStore interface {
	// GetSlot returns nil without error when the slot is empty
	GetSlot(slotNumber int) (*entities.ClassifiedTrolley, error)
	// SetSlot stores a copy of record in the slot; a nil record clears it
	SetSlot(slotNumber int, record *entities.ClassifiedTrolley) error
	GetAllSlots() (map[int]*entities.ClassifiedTrolley, error)
}
