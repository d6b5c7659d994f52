package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/hatchery/pkg/domain/entities"
	"github.com/vsinha/hatchery/pkg/domain/repositories"
)

// SlotStore holds the trolley occupying each rack slot behind a single-writer lock
type SlotStore struct {
	layout entities.SlotLayout
	slots  map[int]entities.ClassifiedTrolley
	mutex  sync.RWMutex
}

// NewSlotStore creates an empty store for the given rack layout
func NewSlotStore(layout entities.SlotLayout) *SlotStore {
	return &SlotStore{
		layout: layout,
		slots:  make(map[int]entities.ClassifiedTrolley, len(layout)),
	}
}

// Verify interface compliance
var _ repositories.SlotStore = (*SlotStore)(nil)

// GetSlot returns a clone of the trolley in the slot, or nil when empty
func (s *SlotStore) GetSlot(slotNumber int) (*entities.ClassifiedTrolley, error) {
	if !s.layout.Contains(slotNumber) {
		return nil, fmt.Errorf("get slot %d: %w", slotNumber, repositories.ErrSlotOutOfRange)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.slots[slotNumber]
	if !exists {
		return nil, nil
	}
	clone := record.Clone()
	return &clone, nil
}

// SetSlot replaces the slot's trolley with a clone of record; nil clears the slot
func (s *SlotStore) SetSlot(slotNumber int, record *entities.ClassifiedTrolley) error {
	if !s.layout.Contains(slotNumber) {
		return fmt.Errorf("set slot %d: %w", slotNumber, repositories.ErrSlotOutOfRange)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if record == nil {
		delete(s.slots, slotNumber)
		return nil
	}
	s.slots[slotNumber] = record.Clone()
	return nil
}

// GetAllSlots returns clones of every occupied slot keyed by slot number
func (s *SlotStore) GetAllSlots() (map[int]*entities.ClassifiedTrolley, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	slots := make(map[int]*entities.ClassifiedTrolley, len(s.slots))
	for number, record := range s.slots {
		clone := record.Clone()
		slots[number] = &clone
	}
	return slots, nil
}
