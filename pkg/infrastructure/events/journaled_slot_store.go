package events

import (
	"fmt"
	"time"

	"github.com/vsinha/hatchery/pkg/domain/entities"
	"github.com/vsinha/hatchery/pkg/domain/repositories"
)

// JournaledSlotStore decorates a SlotStore and appends an event for every
// change of slot occupancy. Writes that leave a slot unchanged are not journaled.
type JournaledSlotStore struct {
	repositories.SlotStore
	events EventStore
	now    func() time.Time
}

var _ repositories.SlotStore = (*JournaledSlotStore)(nil)

// NewJournaledSlotStore wraps store; a nil clock uses time.Now
func NewJournaledSlotStore(store repositories.SlotStore, events EventStore, now func() time.Time) *JournaledSlotStore {
	if now == nil {
		now = time.Now
	}
	return &JournaledSlotStore{SlotStore: store, events: events, now: now}
}

// SetSlot writes through to the wrapped store, then journals the change
func (s *JournaledSlotStore) SetSlot(slotNumber int, record *entities.ClassifiedTrolley) error {
	previous, err := s.SlotStore.GetSlot(slotNumber)
	if err != nil {
		return err
	}
	if err := s.SlotStore.SetSlot(slotNumber, record); err != nil {
		return err
	}

	var event Event
	switch {
	case record == nil && previous == nil:
		return nil
	case record == nil:
		event = NewSlotClearedEvent(slotNumber, previous.ID, s.now())
	case previous != nil && previous.ID == record.ID:
		return nil
	default:
		var previousID *entities.TrolleyID
		if previous != nil {
			id := previous.ID
			previousID = &id
		}
		event = NewSlotFilledEvent(slotNumber, *record, previousID, s.now())
	}

	if err := s.events.AppendEvent(event.StreamID(), event); err != nil {
		return fmt.Errorf("failed to journal slot %d: %w", slotNumber, err)
	}
	return nil
}

// History returns the journaled changes of one slot, oldest first
func (s *JournaledSlotStore) History(slotNumber int) ([]Event, error) {
	return s.events.ReadEvents(SlotStreamID(slotNumber), 1)
}
