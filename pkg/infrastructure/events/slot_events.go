package events

import (
	"fmt"
	"time"

	"github.com/vsinha/hatchery/pkg/domain/entities"
)

const (
	SlotFilledEvent  = "slot.filled"
	SlotClearedEvent = "slot.cleared"
)

// SlotFilled records a trolley written into a rack slot
type SlotFilled struct {
	SlotNumber      int                      `json:"slot_number"`
	TrolleyID       entities.TrolleyID       `json:"trolley_id"`
	PreviousTrolley *entities.TrolleyID      `json:"previous_trolley_id,omitempty"`
	Status          entities.FertilityStatus `json:"status"`
	Fertile         int                      `json:"fertile"`
}

// SlotCleared records a rack slot being emptied
type SlotCleared struct {
	SlotNumber      int                `json:"slot_number"`
	PreviousTrolley entities.TrolleyID `json:"previous_trolley_id"`
}

// SlotStreamID names the stream holding one slot's history
func SlotStreamID(slotNumber int) string {
	return fmt.Sprintf("slot-%02d", slotNumber)
}

func NewSlotFilledEvent(slotNumber int, record entities.ClassifiedTrolley, previous *entities.TrolleyID, at time.Time) Event {
	return NewEvent(SlotFilledEvent, SlotStreamID(slotNumber), SlotFilled{
		SlotNumber:      slotNumber,
		TrolleyID:       record.ID,
		PreviousTrolley: previous,
		Status:          record.Status,
		Fertile:         record.Candling.Fertile,
	}, at)
}

func NewSlotClearedEvent(slotNumber int, previous entities.TrolleyID, at time.Time) Event {
	return NewEvent(SlotClearedEvent, SlotStreamID(slotNumber), SlotCleared{
		SlotNumber:      slotNumber,
		PreviousTrolley: previous,
	}, at)
}
