package dto

import (
	"time"

	"github.com/vsinha/hatchery/pkg/domain/entities"
)

// InventorySnapshot is the complete, consistent output of one engine run
type InventorySnapshot struct {
	RunID       string
	GeneratedAt time.Time
	Assignments []entities.SlotAssignment
	BoxTrolleys []entities.ChickBoxTrolley
	Summary     InventorySummary
}

// InventorySummary aggregates the counts of a snapshot
type InventorySummary struct {
	Trolleys int `json:"trolleys"`
	Good     int `json:"good"`
	Warn     int `json:"warn"`
	Bad      int `json:"bad"`

	Assigned int `json:"assigned"`
	Overflow int `json:"overflow"`

	// Skipped counts trolleys left unpacked for lack of an occupied pre-hatch position
	Skipped         int `json:"skipped"`
	Fertile         int `json:"fertile"`
	Packed          int `json:"packed"`
	BoxTrolleys     int `json:"box_trolleys"`
	FullBoxTrolleys int `json:"full_box_trolleys"`
	Boxes           int `json:"boxes"`
}

// Summarize computes the summary of assignments and their box-trolleys.
// Fertile only counts trolleys that were packed.
func Summarize(assignments []entities.SlotAssignment, boxTrolleys []entities.ChickBoxTrolley) InventorySummary {
	summary := InventorySummary{Trolleys: len(assignments)}
	packedSources := make(map[entities.TrolleyID]bool)

	for _, bt := range boxTrolleys {
		packedSources[bt.SourceID] = true
		summary.BoxTrolleys++
		summary.Boxes += bt.Boxes
		summary.Packed += bt.Chicks
		if bt.Full {
			summary.FullBoxTrolleys++
		}
	}

	for _, a := range assignments {
		switch a.Trolley.Status {
		case entities.StatusGood:
			summary.Good++
		case entities.StatusWarn:
			summary.Warn++
		case entities.StatusBad:
			summary.Bad++
		}
		if a.IsPlanned() {
			summary.Overflow++
		} else {
			summary.Assigned++
		}
		if packedSources[a.Trolley.ID] {
			summary.Fertile += a.Trolley.Candling.Fertile
		} else {
			summary.Skipped++
		}
	}

	return summary
}
