package services

import (
	"sort"

	"github.com/vsinha/hatchery/pkg/domain/entities"
)

// SlotAssigner binds classified trolleys to the fixed post-hatch rack by recency
type SlotAssigner struct {
	layout entities.SlotLayout
}

// NewSlotAssigner creates an assigner over the default 18-slot rack
func NewSlotAssigner() *SlotAssigner {
	return NewSlotAssignerWithLayout(entities.DefaultSlotLayout())
}

// NewSlotAssignerWithLayout creates an assigner over a custom rack layout
func NewSlotAssignerWithLayout(layout entities.SlotLayout) *SlotAssigner {
	return &SlotAssigner{layout: layout}
}

// Layout returns the rack layout used by the assigner
func (a *SlotAssigner) Layout() entities.SlotLayout {
	return a.layout
}

// AssignSlots orders trolleys most recent first and binds the first len(layout)
// of them to rack slots in order. Every remaining trolley gets a planned label
// derived from its overflow position. The input slice is not modified.
func (a *SlotAssigner) AssignSlots(trolleys []entities.ClassifiedTrolley) []entities.SlotAssignment {
	ordered := SortByRecency(trolleys)
	assignments := make([]entities.SlotAssignment, 0, len(ordered))
	slots := len(a.layout)

	for i, trolley := range ordered {
		assignment := entities.SlotAssignment{Trolley: trolley}

		if i < slots {
			pos := a.layout[i]
			number := pos.Number
			label := pos.Label
			assignment.ActualSlotNumber = &number
			assignment.ActualSlotLabel = &label
			assignment.DisplayLabel = label
			assignment.Row = pos.Row
			assignment.Column = pos.Column
			assignment.Layer = pos.Layer
		} else if slots > 0 {
			base := a.layout[i%slots]
			cycle := (i-slots)/slots + 1
			planned := base.PlannedLabel(cycle)
			assignment.PlannedSlotLabel = &planned
			assignment.DisplayLabel = planned
		}

		assignments = append(assignments, assignment)
	}

	return assignments
}

// SortByRecency returns a copy of trolleys ordered by transfer time descending,
// missing timestamps last, ties broken by trolley id descending
func SortByRecency(trolleys []entities.ClassifiedTrolley) []entities.ClassifiedTrolley {
	ordered := make([]entities.ClassifiedTrolley, len(trolleys))
	for i := range trolleys {
		ordered[i] = trolleys[i].Clone()
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return moreRecent(
			ordered[i].TransferredAt, string(ordered[i].ID),
			ordered[j].TransferredAt, string(ordered[j].ID),
		)
	})
	return ordered
}
