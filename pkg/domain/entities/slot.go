package entities

import "fmt"

const (
	// RackRows is the number of rows in the post-hatch rack
	RackRows = 6
	// RackColumns is the number of columns per rack row
	RackColumns = 3
	// RackSlots is the number of physical positions in the post-hatch rack
	RackSlots = RackRows * RackColumns

	// PlannedLabelPrefix marks labels that do not correspond to a physical slot
	PlannedLabelPrefix = "P-"
)

// SlotPosition is one fixed physical position in the post-hatch rack
type SlotPosition struct {
	Number int
	Row    rune
	Column int
	Layer  int
	Label  string
}

// SlotLayout is the fixed, ordered sequence of rack positions
type SlotLayout []SlotPosition

var defaultSlotLayout = buildSlotLayout()

func buildSlotLayout() SlotLayout {
	layout := make(SlotLayout, 0, RackSlots)
	for r := 0; r < RackRows; r++ {
		row := rune('A' + r)
		// Rows A-C sit on the lower layer, D-F on the upper one
		layer := 1
		if r >= RackRows/2 {
			layer = 2
		}
		for col := 1; col <= RackColumns; col++ {
			layout = append(layout, SlotPosition{
				Number: len(layout),
				Row:    row,
				Column: col,
				Layer:  layer,
				Label:  fmt.Sprintf("%c%d", row, col),
			})
		}
	}
	return layout
}

// DefaultSlotLayout returns a copy of the 18-slot rack layout (A1, A2, A3, B1 ... F3)
func DefaultSlotLayout() SlotLayout {
	layout := make(SlotLayout, len(defaultSlotLayout))
	copy(layout, defaultSlotLayout)
	return layout
}

// Contains reports whether slotNumber addresses a position in the layout
func (l SlotLayout) Contains(slotNumber int) bool {
	return slotNumber >= 0 && slotNumber < len(l)
}

// PlannedLabel returns the placeholder label for a position whose row letter is advanced by cycle
func (p SlotPosition) PlannedLabel(cycle int) string {
	return fmt.Sprintf("%s%c%d", PlannedLabelPrefix, p.Row+rune(cycle), p.Column)
}

// SlotAssignment binds a classified trolley to either an actual rack slot or a planned label
type SlotAssignment struct {
	Trolley ClassifiedTrolley

	ActualSlotNumber *int
	ActualSlotLabel  *string
	PlannedSlotLabel *string
	// DisplayLabel is the actual label when assigned, otherwise the planned label
	DisplayLabel string

	// Row, Column and Layer are only set for actual assignments
	Row    rune
	Column int
	Layer  int
}

// IsPlanned reports whether the trolley overflowed the rack
func (a SlotAssignment) IsPlanned() bool {
	return a.ActualSlotNumber == nil
}
