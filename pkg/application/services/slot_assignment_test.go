package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/hatchery/pkg/domain/entities"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

var baseTime = time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)

func at(hoursAgo int) *time.Time {
	ts := baseTime.Add(-time.Duration(hoursAgo) * time.Hour)
	return &ts
}

func classified(id string, ts *time.Time, fertile int) entities.ClassifiedTrolley {
	return entities.ClassifiedTrolley{
		Trolley: entities.Trolley{
			ID:            entities.TrolleyID(id),
			TransferredAt: ts,
			Candling:      entities.CandlingCounts{Fertile: fertile},
		},
	}
}

// decreasingTrolleys returns n trolleys whose timestamps strictly decrease with the index
func decreasingTrolleys(n int) []entities.ClassifiedTrolley {
	trolleys := make([]entities.ClassifiedTrolley, n)
	for i := range trolleys {
		trolleys[i] = classified(fmt.Sprintf("T-%03d", i), at(i), 3000)
	}
	return trolleys
}

func reversed(in []entities.ClassifiedTrolley) []entities.ClassifiedTrolley {
	out := make([]entities.ClassifiedTrolley, len(in))
	for i := range in {
		out[len(in)-1-i] = in[i]
	}
	return out
}

func TestSlotAssigner_TwentyTrolleysOverflowTwo(t *testing.T) {
	trolleys := decreasingTrolleys(20)
	layout := entities.DefaultSlotLayout()

	// Input order must not matter
	assignments := NewSlotAssigner().AssignSlots(reversed(trolleys))
	require.Len(t, assignments, 20)

	for i := 0; i < 18; i++ {
		a := assignments[i]
		assert.Equal(t, trolleys[i].ID, a.Trolley.ID, "position %d", i)
		require.NotNil(t, a.ActualSlotNumber, "trolley %d should have an actual slot", i)
		assert.Equal(t, i, *a.ActualSlotNumber)
		require.NotNil(t, a.ActualSlotLabel)
		assert.Equal(t, layout[i].Label, *a.ActualSlotLabel)
		assert.Equal(t, layout[i].Label, a.DisplayLabel)
		assert.Equal(t, layout[i].Row, a.Row)
		assert.Equal(t, layout[i].Column, a.Column)
		assert.Equal(t, layout[i].Layer, a.Layer)
		assert.Nil(t, a.PlannedSlotLabel)
	}

	for i, expected := range map[int]string{18: "P-B1", 19: "P-B2"} {
		a := assignments[i]
		assert.Equal(t, trolleys[i].ID, a.Trolley.ID)
		assert.Nil(t, a.ActualSlotNumber)
		assert.Nil(t, a.ActualSlotLabel)
		require.NotNil(t, a.PlannedSlotLabel)
		assert.Equal(t, expected, *a.PlannedSlotLabel)
		assert.Equal(t, expected, a.DisplayLabel)
		assert.True(t, a.IsPlanned())
	}
}

func TestSlotAssigner_ActualSlotsAreInjective(t *testing.T) {
	assignments := NewSlotAssigner().AssignSlots(decreasingTrolleys(45))

	seen := make(map[int]entities.TrolleyID)
	actual := 0
	for _, a := range assignments {
		if a.ActualSlotNumber == nil {
			continue
		}
		actual++
		if other, exists := seen[*a.ActualSlotNumber]; exists {
			t.Fatalf("Slot %d assigned to both %s and %s", *a.ActualSlotNumber, other, a.Trolley.ID)
		}
		seen[*a.ActualSlotNumber] = a.Trolley.ID
	}
	assert.Equal(t, entities.RackSlots, actual)
}

func TestSlotAssigner_PlannedLabelCycles(t *testing.T) {
	assignments := NewSlotAssigner().AssignSlots(decreasingTrolleys(45))

	expected := map[int]string{
		18: "P-B1", // layout[0], cycle 1
		35: "P-G3", // layout[17], cycle 1
		36: "P-C1", // layout[0], cycle 2
		44: "P-E3", // layout[8], cycle 2
	}
	for i, label := range expected {
		assert.Equal(t, label, assignments[i].DisplayLabel, "overflow index %d", i)
	}
}

func TestSlotAssigner_MissingTimestampsAndTies(t *testing.T) {
	input := []entities.ClassifiedTrolley{
		classified("T-A", nil, 0),
		classified("T-B", at(5), 0),
		classified("T-C", at(1), 0),
		classified("T-D", nil, 0),
		classified("T-E", at(1), 0),
		classified("T-F", at(1), 0),
	}

	assignments := NewSlotAssigner().AssignSlots(input)

	var order []entities.TrolleyID
	for _, a := range assignments {
		order = append(order, a.Trolley.ID)
	}
	// Equal timestamps break by id descending; missing timestamps go last, also by id descending
	assert.Equal(t, []entities.TrolleyID{"T-F", "T-E", "T-C", "T-B", "T-D", "T-A"}, order)
}

func TestSlotAssigner_Deterministic(t *testing.T) {
	input := decreasingTrolleys(25)
	// Add ties and missing timestamps
	input = append(input,
		classified("T-TIE-1", at(3), 100),
		classified("T-TIE-2", at(3), 100),
		classified("T-NONE-1", nil, 0),
		classified("T-NONE-2", nil, 0),
	)

	assigner := NewSlotAssigner()
	first := assigner.AssignSlots(input)
	second := assigner.AssignSlots(input)
	fromReversed := assigner.AssignSlots(reversed(input))

	if diff := cmp.Diff(first, second, decimalComparer); diff != "" {
		t.Errorf("Repeated assignment differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first, fromReversed, decimalComparer); diff != "" {
		t.Errorf("Assignment depends on input order (-first +reversed):\n%s", diff)
	}
}

func TestSlotAssigner_DoesNotMutateInput(t *testing.T) {
	input := []entities.ClassifiedTrolley{
		classified("T-1", at(10), 0),
		classified("T-2", at(1), 0),
	}

	assignments := NewSlotAssigner().AssignSlots(input)
	*assignments[0].Trolley.TransferredAt = baseTime.Add(24 * time.Hour)

	assert.Equal(t, entities.TrolleyID("T-1"), input[0].ID)
	assert.True(t, input[1].TransferredAt.Equal(*at(1)), "input timestamp must not alias output")
}

func TestSlotAssigner_EmptyInput(t *testing.T) {
	assert.Empty(t, NewSlotAssigner().AssignSlots(nil))
}

func TestSlotAssigner_CustomLayout(t *testing.T) {
	layout := entities.DefaultSlotLayout()[:2]
	assignments := NewSlotAssignerWithLayout(layout).AssignSlots(decreasingTrolleys(5))

	labels := make([]string, len(assignments))
	for i, a := range assignments {
		labels[i] = a.DisplayLabel
	}
	// Overflow index 2 -> layout[0] cycle 1; 3 -> layout[1] cycle 1; 4 -> layout[0] cycle 2
	assert.Equal(t, []string{"A1", "A2", "P-B1", "P-B2", "P-C1"}, labels)
}
