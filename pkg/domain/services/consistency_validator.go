package services

import (
	"fmt"
	"sort"

	"github.com/vsinha/hatchery/pkg/domain/entities"
)

// ConsistencyValidator cross-checks trolley records against pre-hatch positions
type ConsistencyValidator struct{}

// NewConsistencyValidator creates a new consistency validator
func NewConsistencyValidator() *ConsistencyValidator {
	return &ConsistencyValidator{}
}

// ValidationResult contains the results of a consistency check.
// Errors make the input unusable; warnings describe records the engine will skip.
type ValidationResult struct {
	DuplicateTrolleys  []entities.TrolleyID
	DuplicatePositions []string
	// UnknownRefs lists trolleys whose pre-hatch reference matches no position
	UnknownRefs []entities.TrolleyID
	// MismatchedPositions lists occupied positions naming a different trolley than the one referencing them
	MismatchedPositions []string
	Errors              []string
	Warnings            []string
}

// Valid reports whether the input has no errors
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks ID uniqueness and the links between trolleys and pre-hatch positions
func (v *ConsistencyValidator) Validate(trolleys []*entities.Trolley, positions []*entities.PreHatchPosition) *ValidationResult {
	result := &ValidationResult{
		DuplicateTrolleys:   make([]entities.TrolleyID, 0),
		DuplicatePositions:  make([]string, 0),
		UnknownRefs:         make([]entities.TrolleyID, 0),
		MismatchedPositions: make([]string, 0),
		Errors:              make([]string, 0),
		Warnings:            make([]string, 0),
	}

	seenTrolleys := make(map[entities.TrolleyID]bool, len(trolleys))
	for _, t := range trolleys {
		if t == nil {
			continue
		}
		if seenTrolleys[t.ID] {
			result.DuplicateTrolleys = append(result.DuplicateTrolleys, t.ID)
		}
		seenTrolleys[t.ID] = true
	}

	byID := make(map[string]*entities.PreHatchPosition, len(positions))
	for _, p := range positions {
		if p == nil {
			continue
		}
		if _, exists := byID[p.ID]; exists {
			result.DuplicatePositions = append(result.DuplicatePositions, p.ID)
		}
		byID[p.ID] = p
	}

	for _, t := range trolleys {
		if t == nil || t.PreHatchRef == nil {
			continue
		}
		position, exists := byID[*t.PreHatchRef]
		if !exists {
			result.UnknownRefs = append(result.UnknownRefs, t.ID)
			continue
		}
		if position.Occupied && position.TrolleyID != t.ID {
			result.MismatchedPositions = append(result.MismatchedPositions, position.ID)
		}
	}
	sort.Strings(result.MismatchedPositions)

	if len(result.DuplicateTrolleys) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Duplicate trolley ids found: %v", result.DuplicateTrolleys))
	}
	if len(result.DuplicatePositions) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Duplicate pre-hatch position ids found: %v", result.DuplicatePositions))
	}
	if len(result.UnknownRefs) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Trolleys referencing unknown pre-hatch positions: %v", result.UnknownRefs))
	}
	if len(result.MismatchedPositions) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Occupied pre-hatch positions naming another trolley: %v", result.MismatchedPositions))
	}

	return result
}
