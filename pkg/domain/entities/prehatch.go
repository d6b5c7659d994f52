package entities

import "fmt"

// PreHatchPosition is the occupancy record of a setter position before hatch
type PreHatchPosition struct {
	ID        string
	SetterID  string
	Occupied  bool
	TrolleyID TrolleyID
}

// NewPreHatchPosition creates a validated PreHatchPosition
func NewPreHatchPosition(id, setterID string, occupied bool, trolleyID TrolleyID) (*PreHatchPosition, error) {
	if id == "" {
		return nil, fmt.Errorf("pre-hatch position id cannot be empty")
	}
	if occupied && string(trolleyID) == "" {
		return nil, fmt.Errorf("occupied pre-hatch position %s must reference a trolley", id)
	}

	return &PreHatchPosition{
		ID:        id,
		SetterID:  setterID,
		Occupied:  occupied,
		TrolleyID: trolleyID,
	}, nil
}
