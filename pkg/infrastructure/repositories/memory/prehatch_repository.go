package memory

import (
	"github.com/vsinha/hatchery/pkg/domain/entities"
	"github.com/vsinha/hatchery/pkg/domain/repositories"
)

// PreHatchRepository provides in-memory pre-hatch position lookup
type PreHatchRepository struct {
	positions   []entities.PreHatchPosition
	positionMap map[string]int
}

// NewPreHatchRepository creates a new in-memory pre-hatch repository
func NewPreHatchRepository(expectedPositions int) *PreHatchRepository {
	return &PreHatchRepository{
		positions:   make([]entities.PreHatchPosition, 0, expectedPositions),
		positionMap: make(map[string]int, expectedPositions),
	}
}

// Verify interface compliance
var _ repositories.PreHatchRepository = (*PreHatchRepository)(nil)

// LoadPositions loads pre-hatch positions into the repository
func (r *PreHatchRepository) LoadPositions(positions []*entities.PreHatchPosition) error {
	for _, position := range positions {
		r.AddPosition(*position)
	}
	return nil
}

// AddPosition adds a position, replacing any position with the same id
func (r *PreHatchRepository) AddPosition(position entities.PreHatchPosition) {
	if index, exists := r.positionMap[position.ID]; exists {
		r.positions[index] = position
		return
	}
	r.positionMap[position.ID] = len(r.positions)
	r.positions = append(r.positions, position)
}

// GetPosition returns a copy of the position, or nil when it is unknown
func (r *PreHatchRepository) GetPosition(positionID string) (*entities.PreHatchPosition, error) {
	index, exists := r.positionMap[positionID]
	if !exists {
		return nil, nil
	}
	position := r.positions[index]
	return &position, nil
}

// GetAllPositions returns copies of all positions in load order
func (r *PreHatchRepository) GetAllPositions() ([]*entities.PreHatchPosition, error) {
	positions := make([]*entities.PreHatchPosition, 0, len(r.positions))
	for i := range r.positions {
		position := r.positions[i]
		positions = append(positions, &position)
	}
	return positions, nil
}
