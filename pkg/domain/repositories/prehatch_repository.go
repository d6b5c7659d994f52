package repositories

import "github.com/vsinha/hatchery/pkg/domain/entities"

// PreHatchRepository maps a pre-hatch position to its occupancy record
type PreHatchRepository interface {
	// GetPosition returns nil without error when the position is unknown
	GetPosition(positionID string) (*entities.PreHatchPosition, error)
	GetAllPositions() ([]*entities.PreHatchPosition, error)
	LoadPositions(positions []*entities.PreHatchPosition) error
}
