package repositories

import "github.com/vsinha/hatchery/pkg/domain/entities"

// TrolleyRepository supplies raw per-trolley production records.
// Records are read-only from the engine's perspective.
type TrolleyRepository interface {
	GetTrolley(id entities.TrolleyID) (*entities.Trolley, error)
	GetAllTrolleys() ([]*entities.Trolley, error)
	LoadTrolleys(trolleys []*entities.Trolley) error
}
