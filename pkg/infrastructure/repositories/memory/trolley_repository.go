package memory

import (
	"fmt"

	"github.com/vsinha/hatchery/pkg/domain/entities"
	"github.com/vsinha/hatchery/pkg/domain/repositories"
)

// TrolleyRepository provides in-memory trolley storage
type TrolleyRepository struct {
	trolleys   []entities.Trolley
	trolleyMap map[entities.TrolleyID]int
}

// NewTrolleyRepository creates a new in-memory trolley repository
func NewTrolleyRepository(expectedTrolleys int) *TrolleyRepository {
	return &TrolleyRepository{
		trolleys:   make([]entities.Trolley, 0, expectedTrolleys),
		trolleyMap: make(map[entities.TrolleyID]int, expectedTrolleys),
	}
}

// Verify interface compliance
var _ repositories.TrolleyRepository = (*TrolleyRepository)(nil)

// LoadTrolleys loads trolleys into the repository
func (r *TrolleyRepository) LoadTrolleys(trolleys []*entities.Trolley) error {
	for _, trolley := range trolleys {
		r.AddTrolley(*trolley)
	}
	return nil
}

// AddTrolley adds a trolley to the repository, replacing any trolley with the same id
func (r *TrolleyRepository) AddTrolley(trolley entities.Trolley) {
	if index, exists := r.trolleyMap[trolley.ID]; exists {
		r.trolleys[index] = trolley.Clone()
		return
	}
	r.trolleyMap[trolley.ID] = len(r.trolleys)
	r.trolleys = append(r.trolleys, trolley.Clone())
}

// GetTrolley returns a copy of the trolley with the given id
func (r *TrolleyRepository) GetTrolley(id entities.TrolleyID) (*entities.Trolley, error) {
	index, exists := r.trolleyMap[id]
	if !exists {
		return nil, fmt.Errorf("trolley not found: %s", id)
	}
	trolley := r.trolleys[index].Clone()
	return &trolley, nil
}

// GetAllTrolleys returns copies of all trolleys in load order
func (r *TrolleyRepository) GetAllTrolleys() ([]*entities.Trolley, error) {
	trolleys := make([]*entities.Trolley, 0, len(r.trolleys))
	for i := range r.trolleys {
		trolley := r.trolleys[i].Clone()
		trolleys = append(trolleys, &trolley)
	}
	return trolleys, nil
}
