package testing

import (
	"fmt"
	"time"

	"github.com/vsinha/hatchery/pkg/domain/entities"
	"github.com/vsinha/hatchery/pkg/infrastructure/repositories/memory"
)

// ScenarioStart is the transfer time of the oldest trolley in generated scenarios
var ScenarioStart = time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)

// MustCreateTrolley is a helper for tests - panics on validation error
func MustCreateTrolley(id string, transferredAt *time.Time, candling entities.CandlingCounts, preHatchRef string) *entities.Trolley {
	trolley, err := entities.NewTrolley(entities.TrolleyID(id), "H1", transferredAt, candling)
	if err != nil {
		panic(err)
	}
	if preHatchRef != "" {
		trolley.PreHatchRef = &preHatchRef
	}
	return trolley
}

// MustCreatePreHatchPosition is a helper for tests - panics on validation error
func MustCreatePreHatchPosition(id string, occupied bool, trolleyID string) *entities.PreHatchPosition {
	position, err := entities.NewPreHatchPosition(id, "S1", occupied, entities.TrolleyID(trolleyID))
	if err != nil {
		panic(err)
	}
	return position
}

// BuildHatcheryTestData builds n trolleys transferred an hour apart, newest last.
// Fertility cycles through the good, warn and bad tiers; every fourth pre-hatch
// position is empty and every seventh trolley has no pre-hatch reference.
func BuildHatcheryTestData(n int) (*memory.TrolleyRepository, *memory.PreHatchRepository) {
	trolleyRepo := memory.NewTrolleyRepository(n)
	preHatchRepo := memory.NewPreHatchRepository(n)

	fertileByTier := []int{3200, 2900, 2500}
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("HT-%04d", i)
		transferred := ScenarioStart.Add(time.Duration(i) * time.Hour)
		fertile := fertileByTier[i%len(fertileByTier)]

		ref := ""
		if i%7 != 0 {
			ref = fmt.Sprintf("SET-%04d", i)
			occupied := i%4 != 0
			trolleyID := ""
			if occupied {
				trolleyID = id
			}
			preHatchRepo.AddPosition(*MustCreatePreHatchPosition(ref, occupied, trolleyID))
		}

		trolleyRepo.AddTrolley(*MustCreateTrolley(id, &transferred, entities.CandlingCounts{
			Fertile:   fertile,
			Infertile: 3450 - fertile,
			EarlyDead: 40,
			LateDead:  25,
			Cracked:   5,
		}, ref))
	}

	return trolleyRepo, preHatchRepo
}
