package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vsinha/hatchery/pkg/application/services"
	"github.com/vsinha/hatchery/pkg/domain/entities"
	"github.com/vsinha/hatchery/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Create repositories
	trolleyRepo := memory.NewTrolleyRepository(20)
	preHatchRepo := memory.NewPreHatchRepository(20)
	slotStore := memory.NewSlotStore(entities.DefaultSlotLayout())

	// Twenty trolleys transferred an hour apart overflow the 18-slot rack
	setupHatcherTrolleys(trolleyRepo, preHatchRepo)

	packer, err := services.NewChickPacker(services.DefaultPackingConfig())
	if err != nil {
		fmt.Printf("❌ Invalid packing config: %v\n", err)
		return
	}
	service := services.NewInventoryService(trolleyRepo, preHatchRepo, slotStore, packer)

	fmt.Println("🐣 Computing hatchery inventory...")
	snapshot, err := service.Snapshot(ctx)
	if err != nil {
		fmt.Printf("❌ Snapshot failed: %v\n", err)
		return
	}

	s := snapshot.Summary
	fmt.Println("📊 Results:")
	fmt.Printf("  Trolleys: %d (good %d, warn %d, bad %d)\n", s.Trolleys, s.Good, s.Warn, s.Bad)
	fmt.Printf("  Rack: %d assigned, %d planned\n", s.Assigned, s.Overflow)
	fmt.Printf("  Box-trolleys: %d (%d full)\n", s.BoxTrolleys, s.FullBoxTrolleys)
	fmt.Printf("  Chicks packed: %d\n", s.Packed)
	fmt.Println()

	fmt.Println("📋 Rack:")
	for _, a := range snapshot.Assignments {
		fmt.Printf("  %-6s %s  %6s%%  %s\n",
			a.DisplayLabel,
			a.Trolley.ID,
			a.Trolley.FertilityPercent.StringFixed(2),
			a.Trolley.Status)
	}
	fmt.Println()

	// The rack state stays readable after the snapshot
	top, err := service.GetSlot(0)
	if err == nil && top != nil {
		fmt.Printf("🔝 Slot A1 holds %s\n", top.ID)
	}
}

func setupHatcherTrolleys(trolleyRepo *memory.TrolleyRepository, preHatchRepo *memory.PreHatchRepository) {
	start := time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)

	for i := 1; i <= 20; i++ {
		id := entities.TrolleyID(fmt.Sprintf("HT-%03d", i))
		transferred := start.Add(time.Duration(i) * time.Hour)
		positionID := fmt.Sprintf("SET-%02d", i)

		trolley, err := entities.NewTrolley(id, "H1", &transferred, entities.CandlingCounts{
			Fertile:   2700 + 25*i,
			Infertile: 400 - 10*i,
			EarlyDead: 40,
			LateDead:  20,
			Cracked:   5,
		})
		if err != nil {
			panic(err)
		}
		trolley.PreHatchRef = &positionID
		trolleyRepo.AddTrolley(*trolley)

		// Every fourth pre-hatch position is still empty
		occupied := i%4 != 0
		position := entities.PreHatchPosition{ID: positionID, SetterID: "S1", Occupied: occupied}
		if occupied {
			position.TrolleyID = id
		}
		preHatchRepo.AddPosition(position)
	}
}
