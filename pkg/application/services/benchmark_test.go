package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/vsinha/hatchery/pkg/domain/entities"
	"github.com/vsinha/hatchery/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/hatchery/pkg/infrastructure/testing"
)

func newBenchmarkService(b *testing.B, trolleys int) *InventoryService {
	b.Helper()
	trolleyRepo, preHatchRepo := testhelpers.BuildHatcheryTestData(trolleys)
	packer, err := NewChickPacker(DefaultPackingConfig())
	if err != nil {
		b.Fatalf("Failed to create packer: %v", err)
	}
	return NewInventoryService(trolleyRepo, preHatchRepo, memory.NewSlotStore(entities.DefaultSlotLayout()), packer)
}

func classifiedScenario(b *testing.B, service *InventoryService) []entities.ClassifiedTrolley {
	b.Helper()
	trolleys, err := service.trolleyRepo.GetAllTrolleys()
	if err != nil {
		b.Fatalf("Failed to load trolleys: %v", err)
	}
	return service.ClassifyAll(trolleys)
}

func BenchmarkInventoryService_AssignSlots(b *testing.B) {
	for _, n := range []int{18, 200, 2000} {
		b.Run(fmt.Sprintf("trolleys=%d", n), func(b *testing.B) {
			service := newBenchmarkService(b, n)
			classified := classifiedScenario(b, service)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				service.AssignSlots(classified)
			}
		})
	}
}

func BenchmarkInventoryService_PackChicks(b *testing.B) {
	service := newBenchmarkService(b, 500)
	classified := classifiedScenario(b, service)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.PackChicks(classified); err != nil {
			b.Fatalf("PackChicks failed: %v", err)
		}
	}
}

func BenchmarkInventoryService_Snapshot(b *testing.B) {
	ctx := context.Background()
	service := newBenchmarkService(b, 500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.Snapshot(ctx); err != nil {
			b.Fatalf("Snapshot failed: %v", err)
		}
	}
}

func TestBuildHatcheryTestData_PacksOnlyOccupied(t *testing.T) {
	trolleyRepo, preHatchRepo := testhelpers.BuildHatcheryTestData(28)
	packer, err := NewChickPacker(DefaultPackingConfig())
	if err != nil {
		t.Fatalf("Failed to create packer: %v", err)
	}
	service := NewInventoryService(trolleyRepo, preHatchRepo, memory.NewSlotStore(entities.DefaultSlotLayout()), packer)

	snapshot, err := service.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Failed to compute snapshot: %v", err)
	}

	// Four trolleys have no reference (7, 14, 21, 28) and six reference an empty position (4, 8, 12, 16, 20, 24)
	if snapshot.Summary.Overflow != 10 {
		t.Errorf("Expected 10 planned trolleys, got %d", snapshot.Summary.Overflow)
	}
	if snapshot.Summary.Skipped != 10 {
		t.Errorf("Expected 10 skipped trolleys, got %d", snapshot.Summary.Skipped)
	}
	if snapshot.Assignments[0].Trolley.ID != "HT-0028" {
		t.Errorf("Expected newest trolley HT-0028 in slot A1, got %s", snapshot.Assignments[0].Trolley.ID)
	}
}
