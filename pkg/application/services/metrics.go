package services

import "github.com/vsinha/hatchery/pkg/domain/entities"

// MetricsRecorder receives engine outcomes for export
type MetricsRecorder interface {
	ObserveClassified(status entities.FertilityStatus)
	ObserveAssignments(assigned, overflow int)
	ObservePacked(boxTrolley entities.ChickBoxTrolley)
}

type nopRecorder struct{}

func (nopRecorder) ObserveClassified(entities.FertilityStatus) {}
func (nopRecorder) ObserveAssignments(int, int)                {}
func (nopRecorder) ObservePacked(entities.ChickBoxTrolley)     {}
