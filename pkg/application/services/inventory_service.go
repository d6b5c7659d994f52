package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/hatchery/pkg/application/dto"
	"github.com/vsinha/hatchery/pkg/domain/entities"
	"github.com/vsinha/hatchery/pkg/domain/repositories"
	domainservices "github.com/vsinha/hatchery/pkg/domain/services"
)

// InventoryService derives classified trolleys, rack assignments and box-trolleys
// from the trolley source. Every call recomputes from current repository state.
type InventoryService struct {
	classifier *domainservices.FertilityClassifier
	assigner   *SlotAssigner
	packer     *ChickPacker

	trolleyRepo  repositories.TrolleyRepository
	preHatchRepo repositories.PreHatchRepository
	slotStore    repositories.SlotStore

	logger  *zap.Logger
	metrics MetricsRecorder
	now     func() time.Time
}

// Option configures an InventoryService
type Option func(*InventoryService)

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *InventoryService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(metrics MetricsRecorder) Option {
	return func(s *InventoryService) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithClassifier replaces the default fertility classifier
func WithClassifier(classifier *domainservices.FertilityClassifier) Option {
	return func(s *InventoryService) {
		if classifier != nil {
			s.classifier = classifier
		}
	}
}

// WithSlotAssigner replaces the default 18-slot assigner
func WithSlotAssigner(assigner *SlotAssigner) Option {
	return func(s *InventoryService) {
		if assigner != nil {
			s.assigner = assigner
		}
	}
}

// WithClock overrides the time source used to stamp snapshots
func WithClock(now func() time.Time) Option {
	return func(s *InventoryService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewInventoryService creates the service over the given repositories and packer
func NewInventoryService(
	trolleyRepo repositories.TrolleyRepository,
	preHatchRepo repositories.PreHatchRepository,
	slotStore repositories.SlotStore,
	packer *ChickPacker,
	opts ...Option,
) *InventoryService {
	s := &InventoryService{
		classifier:   domainservices.NewFertilityClassifier(),
		assigner:     NewSlotAssigner(),
		packer:       packer,
		trolleyRepo:  trolleyRepo,
		preHatchRepo: preHatchRepo,
		slotStore:    slotStore,
		logger:       zap.NewNop(),
		metrics:      nopRecorder{},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify derives fertility figures for a single trolley
func (s *InventoryService) Classify(trolley entities.Trolley) entities.ClassifiedTrolley {
	classified := s.classifier.Classify(trolley)
	s.metrics.ObserveClassified(classified.Status)
	return classified
}

// ClassifyAll classifies every trolley, preserving input order
func (s *InventoryService) ClassifyAll(trolleys []*entities.Trolley) []entities.ClassifiedTrolley {
	classified := make([]entities.ClassifiedTrolley, 0, len(trolleys))
	for _, t := range trolleys {
		if t == nil {
			continue
		}
		classified = append(classified, s.Classify(*t))
	}
	return classified
}

// AssignSlots binds trolleys to the rack, most recent first
func (s *InventoryService) AssignSlots(trolleys []entities.ClassifiedTrolley) []entities.SlotAssignment {
	assignments := s.assigner.AssignSlots(trolleys)

	overflow := 0
	for _, a := range assignments {
		if a.IsPlanned() {
			overflow++
		}
	}
	s.metrics.ObserveAssignments(len(assignments)-overflow, overflow)
	if overflow > 0 {
		s.logger.Debug("Rack full, trolleys given planned labels",
			zap.Int("rack_slots", len(s.assigner.Layout())),
			zap.Int("overflow", overflow),
		)
	}

	return assignments
}

// PackChicks packs the trolleys with an occupied pre-hatch position into box-trolleys.
// Trolleys are packed in slot-assignment order so the density pattern follows the rack.
func (s *InventoryService) PackChicks(trolleys []entities.ClassifiedTrolley) ([]entities.ChickBoxTrolley, error) {
	return s.packAssignments(s.assigner.AssignSlots(trolleys))
}

func (s *InventoryService) packAssignments(assignments []entities.SlotAssignment) ([]entities.ChickBoxTrolley, error) {
	eligible := make(map[entities.TrolleyID]bool, len(assignments))
	for _, a := range assignments {
		ok, err := s.hasOccupiedPreHatch(a.Trolley)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve pre-hatch position for trolley %s: %w", a.Trolley.ID, err)
		}
		eligible[a.Trolley.ID] = ok
	}

	boxTrolleys := s.packer.PackChicks(assignments, func(t entities.ClassifiedTrolley) bool {
		return eligible[t.ID]
	})
	for _, bt := range boxTrolleys {
		s.metrics.ObservePacked(bt)
	}

	return boxTrolleys, nil
}

func (s *InventoryService) hasOccupiedPreHatch(trolley entities.ClassifiedTrolley) (bool, error) {
	if trolley.PreHatchRef == nil || s.preHatchRepo == nil {
		return false, nil
	}
	position, err := s.preHatchRepo.GetPosition(*trolley.PreHatchRef)
	if err != nil {
		return false, err
	}
	return position != nil && position.Occupied, nil
}

// GetSlot returns a copy of the trolley stored in a rack slot, or nil when empty
func (s *InventoryService) GetSlot(slotNumber int) (*entities.ClassifiedTrolley, error) {
	return s.slotStore.GetSlot(slotNumber)
}

// SetSlot replaces the trolley stored in a rack slot; nil clears it
func (s *InventoryService) SetSlot(slotNumber int, record *entities.ClassifiedTrolley) error {
	if err := s.slotStore.SetSlot(slotNumber, record); err != nil {
		return fmt.Errorf("failed to set slot %d: %w", slotNumber, err)
	}
	return nil
}

// Snapshot loads every trolley from the source and runs classification, slot
// assignment and packing. Actual assignments are published to the slot store;
// slots left empty by this run are cleared.
func (s *InventoryService) Snapshot(ctx context.Context) (*dto.InventorySnapshot, error) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))
	start := s.now()

	trolleys, err := s.trolleyRepo.GetAllTrolleys()
	if err != nil {
		return nil, fmt.Errorf("failed to load trolleys: %w", err)
	}
	logger.Debug("Loaded trolleys", zap.Int("count", len(trolleys)))

	// Step 1: Classify
	classified := s.ClassifyAll(trolleys)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: Assign rack slots
	assignments := s.AssignSlots(classified)
	if err := s.publishAssignments(assignments); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: Pack chicks
	boxTrolleys, err := s.packAssignments(assignments)
	if err != nil {
		return nil, err
	}

	snapshot := &dto.InventorySnapshot{
		RunID:       runID,
		GeneratedAt: start,
		Assignments: assignments,
		BoxTrolleys: boxTrolleys,
		Summary:     dto.Summarize(assignments, boxTrolleys),
	}

	logger.Info("Inventory snapshot computed",
		zap.Int("trolleys", snapshot.Summary.Trolleys),
		zap.Int("assigned", snapshot.Summary.Assigned),
		zap.Int("overflow", snapshot.Summary.Overflow),
		zap.Int("box_trolleys", snapshot.Summary.BoxTrolleys),
		zap.Int("chicks_packed", snapshot.Summary.Packed),
		zap.Int("skipped", snapshot.Summary.Skipped),
	)

	return snapshot, nil
}

func (s *InventoryService) publishAssignments(assignments []entities.SlotAssignment) error {
	if s.slotStore == nil {
		return nil
	}

	occupied := make(map[int]bool, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		if a.IsPlanned() {
			continue
		}
		number := *a.ActualSlotNumber
		if err := s.SetSlot(number, &a.Trolley); err != nil {
			return err
		}
		occupied[number] = true
	}

	for _, pos := range s.assigner.Layout() {
		if occupied[pos.Number] {
			continue
		}
		if err := s.SetSlot(pos.Number, nil); err != nil {
			return err
		}
	}
	return nil
}
