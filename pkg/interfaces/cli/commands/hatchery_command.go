package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vsinha/hatchery/pkg/application/dto"
	"github.com/vsinha/hatchery/pkg/application/services"
	"github.com/vsinha/hatchery/pkg/domain/entities"
	domainservices "github.com/vsinha/hatchery/pkg/domain/services"
	"github.com/vsinha/hatchery/pkg/infrastructure/config"
	"github.com/vsinha/hatchery/pkg/infrastructure/events"
	"github.com/vsinha/hatchery/pkg/infrastructure/metrics"
	"github.com/vsinha/hatchery/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/hatchery/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/hatchery/pkg/interfaces/cli/output"
)

const (
	trolleysFileName = "trolleys.csv"
	preHatchFileName = "prehatch.csv"
)

// Config holds configuration for a hatchery command
type Config struct {
	View         output.View
	ScenarioDir  string
	TrolleysFile string
	PreHatchFile string
	ConfigFile   string
	OutputDir    string
	Format       string
	MetricsFile  string
	Verbose      bool
	// Stdout receives rendered output; defaults to os.Stdout
	Stdout io.Writer
}

// HatcheryCommand loads the CSV sources, runs the engine and renders the result
type HatcheryCommand struct {
	config Config
	logger *zap.Logger
}

// NewHatcheryCommand creates a command with the given configuration
func NewHatcheryCommand(config Config, logger *zap.Logger) *HatcheryCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HatcheryCommand{
		config: config,
		logger: logger,
	}
}

// Execute runs the command
func (c *HatcheryCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	engineConfig, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return err
	}

	c.logger.Debug("Resolved inputs",
		zap.String("view", string(c.config.View)),
		zap.String("trolleys", files[trolleysFileName]),
		zap.String("prehatch", files[preHatchFileName]),
		zap.String("format", c.config.Format),
	)

	loader := csv.NewLoader()
	trolleys, err := loader.LoadTrolleys(files[trolleysFileName])
	if err != nil {
		return fmt.Errorf("error loading trolleys: %w", err)
	}

	var positions []*entities.PreHatchPosition
	if path, ok := files[preHatchFileName]; ok {
		positions, err = loader.LoadPreHatchPositions(path)
		if err != nil {
			return fmt.Errorf("error loading pre-hatch positions: %w", err)
		}
	}

	c.logger.Debug("Data loaded",
		zap.Int("trolleys", len(trolleys)),
		zap.Int("prehatch_positions", len(positions)),
	)

	// Validate trolley and pre-hatch consistency
	consistency := domainservices.NewConsistencyValidator().Validate(trolleys, positions)
	if !consistency.Valid() {
		return fmt.Errorf("consistency validation failed: %s", strings.Join(consistency.Errors, "; "))
	}
	for _, warning := range consistency.Warnings {
		c.logger.Warn("Inconsistent input", zap.String("detail", warning))
	}

	// Create repositories
	trolleyRepo := memory.NewTrolleyRepository(len(trolleys))
	if err := trolleyRepo.LoadTrolleys(trolleys); err != nil {
		return fmt.Errorf("failed to load trolleys into repository: %w", err)
	}
	preHatchRepo := memory.NewPreHatchRepository(len(positions))
	if err := preHatchRepo.LoadPositions(positions); err != nil {
		return fmt.Errorf("failed to load pre-hatch positions into repository: %w", err)
	}
	eventStore := events.NewInMemoryEventStore()
	slotStore := events.NewJournaledSlotStore(memory.NewSlotStore(entities.DefaultSlotLayout()), eventStore, nil)

	// Create services
	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	packer, err := services.NewChickPacker(engineConfig.PackingConfig())
	if err != nil {
		return err
	}

	service := services.NewInventoryService(trolleyRepo, preHatchRepo, slotStore, packer,
		services.WithLogger(c.logger),
		services.WithMetrics(recorder),
		services.WithClassifier(engineConfig.Classifier()),
	)

	startTime := time.Now()
	snapshot, err := c.run(ctx, service, trolleys)
	if err != nil {
		return err
	}
	runTime := time.Since(startTime)

	journal, err := eventStore.ReadAllEvents(0)
	if err != nil {
		return fmt.Errorf("failed to read slot journal: %w", err)
	}
	c.logger.Debug("Engine run completed",
		zap.Duration("elapsed", runTime),
		zap.Int("slot_changes", len(journal)),
	)

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		View:      c.config.View,
		Verbose:   c.config.Verbose,
		Stdout:    c.config.Stdout,
		RunTime:   runTime,
	}
	if err := output.Generate(snapshot, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(c.config.MetricsFile, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		c.logger.Debug("Metrics written", zap.String("path", c.config.MetricsFile))
	}

	return nil
}

// run executes the engine stages the view needs
func (c *HatcheryCommand) run(ctx context.Context, service *services.InventoryService, trolleys []*entities.Trolley) (*dto.InventorySnapshot, error) {
	switch c.config.View {
	case output.ViewSnapshot:
		snapshot, err := service.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("error computing snapshot: %w", err)
		}
		return snapshot, nil

	case output.ViewSlots:
		assignments := service.AssignSlots(service.ClassifyAll(trolleys))
		return &dto.InventorySnapshot{
			GeneratedAt: time.Now(),
			Assignments: assignments,
			Summary:     dto.Summarize(assignments, nil),
		}, nil

	case output.ViewPack:
		classified := service.ClassifyAll(trolleys)
		boxTrolleys, err := service.PackChicks(classified)
		if err != nil {
			return nil, fmt.Errorf("error packing chicks: %w", err)
		}
		assignments := service.AssignSlots(classified)
		return &dto.InventorySnapshot{
			GeneratedAt: time.Now(),
			Assignments: assignments,
			BoxTrolleys: boxTrolleys,
			Summary:     dto.Summarize(assignments, boxTrolleys),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported view: %s", c.config.View)
	}
}

// validateInputs validates the command configuration
func (c *HatcheryCommand) validateInputs() error {
	if c.config.ScenarioDir == "" && c.config.TrolleysFile == "" {
		return fmt.Errorf("must specify either --scenario directory or --trolleys file")
	}
	if c.config.View != output.ViewSlots && c.config.ScenarioDir == "" && c.config.PreHatchFile == "" {
		return fmt.Errorf("%s requires --prehatch or --scenario", c.config.View)
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use, keyed by file name.
// The pre-hatch file is omitted for the slots view.
func (c *HatcheryCommand) resolveInputFiles() (map[string]string, error) {
	trolleysPath := c.config.TrolleysFile
	preHatchPath := c.config.PreHatchFile
	if c.config.ScenarioDir != "" {
		if trolleysPath == "" {
			trolleysPath = filepath.Join(c.config.ScenarioDir, trolleysFileName)
		}
		if preHatchPath == "" {
			preHatchPath = filepath.Join(c.config.ScenarioDir, preHatchFileName)
		}
	}

	files := map[string]string{trolleysFileName: trolleysPath}
	if c.config.View != output.ViewSlots {
		files[preHatchFileName] = preHatchPath
	}

	// Validate files exist
	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not found: %s", name, path)
		}
	}

	return files, nil
}
