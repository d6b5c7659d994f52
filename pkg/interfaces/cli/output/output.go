package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vsinha/hatchery/pkg/application/dto"
	"github.com/vsinha/hatchery/pkg/domain/entities"
)

// View selects which parts of a snapshot are rendered
type View string

const (
	ViewSlots    View = "slots"
	ViewPack     View = "pack"
	ViewSnapshot View = "snapshot"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	View      View
	Verbose   bool
	// Stdout receives console output; defaults to os.Stdout
	Stdout  io.Writer
	RunTime time.Duration
}

func (c Config) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c Config) showSlots() bool { return c.View == ViewSlots || c.View == ViewSnapshot }
func (c Config) showPack() bool  { return c.View == ViewPack || c.View == ViewSnapshot }

// Generate creates output in the specified format
func Generate(snapshot *dto.InventorySnapshot, config Config) error {
	if snapshot == nil {
		return fmt.Errorf("no snapshot to render")
	}
	switch config.View {
	case ViewSlots, ViewPack, ViewSnapshot:
	default:
		return fmt.Errorf("unsupported view: %s", config.View)
	}

	switch config.Format {
	case "text":
		return generateTextOutput(snapshot, config)
	case "json":
		return generateJSONOutput(snapshot, config)
	case "csv":
		return generateCSVOutput(snapshot, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// AssignmentRecord is the flat, serializable form of a slot assignment
type AssignmentRecord struct {
	TrolleyID        string  `json:"trolley_id"`
	HatcherID        string  `json:"hatcher_id,omitempty"`
	TransferredAt    string  `json:"transferred_at,omitempty"`
	Slot             string  `json:"slot"`
	SlotNumber       *int    `json:"slot_number,omitempty"`
	Planned          bool    `json:"planned"`
	Layer            int     `json:"layer"`
	Fertile          int     `json:"fertile"`
	Candled          int     `json:"candled"`
	FertilityPercent string  `json:"fertility_percent"`
	Status           string  `json:"status"`
	ViableShortfall  int     `json:"viable_shortfall"`
	ShortfallPercent string  `json:"shortfall_percent"`
	PreHatchRef      *string `json:"prehatch_ref,omitempty"`
}

// BoxTrolleyRecord is the flat, serializable form of a chick box-trolley
type BoxTrolleyRecord struct {
	ID                  string `json:"id"`
	SourceID            string `json:"source_trolley_id"`
	SourceSlot          string `json:"source_slot"`
	SourceTransferredAt string `json:"source_transferred_at,omitempty"`
	Boxes               int    `json:"boxes"`
	PerBox              int    `json:"per_box"`
	Chicks              int    `json:"chicks"`
	Full                bool   `json:"full"`
}

type jsonDocument struct {
	RunID       string               `json:"run_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Summary     dto.InventorySummary `json:"summary"`
	Assignments []AssignmentRecord   `json:"assignments,omitempty"`
	BoxTrolleys []BoxTrolleyRecord   `json:"box_trolleys,omitempty"`
}

// NewAssignmentRecord flattens a slot assignment
func NewAssignmentRecord(a entities.SlotAssignment) AssignmentRecord {
	t := a.Trolley
	return AssignmentRecord{
		TrolleyID:        string(t.ID),
		HatcherID:        t.HatcherID,
		TransferredAt:    formatTime(t.TransferredAt),
		Slot:             a.DisplayLabel,
		SlotNumber:       a.ActualSlotNumber,
		Planned:          a.IsPlanned(),
		Layer:            a.Layer,
		Fertile:          t.Candling.Fertile,
		Candled:          t.Candled,
		FertilityPercent: t.FertilityPercent.StringFixed(2),
		Status:           t.Status.String(),
		ViableShortfall:  t.ViableShortfall,
		ShortfallPercent: t.ShortfallPercent.StringFixed(2),
		PreHatchRef:      t.PreHatchRef,
	}
}

// NewBoxTrolleyRecord flattens a chick box-trolley
func NewBoxTrolleyRecord(bt entities.ChickBoxTrolley) BoxTrolleyRecord {
	return BoxTrolleyRecord{
		ID:                  bt.ID,
		SourceID:            string(bt.SourceID),
		SourceSlot:          bt.SourceSlotLabel,
		SourceTransferredAt: formatTime(bt.SourceTransferredAt),
		Boxes:               bt.Boxes,
		PerBox:              bt.PerBox,
		Chicks:              bt.Chicks,
		Full:                bt.Full,
	}
}

func formatTime(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format(time.RFC3339)
}

// generateTextOutput creates human-readable text output
func generateTextOutput(snapshot *dto.InventorySnapshot, config Config) error {
	var w io.Writer = config.stdout()
	var file *os.File
	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, string(config.View)+".txt")
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create text file: %w", err)
		}
		defer f.Close()
		file = f
		w = io.MultiWriter(config.stdout(), f)
	}

	writeTextReport(w, snapshot, config)

	if file != nil {
		if config.Verbose {
			fmt.Fprintf(config.stdout(), "💾 Results saved to: %s\n", file.Name())
		}
		return file.Close()
	}
	return nil
}

func writeTextReport(w io.Writer, snapshot *dto.InventorySnapshot, config Config) {
	s := snapshot.Summary

	fmt.Fprintf(w, "🐣 Hatchery Inventory Summary\n")
	fmt.Fprintf(w, "=============================\n\n")
	fmt.Fprintf(w, "Run: %s\n", snapshot.RunID)
	fmt.Fprintf(w, "Trolleys: %d (good %d, warn %d, bad %d)\n", s.Trolleys, s.Good, s.Warn, s.Bad)
	if config.showSlots() {
		fmt.Fprintf(w, "Rack: %d assigned, %d planned\n", s.Assigned, s.Overflow)
	}
	if config.showPack() {
		fmt.Fprintf(w, "Box-trolleys: %d (%d full, %d boxes)\n", s.BoxTrolleys, s.FullBoxTrolleys, s.Boxes)
		fmt.Fprintf(w, "Chicks packed: %d of %d fertile, %d trolleys skipped\n", s.Packed, s.Fertile, s.Skipped)
	}
	if config.RunTime > 0 {
		fmt.Fprintf(w, "Run Time: %v\n", config.RunTime)
	}
	fmt.Fprintln(w)

	if config.showSlots() && len(snapshot.Assignments) > 0 {
		fmt.Fprintf(w, "📋 Slot Assignments:\n")
		fmt.Fprintf(w, "%-8s %-15s %-20s %-8s %-8s %-9s %-6s %-10s\n",
			"Slot", "Trolley", "Transferred", "Fertile", "Candled", "Fertility", "Status", "Shortfall")
		fmt.Fprintf(w, "%-8s %-15s %-20s %-8s %-8s %-9s %-6s %-10s\n",
			"--------", "---------------", "--------------------", "--------", "--------", "---------", "------", "----------")

		for _, a := range snapshot.Assignments {
			r := NewAssignmentRecord(a)
			transferred := r.TransferredAt
			if transferred == "" {
				transferred = "-"
			}
			fmt.Fprintf(w, "%-8s %-15s %-20s %-8d %-8d %-9s %-6s %-10d\n",
				r.Slot,
				r.TrolleyID,
				transferred,
				r.Fertile,
				r.Candled,
				r.FertilityPercent+"%",
				r.Status,
				r.ViableShortfall)
		}
		fmt.Fprintln(w)
	}

	if config.showPack() && len(snapshot.BoxTrolleys) > 0 {
		fmt.Fprintf(w, "📦 Chick Box-Trolleys:\n")
		fmt.Fprintf(w, "%-20s %-15s %-8s %-6s %-7s %-7s %-5s\n",
			"Box-Trolley", "Source", "Slot", "Boxes", "PerBox", "Chicks", "Full")
		fmt.Fprintf(w, "%-20s %-15s %-8s %-6s %-7s %-7s %-5s\n",
			"--------------------", "---------------", "--------", "------", "-------", "-------", "-----")

		for _, bt := range snapshot.BoxTrolleys {
			full := "no"
			if bt.Full {
				full = "yes"
			}
			fmt.Fprintf(w, "%-20s %-15s %-8s %-6d %-7d %-7d %-5s\n",
				bt.ID,
				bt.SourceID,
				bt.SourceSlotLabel,
				bt.Boxes,
				bt.PerBox,
				bt.Chicks,
				full)
		}
		fmt.Fprintln(w)
	}
}

// generateJSONOutput creates JSON output
func generateJSONOutput(snapshot *dto.InventorySnapshot, config Config) error {
	doc := jsonDocument{
		RunID:       snapshot.RunID,
		GeneratedAt: snapshot.GeneratedAt,
		Summary:     snapshot.Summary,
	}
	if config.showSlots() {
		doc.Assignments = make([]AssignmentRecord, len(snapshot.Assignments))
		for i, a := range snapshot.Assignments {
			doc.Assignments[i] = NewAssignmentRecord(a)
		}
	}
	if config.showPack() {
		doc.BoxTrolleys = make([]BoxTrolleyRecord, len(snapshot.BoxTrolleys))
		for i, bt := range snapshot.BoxTrolleys {
			doc.BoxTrolleys[i] = NewBoxTrolleyRecord(bt)
		}
	}

	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.stdout(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, string(config.View)+".json")
	if err := os.WriteFile(filename, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput creates one CSV file per rendered section
func generateCSVOutput(snapshot *dto.InventorySnapshot, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	if config.showSlots() {
		filename := filepath.Join(config.OutputDir, "slot_assignments.csv")
		if err := writeFile(filename, func(w io.Writer) error {
			return WriteAssignmentsCSV(w, snapshot.Assignments)
		}); err != nil {
			return fmt.Errorf("failed to write slot assignments CSV: %w", err)
		}
		written = append(written, filename)
	}
	if config.showPack() {
		filename := filepath.Join(config.OutputDir, "box_trolleys.csv")
		if err := writeFile(filename, func(w io.Writer) error {
			return WriteBoxTrolleysCSV(w, snapshot.BoxTrolleys)
		}); err != nil {
			return fmt.Errorf("failed to write box-trolleys CSV: %w", err)
		}
		written = append(written, filename)
	}

	if config.Verbose {
		fmt.Fprintf(config.stdout(), "💾 CSV results saved to:\n")
		for _, filename := range written {
			fmt.Fprintf(config.stdout(), "  %s\n", filename)
		}
	}
	return nil
}

func writeFile(filename string, write func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteAssignmentsCSV writes slot assignments with a header row
func WriteAssignmentsCSV(w io.Writer, assignments []entities.SlotAssignment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{
		"slot", "slot_number", "planned", "trolley_id", "hatcher_id", "transferred_at",
		"fertile", "candled", "fertility_percent", "status", "viable_shortfall", "shortfall_percent",
	}); err != nil {
		return err
	}

	for _, a := range assignments {
		r := NewAssignmentRecord(a)
		slotNumber := ""
		if r.SlotNumber != nil {
			slotNumber = strconv.Itoa(*r.SlotNumber)
		}
		if err := writer.Write([]string{
			r.Slot,
			slotNumber,
			strconv.FormatBool(r.Planned),
			r.TrolleyID,
			r.HatcherID,
			r.TransferredAt,
			strconv.Itoa(r.Fertile),
			strconv.Itoa(r.Candled),
			r.FertilityPercent,
			r.Status,
			strconv.Itoa(r.ViableShortfall),
			r.ShortfallPercent,
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteBoxTrolleysCSV writes chick box-trolleys with a header row
func WriteBoxTrolleysCSV(w io.Writer, boxTrolleys []entities.ChickBoxTrolley) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{
		"id", "source_trolley_id", "source_slot", "source_transferred_at", "boxes", "per_box", "chicks", "full",
	}); err != nil {
		return err
	}

	for _, bt := range boxTrolleys {
		r := NewBoxTrolleyRecord(bt)
		if err := writer.Write([]string{
			r.ID,
			r.SourceID,
			r.SourceSlot,
			r.SourceTransferredAt,
			strconv.Itoa(r.Boxes),
			strconv.Itoa(r.PerBox),
			strconv.Itoa(r.Chicks),
			strconv.FormatBool(r.Full),
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
