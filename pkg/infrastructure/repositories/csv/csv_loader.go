package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vsinha/hatchery/pkg/domain/entities"
)

var (
	trolleyHeader = []string{
		"trolley_id", "hatcher_id", "transferred_at",
		"fertile", "infertile", "early_dead", "late_dead", "cracked",
		"capacity", "prehatch_ref", "operator", "vaccine", "vaccine_batch", "status",
	}
	preHatchHeader = []string{"position_id", "setter_id", "occupied", "trolley_id"}
)

// Loader handles loading hatchery data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadTrolleys loads trolley production records from a CSV file
func (l *Loader) LoadTrolleys(filename string) ([]*entities.Trolley, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open trolleys file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadTrolleys(file)
}

// ReadTrolleys reads trolley production records in CSV form
func (l *Loader) ReadTrolleys(r io.Reader) ([]*entities.Trolley, error) {
	records, err := readRecords(r, "trolleys", trolleyHeader)
	if err != nil {
		return nil, err
	}

	trolleys := make([]*entities.Trolley, 0, len(records))
	for i, record := range records {
		trolley, err := parseTrolley(record)
		if err != nil {
			return nil, fmt.Errorf("trolleys CSV row %d: %w", i+2, err)
		}
		trolleys = append(trolleys, trolley)
	}

	return trolleys, nil
}

// LoadPreHatchPositions loads pre-hatch occupancy records from a CSV file
func (l *Loader) LoadPreHatchPositions(filename string) ([]*entities.PreHatchPosition, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open pre-hatch file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadPreHatchPositions(file)
}

// ReadPreHatchPositions reads pre-hatch occupancy records in CSV form
func (l *Loader) ReadPreHatchPositions(r io.Reader) ([]*entities.PreHatchPosition, error) {
	records, err := readRecords(r, "pre-hatch", preHatchHeader)
	if err != nil {
		return nil, err
	}

	positions := make([]*entities.PreHatchPosition, 0, len(records))
	for i, record := range records {
		occupied, err := parseBool(record[2])
		if err != nil {
			return nil, fmt.Errorf("pre-hatch CSV row %d: invalid occupied value: %w", i+2, err)
		}
		position, err := entities.NewPreHatchPosition(
			strings.TrimSpace(record[0]),
			strings.TrimSpace(record[1]),
			occupied,
			entities.TrolleyID(strings.TrimSpace(record[3])),
		)
		if err != nil {
			return nil, fmt.Errorf("pre-hatch CSV row %d: %w", i+2, err)
		}
		positions = append(positions, position)
	}

	return positions, nil
}

// readRecords reads all rows, validates the header and returns the data rows
func readRecords(r io.Reader, name string, expectedHeader []string) ([][]string, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s CSV must have a header row", name)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", name, expectedHeader, header)
	}

	// encoding/csv already rejects rows whose field count differs from the header
	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseTrolley(record []string) (*entities.Trolley, error) {
	field := func(i int) string { return strings.TrimSpace(record[i]) }

	var transferredAt *time.Time
	if s := field(2); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("invalid transferred_at format: %s (expected RFC 3339)", s)
		}
		transferredAt = &ts
	}

	counts := make([]int, 6)
	for i, col := range []int{3, 4, 5, 6, 7, 8} {
		n, err := parseCount(field(col))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", trolleyHeader[col], err)
		}
		counts[i] = n
	}

	trolley, err := entities.NewTrolley(
		entities.TrolleyID(field(0)),
		field(1),
		transferredAt,
		entities.CandlingCounts{
			Fertile:   counts[0],
			Infertile: counts[1],
			EarlyDead: counts[2],
			LateDead:  counts[3],
			Cracked:   counts[4],
		},
	)
	if err != nil {
		return nil, err
	}
	if counts[5] < 0 {
		return nil, fmt.Errorf("capacity cannot be negative, got %d", counts[5])
	}
	trolley.Capacity = counts[5]

	if ref := field(9); ref != "" {
		trolley.PreHatchRef = &ref
	}
	trolley.Operator = field(10)
	trolley.Vaccine = entities.VaccineInfo{Name: field(11), Batch: field(12)}

	if s := field(13); s != "" {
		status, err := entities.ParseFertilityStatus(strings.ToLower(s))
		if err != nil {
			return nil, err
		}
		trolley.Status = &status
	}

	return trolley, nil
}

// parseCount parses an integer count; an empty field counts as zero
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %s", s)
	}
	return n, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %s", s)
	}
}
