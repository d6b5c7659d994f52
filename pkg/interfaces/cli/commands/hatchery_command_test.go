package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/hatchery/pkg/interfaces/cli/output"
)

const testTrolleysCSV = `trolley_id,hatcher_id,transferred_at,fertile,infertile,early_dead,late_dead,cracked,capacity,prehatch_ref,operator,vaccine,vaccine_batch,status
HT-001,H1,2025-03-01T06:00:00Z,3000,200,0,0,0,3520,SET-01,m.okafor,,,
HT-002,H1,2025-03-01T09:00:00Z,2880,0,0,0,0,,SET-02,m.okafor,,,
HT-003,H1,,1000,1000,0,0,0,,,j.lindqvist,,,
`

const testPreHatchCSV = `position_id,setter_id,occupied,trolley_id
SET-01,S1,true,HT-001
SET-02,S1,false,
`

func writeScenario(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, trolleysFileName), []byte(testTrolleysCSV), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, preHatchFileName), []byte(testPreHatchCSV), 0o600))
	return dir
}

type snapshotDoc struct {
	Summary struct {
		Trolleys    int `json:"trolleys"`
		Assigned    int `json:"assigned"`
		Skipped     int `json:"skipped"`
		Packed      int `json:"packed"`
		BoxTrolleys int `json:"box_trolleys"`
		Bad         int `json:"bad"`
	} `json:"summary"`
	Assignments []output.AssignmentRecord `json:"assignments"`
	BoxTrolleys []output.BoxTrolleyRecord `json:"box_trolleys"`
}

func runJSON(t *testing.T, config Config) snapshotDoc {
	t.Helper()
	var buf bytes.Buffer
	config.Format = "json"
	config.Stdout = &buf

	require.NoError(t, NewHatcheryCommand(config, nil).Execute(context.Background()))

	var doc snapshotDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	return doc
}

func TestHatcheryCommand_Snapshot(t *testing.T) {
	dir := writeScenario(t)
	metricsFile := filepath.Join(t.TempDir(), "metrics.prom")

	doc := runJSON(t, Config{View: output.ViewSnapshot, ScenarioDir: dir, MetricsFile: metricsFile})

	assert.Equal(t, 3, doc.Summary.Trolleys)
	assert.Equal(t, 3, doc.Summary.Assigned)
	assert.Equal(t, 2, doc.Summary.Skipped)
	assert.Equal(t, 3000, doc.Summary.Packed)
	assert.Equal(t, 1, doc.Summary.Bad)

	require.Len(t, doc.Assignments, 3)
	assert.Equal(t, "HT-002", doc.Assignments[0].TrolleyID)
	assert.Equal(t, "A1", doc.Assignments[0].Slot)
	assert.Equal(t, "HT-003", doc.Assignments[2].TrolleyID, "missing timestamp sorts last")

	require.Len(t, doc.BoxTrolleys, 2)
	assert.Equal(t, "HT-001-BT02", doc.BoxTrolleys[0].ID)
	assert.Equal(t, "A2", doc.BoxTrolleys[0].SourceSlot)

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "hatchery_chicks_packed_total 3000")
	assert.Contains(t, string(metrics), `hatchery_box_trolleys_packed_total{fill="full"} 1`)
}

func TestHatcheryCommand_SlotsNeedsNoPreHatch(t *testing.T) {
	dir := writeScenario(t)

	doc := runJSON(t, Config{View: output.ViewSlots, TrolleysFile: filepath.Join(dir, trolleysFileName)})

	assert.Len(t, doc.Assignments, 3)
	assert.Empty(t, doc.BoxTrolleys)
}

func TestHatcheryCommand_PackWithIndividualFiles(t *testing.T) {
	dir := writeScenario(t)

	doc := runJSON(t, Config{
		View:         output.ViewPack,
		TrolleysFile: filepath.Join(dir, trolleysFileName),
		PreHatchFile: filepath.Join(dir, preHatchFileName),
	})

	require.Len(t, doc.BoxTrolleys, 2)
	assert.Equal(t, 2, doc.Summary.BoxTrolleys)
	for _, bt := range doc.BoxTrolleys {
		assert.Equal(t, "HT-001", bt.SourceID)
	}
}

func TestHatcheryCommand_ConfigFile(t *testing.T) {
	dir := writeScenario(t)
	configPath := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("packing:\n  boxes_per_trolley: 40\n"), 0o600))

	doc := runJSON(t, Config{View: output.ViewPack, ScenarioDir: dir, ConfigFile: configPath})

	// 40 boxes of 90 hold 3600, so 3000 chicks fit on one partial box-trolley
	require.Len(t, doc.BoxTrolleys, 1)
	assert.Equal(t, 34, doc.BoxTrolleys[0].Boxes)
	assert.False(t, doc.BoxTrolleys[0].Full)
}

func TestHatcheryCommand_Errors(t *testing.T) {
	dir := writeScenario(t)
	badConfig := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badConfig, []byte("packing:\n  reduced_every: 0\n"), 0o600))
	duplicateTrolleys := filepath.Join(dir, "duplicates.csv")
	require.NoError(t, os.WriteFile(duplicateTrolleys, []byte(testTrolleysCSV+"HT-001,H2,,10,0,0,0,0,,,,,,\n"), 0o600))

	tests := []struct {
		name     string
		config   Config
		contains string
	}{
		{"no inputs", Config{View: output.ViewSlots, Format: "text"}, "must specify either --scenario"},
		{"pack without prehatch", Config{View: output.ViewPack, Format: "text", TrolleysFile: filepath.Join(dir, trolleysFileName)}, "pack requires --prehatch"},
		{"missing file", Config{View: output.ViewSlots, Format: "text", TrolleysFile: filepath.Join(dir, "nope.csv")}, "trolleys.csv not found"},
		{"invalid config", Config{View: output.ViewSnapshot, Format: "text", ScenarioDir: dir, ConfigFile: badConfig}, "reduced density interval must be at least 1"},
		{"duplicate trolley", Config{View: output.ViewSlots, Format: "text", TrolleysFile: duplicateTrolleys}, "consistency validation failed"},
		{"bad format", Config{View: output.ViewSnapshot, Format: "yaml", ScenarioDir: dir}, "unsupported output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.config.Stdout = &buf
			err := NewHatcheryCommand(tt.config, nil).Execute(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
