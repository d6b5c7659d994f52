package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/hatchery/pkg/domain/entities"
)

const trolleysCSV = `trolley_id,hatcher_id,transferred_at,fertile,infertile,early_dead,late_dead,cracked,capacity,prehatch_ref,operator,vaccine,vaccine_batch,status
T-001,H-01,2025-03-01T06:00:00Z,3000,300,20,10,5,3520,SET-01-01,Kiss Anna,Marek,MB-22,
T-002,H-02,,0,0,0,0,0,,,,,,bad
`

func TestLoader_ReadTrolleys(t *testing.T) {
	trolleys, err := NewLoader().ReadTrolleys(strings.NewReader(trolleysCSV))
	require.NoError(t, err)
	require.Len(t, trolleys, 2)

	first := trolleys[0]
	assert.Equal(t, entities.TrolleyID("T-001"), first.ID)
	assert.Equal(t, "H-01", first.HatcherID)
	require.NotNil(t, first.TransferredAt)
	assert.True(t, first.TransferredAt.Equal(time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)))
	assert.Equal(t, entities.CandlingCounts{Fertile: 3000, Infertile: 300, EarlyDead: 20, LateDead: 10, Cracked: 5}, first.Candling)
	assert.Equal(t, 3520, first.Capacity)
	require.NotNil(t, first.PreHatchRef)
	assert.Equal(t, "SET-01-01", *first.PreHatchRef)
	assert.Equal(t, "Kiss Anna", first.Operator)
	assert.Equal(t, entities.VaccineInfo{Name: "Marek", Batch: "MB-22"}, first.Vaccine)
	assert.Nil(t, first.Status)

	second := trolleys[1]
	assert.Nil(t, second.TransferredAt, "empty timestamp should load as nil")
	assert.Nil(t, second.PreHatchRef)
	assert.Equal(t, 0, second.Capacity)
	require.NotNil(t, second.Status)
	assert.Equal(t, entities.StatusBad, *second.Status)
}

func TestLoader_ReadTrolleys_Errors(t *testing.T) {
	header := strings.Join(trolleyHeader, ",") + "\n"

	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "header mismatch",
			input:    "id,fertile\nT-1,10\n",
			contains: "trolleys CSV header mismatch",
		},
		{
			name:     "empty file",
			input:    "",
			contains: "must have a header row",
		},
		{
			name:     "bad timestamp",
			input:    header + "T-1,H,yesterday,1,0,0,0,0,,,,,,\n",
			contains: "row 2: invalid transferred_at format",
		},
		{
			name:     "non-numeric count",
			input:    header + "T-1,H,,many,0,0,0,0,,,,,,\n",
			contains: "row 2: invalid fertile",
		},
		{
			name:     "negative count",
			input:    header + "T-1,H,,-5,0,0,0,0,,,,,,\n",
			contains: "fertile count cannot be negative",
		},
		{
			name:     "unknown status",
			input:    header + "T-1,H,,1,0,0,0,0,,,,,,excellent\n",
			contains: "invalid fertility status",
		},
		{
			name:     "missing id",
			input:    header + ",H,,1,0,0,0,0,,,,,,\n",
			contains: "trolley id cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().ReadTrolleys(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoader_ReadPreHatchPositions(t *testing.T) {
	input := `position_id,setter_id,occupied,trolley_id
SET-01-01,SET-01,true,T-001
SET-01-02,SET-01,false,
`
	positions, err := NewLoader().ReadPreHatchPositions(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, positions, 2)

	assert.True(t, positions[0].Occupied)
	assert.Equal(t, entities.TrolleyID("T-001"), positions[0].TrolleyID)
	assert.False(t, positions[1].Occupied)

	_, err = NewLoader().ReadPreHatchPositions(strings.NewReader("position_id,setter_id,occupied,trolley_id\nSET-1,S,maybe,\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid occupied value")
}

func TestLoader_LoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trolleys.csv")
	require.NoError(t, os.WriteFile(path, []byte(trolleysCSV), 0o600))

	trolleys, err := NewLoader().LoadTrolleys(path)
	require.NoError(t, err)
	assert.Len(t, trolleys, 2)

	_, err = NewLoader().LoadPreHatchPositions(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open pre-hatch file")
}
