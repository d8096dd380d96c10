package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tasks/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []task.Task {
	created := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)
	return []task.Task{
		{ID: "a1", Text: "Acheter du pain", Priority: task.PriorityLow, CreatedAt: created},
		{ID: "b2", Text: "Ship, then rest", Priority: task.PriorityHigh, Completed: true, CreatedAt: created},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"json":  FormatJSON,
		"CSV":   FormatCSV,
		" pdf ": FormatPDF,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("ics")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExport_JSON(t *testing.T) {
	out, err := Export(sampleTasks(), FormatJSON)
	require.NoError(t, err)

	var decoded []task.Task
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "a1", decoded[0].ID)
	assert.True(t, decoded[1].Completed)
}

func TestExport_JSONEmpty(t *testing.T) {
	out, err := Export(nil, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestExport_CSV(t *testing.T) {
	out, err := Export(sampleTasks(), FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"a1", "Acheter du pain", "low", "false", "2024-03-01T09:30:00Z"}, records[1])
	assert.Equal(t, "Ship, then rest", records[2][1])
	assert.Equal(t, "true", records[2][3])
}

func TestExport_PDF(t *testing.T) {
	out, err := Export(sampleTasks(), FormatPDF)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := Export(sampleTasks(), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
