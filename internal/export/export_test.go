package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsentinels/sentinelchat/internal/model"
)

func sampleEntries() []model.QueryLogEntry {
	base := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return []model.QueryLogEntry{
		{
			ID:        1,
			User:      "kkitching",
			Role:      "Team Physician",
			Question:  "List all injuries",
			Status:    model.QueryStatusNew,
			CreatedAt: base,
		},
		{
			ID:        2,
			User:      "kkitching",
			Role:      "Team Physician",
			Question:  "Doctor updated injury for #1 Marcus Reed.",
			Status:    model.QueryStatusAnswered,
			Note:      "Live injury update performed in demo UI.",
			CreatedAt: base.Add(time.Minute),
		},
	}
}

func TestQueryLogDataset(t *testing.T) {
	data := QueryLogDataset(sampleEntries())

	assert.Equal(t, []string{"id", "user", "role", "question", "status", "note", "created_at"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "1", data.Rows[0]["id"])
	assert.Equal(t, "kkitching", data.Rows[0]["user"])
	assert.Equal(t, "new", data.Rows[0]["status"])
	assert.Equal(t, "", data.Rows[0]["note"])
	assert.Equal(t, "2025-03-14 09:30", data.Rows[0]["created_at"])
	assert.Equal(t, "answered", data.Rows[1]["status"])
	assert.Equal(t, "Live injury update performed in demo UI.", data.Rows[1]["note"])
}

func TestQueryLogDatasetEmpty(t *testing.T) {
	data := QueryLogDataset(nil)
	assert.Equal(t, []string{"id", "user", "role", "question", "status", "note", "created_at"}, data.Headers)
	assert.Empty(t, data.Rows)
}

func TestCSVRender(t *testing.T) {
	out, err := NewCSVExporter().Render(QueryLogDataset(sampleEntries()))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, queryLogHeaders, records[0])
	assert.Equal(t, "List all injuries", records[1][3])
	assert.Equal(t, "Live injury update performed in demo UI.", records[2][5])
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(QueryLogDataset(sampleEntries()), "Query Log")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFRenderRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}
