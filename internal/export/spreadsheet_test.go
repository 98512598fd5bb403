package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/jonathan/intelliresume/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestHistoryWorkbook(t *testing.T) {
	entries := []types.HistoryEntry{
		{
			ID:        "id-2",
			Name:      "Jane Doe",
			Timestamp: time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC),
			Resume: types.ResumeDocument{
				Contact:    types.ContactInfo{Email: "jane@example.com"},
				Experience: []types.ExperienceEntry{{}, {}},
				Skills:     []string{"Go", "SQL"},
			},
		},
		{ID: "id-1", Name: "Untitled Resume"},
	}

	f, err := HistoryWorkbook(entries)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Jane Doe", rows[1][0])
	assert.Equal(t, "2024-06-01 10:30:00", rows[1][1])
	assert.Equal(t, "jane@example.com", rows[1][2])
	assert.Equal(t, "2", rows[1][4])
	assert.Equal(t, "Go, SQL", rows[1][6])
	assert.Equal(t, "Untitled Resume", rows[2][0])
}

func TestHistoryBytes_Readable(t *testing.T) {
	data, err := HistoryBytes(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
