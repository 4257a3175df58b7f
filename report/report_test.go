package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/lepinkainen/vidframes/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []pool.Result {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return []pool.Result{
		{
			Task:     pool.VideoTask{ID: "1", SourcePath: "/v/a.mp4", DisplayName: "a.mp4", DestSubfolder: "a_mp4"},
			Status:   pool.StatusCompleted,
			Frames:   20,
			Started:  start,
			Finished: start.Add(1500 * time.Millisecond),
		},
		{
			Task:   pool.VideoTask{ID: "2", SourcePath: "/v/b, final.mov", DisplayName: "b, final.mov", DestSubfolder: "b, final_mov"},
			Status: pool.StatusFailed,
			Err:    errors.New("probe failed: moov atom not found"),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	var rows []Row
	require.NoError(t, csvutil.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "completed", rows[0].Status)
	assert.Equal(t, 20, rows[0].Frames)
	assert.InDelta(t, 1.5, rows[0].Seconds, 1e-9)
	assert.Empty(t, rows[0].Error)

	assert.Equal(t, "b, final.mov", rows[1].Name)
	assert.Equal(t, "failed", rows[1].Status)
	assert.Equal(t, "probe failed: moov atom not found", rows[1].Error)

	header, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
	assert.Equal(t, "id,name,source,subfolder,status,frames,duration_seconds,error", string(header))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteFile(path, sampleResults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a_mp4")

	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "missing", "report.csv"), nil))
}
