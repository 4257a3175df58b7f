package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lepinkainen/vidframes/pool"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	task := pool.VideoTask{DisplayName: "a.mp4"}

	r.TaskStarted(0, task)
	r.TaskStarted(1, task)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.activeWorkers))

	for i := 1; i <= 5; i++ {
		r.TaskProgress(0, task, i)
	}
	start := time.Now()
	r.TaskFinished(pool.Result{Task: task, Status: pool.StatusCompleted, Frames: 5, Started: start, Finished: start.Add(2 * time.Second)})
	r.TaskFinished(pool.Result{Task: task, Status: pool.StatusFailed})

	assert.Equal(t, 5.0, testutil.ToFloat64(r.framesWritten))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.activeWorkers))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.videos.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.videos.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.videos.WithLabelValues("cancelled")))

	// One series each plus the three status labels.
	n, err := testutil.GatherAndCount(r.Registry())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.TaskProgress(0, pool.VideoTask{}, 1)

	path := filepath.Join(t.TempDir(), "vidframes.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "vidframes_frames_written_total 1")
	assert.Contains(t, string(data), `vidframes_videos_total{status="completed"} 0`)
}
