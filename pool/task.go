package pool

import (
	"context"
	"time"
)

// VideoTask is the unit of work for one source video.
type VideoTask struct {
	ID            string
	SourcePath    string
	DisplayName   string
	DestSubfolder string
}

// Status is the terminal state of a task.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	// StatusCancelled marks tasks interrupted by, or never started because of, a
	// cancelled context.
	StatusCancelled Status = "cancelled"
)

// Result describes how a task ended.
type Result struct {
	Task   VideoTask
	Worker int
	Status Status
	Frames int
	Err    error

	Started  time.Time
	Finished time.Time
}

// Duration is the wall time the task spent on a worker.
func (r Result) Duration() time.Duration {
	if r.Started.IsZero() || r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// TaskFunc processes one task and returns the number of frames written. It reports
// the running frame count through progress.
type TaskFunc func(ctx context.Context, task VideoTask, progress func(frames int)) (int, error)

// Summary counts results by status.
type Summary struct {
	Completed int
	Failed    int
	Cancelled int
	Frames    int
}

// Summarize aggregates a batch.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusCompleted:
			s.Completed++
		case StatusFailed:
			s.Failed++
		case StatusCancelled:
			s.Cancelled++
		}
		s.Frames += r.Frames
	}
	return s
}

// OK reports whether every task completed.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Cancelled == 0
}
