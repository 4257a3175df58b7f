package pool

import (
	"time"

	"github.com/lepinkainen/vidframes/types"
	"github.com/sirupsen/logrus"
)

// Observer is notified about task lifecycle events. Methods are called from worker
// goroutines and must be safe for concurrent use.
type Observer interface {
	TaskStarted(worker int, task VideoTask)
	TaskProgress(worker int, task VideoTask, frames int)
	TaskFinished(res Result)
}

// Observers fans events out to several observers in order.
type Observers []Observer

func (o Observers) TaskStarted(worker int, task VideoTask) {
	for _, ob := range o {
		ob.TaskStarted(worker, task)
	}
}

func (o Observers) TaskProgress(worker int, task VideoTask, frames int) {
	for _, ob := range o {
		ob.TaskProgress(worker, task, frames)
	}
}

func (o Observers) TaskFinished(res Result) {
	for _, ob := range o {
		ob.TaskFinished(res)
	}
}

// LogObserver writes the per-video start and finish summaries.
type LogObserver struct {
	Log *logrus.Logger
}

func (l LogObserver) TaskStarted(worker int, task VideoTask) {
	l.Log.WithFields(logrus.Fields{
		"video":  task.DisplayName,
		"worker": worker,
	}).Info("Processing video")
}

func (l LogObserver) TaskProgress(worker int, task VideoTask, frames int) {
	l.Log.WithFields(logrus.Fields{
		"video":  task.DisplayName,
		"worker": worker,
		"frames": frames,
	}).Trace("Frame written")
}

func (l LogObserver) TaskFinished(res Result) {
	entry := l.Log.WithFields(logrus.Fields{
		"video":    res.Task.DisplayName,
		"task_id":  res.Task.ID,
		"worker":   res.Worker,
		"frames":   res.Frames,
		"duration": res.Duration().Round(time.Millisecond),
	})

	switch res.Status {
	case StatusCompleted:
		entry.WithField(types.SuccessField, true).Info("Finished video")
	case StatusCancelled:
		entry.Warn("Cancelled video")
	default:
		entry.WithError(res.Err).Error("Failed to process video")
	}
}
