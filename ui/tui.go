package ui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/vidframes/pool"
)

// TUIObserver forwards dispatcher events to a running bubbletea program.
type TUIObserver struct {
	send      func(tea.Msg)
	total     int
	completed atomic.Int32
}

// NewTUIObserver returns an observer delivering messages through send, usually
// (*tea.Program).Send.
func NewTUIObserver(send func(tea.Msg), total int) *TUIObserver {
	return &TUIObserver{send: send, total: total}
}

func (o *TUIObserver) TaskStarted(worker int, task pool.VideoTask) {
	o.send(WorkerStartedMsg{WorkerID: worker, Filename: task.DisplayName})
}

func (o *TUIObserver) TaskProgress(worker int, task pool.VideoTask, frames int) {
	o.send(WorkerProgressMsg{WorkerID: worker, Frames: frames})
}

func (o *TUIObserver) TaskFinished(res pool.Result) {
	o.send(WorkerCompletedMsg{
		WorkerID:  res.Worker,
		Filename:  res.Task.DisplayName,
		Subfolder: res.Task.DestSubfolder,
		Frames:    res.Frames,
		Status:    res.Status,
		Error:     res.Err,
	})
	o.send(OverallProgressMsg{Completed: int(o.completed.Add(1)), Total: o.total})
}
