package ui

import "github.com/lepinkainen/vidframes/pool"

// TUI Message Types for worker communication
type WorkerStartedMsg struct {
	WorkerID int
	Filename string
}

type WorkerProgressMsg struct {
	WorkerID int
	Frames   int
}

type WorkerCompletedMsg struct {
	WorkerID  int
	Filename  string
	Subfolder string
	Frames    int
	Status    pool.Status
	Error     error
}

type OverallProgressMsg struct {
	Completed int
	Total     int
}

// BatchDoneMsg is sent once the dispatcher returned.
type BatchDoneMsg struct{}
