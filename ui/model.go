package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/vidframes/pool"
)

// File log entry for the processed videos list
type FileLogEntry struct {
	Filename  string
	Subfolder string
	Frames    int
	Status    pool.Status
	Error     string
}

func (f FileLogEntry) FilterValue() string { return f.Filename }
func (f FileLogEntry) Title() string       { return f.Filename }
func (f FileLogEntry) Description() string {
	switch {
	case f.Error != "":
		return fmt.Sprintf("❌ %s", f.Error)
	case f.Status == pool.StatusCancelled:
		return "⏹ cancelled"
	}
	return fmt.Sprintf("✓ %d frames → %s", f.Frames, f.Subfolder)
}

// Worker state tracking
type WorkerState struct {
	ID          int
	CurrentFile string
	Frames      int
	Status      string // "idle", "processing", "completed", "cancelled", "error"
}

// TUI Model for the extraction batch
type TUIModel struct {
	// Application state
	totalFiles     int
	processedFiles int
	totalFrames    int
	workers        map[int]*WorkerState
	fileEntries    []FileLogEntry

	// UI components
	overallProgress progress.Model
	fileList        list.Model

	// Layout
	width  int
	height int

	// Control state
	cancel     func()
	cancelling bool
	done       bool

	// Version for display
	Version string
}

// NewTUIModel creates a new TUI model. cancel is called when the user asks to stop
// the batch; the model keeps running until BatchDoneMsg arrives.
func NewTUIModel(numFiles, numWorkers int, version string, cancel func()) TUIModel {
	workers := make(map[int]*WorkerState, numWorkers)
	for i := 0; i < numWorkers; i++ {
		workers[i] = &WorkerState{
			ID:     i,
			Status: "idle",
		}
	}

	fileList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "Processed Videos"

	return TUIModel{
		totalFiles:      numFiles,
		workers:         workers,
		overallProgress: progress.New(progress.WithDefaultGradient()),
		fileList:        fileList,
		cancel:          cancel,
		Version:         version,
	}
}

// Init implements tea.Model
func (m TUIModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.cancelling && m.cancel != nil {
				m.cancel()
			}
			m.cancelling = true
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.overallProgress.Width = max(msg.Width-30, 10)
		m.fileList.SetSize(msg.Width-4, msg.Height/3)

	case WorkerStartedMsg:
		if worker, ok := m.workers[msg.WorkerID]; ok {
			worker.CurrentFile = msg.Filename
			worker.Frames = 0
			worker.Status = "processing"
		}

	case WorkerProgressMsg:
		if worker, ok := m.workers[msg.WorkerID]; ok {
			worker.Frames = msg.Frames
		}

	case WorkerCompletedMsg:
		if worker, ok := m.workers[msg.WorkerID]; ok {
			switch msg.Status {
			case pool.StatusFailed:
				worker.Status = "error"
			case pool.StatusCancelled:
				worker.Status = "cancelled"
			default:
				worker.Status = "completed"
			}
			worker.CurrentFile = ""
			worker.Frames = 0
		}

		entry := FileLogEntry{
			Filename:  msg.Filename,
			Subfolder: msg.Subfolder,
			Frames:    msg.Frames,
			Status:    msg.Status,
		}
		if msg.Error != nil && msg.Status == pool.StatusFailed {
			entry.Error = msg.Error.Error()
		}
		m.totalFrames += msg.Frames

		m.fileEntries = append(m.fileEntries, entry)
		items := make([]list.Item, len(m.fileEntries))
		for i, entry := range m.fileEntries {
			items[i] = entry
		}
		m.fileList.SetItems(items)

	case OverallProgressMsg:
		m.processedFiles = msg.Completed
		if msg.Total > 0 {
			m.totalFiles = msg.Total
		}

	case BatchDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m TUIModel) View() string {
	if m.done {
		return ""
	}

	header := HeaderStyle.Render(fmt.Sprintf("vidframes %s", m.Version))

	overallPercent := 0.0
	if m.totalFiles > 0 {
		overallPercent = float64(m.processedFiles) / float64(m.totalFiles)
	}
	overallView := fmt.Sprintf("Overall Progress: %s (%d/%d videos, %d frames)",
		m.overallProgress.ViewAs(overallPercent),
		m.processedFiles,
		m.totalFiles,
		m.totalFrames)

	ids := make([]int, 0, len(m.workers))
	for id := range m.workers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	workerViews := []string{"Worker Status:"}
	for _, id := range ids {
		worker := m.workers[id]
		status := fmt.Sprintf("Worker %d: ", id+1)
		if worker.Status == "processing" {
			status += ProcessingStyle.Render(fmt.Sprintf("%s (%d frames)", worker.CurrentFile, worker.Frames))
		} else {
			status += worker.Status
		}
		workerViews = append(workerViews, status)
	}

	controls := "Controls: [q] Cancel batch"
	if m.cancelling {
		controls = ErrorStyle.Render("Cancelling, waiting for workers to stop...")
	}

	sections := []string{
		header,
		overallView,
		strings.Join(workerViews, "\n"),
		m.fileList.View(),
		controls,
	}

	return strings.Join(sections, "\n\n")
}
