package ui

import (
	"fmt"
	"io"

	"github.com/lepinkainen/vidframes/pool"
	"github.com/schollz/progressbar/v3"
)

// ProgressObserver renders a batch progress bar advancing once per finished video.
type ProgressObserver struct {
	bar *progressbar.ProgressBar
}

// NewProgressObserver creates a bar for total videos writing to w.
func NewProgressObserver(total int, w io.Writer) *ProgressObserver {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Extracting"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
	return &ProgressObserver{bar: bar}
}

func (p *ProgressObserver) TaskStarted(int, pool.VideoTask) {}

func (p *ProgressObserver) TaskProgress(int, pool.VideoTask, int) {}

func (p *ProgressObserver) TaskFinished(pool.Result) {
	_ = p.bar.Add(1)
}

// Done reports whether every video was counted.
func (p *ProgressObserver) Done() bool {
	return p.bar.IsFinished()
}
