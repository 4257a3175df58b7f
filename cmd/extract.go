package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/vidframes/extract"
	"github.com/lepinkainen/vidframes/frames"
	"github.com/lepinkainen/vidframes/metrics"
	"github.com/lepinkainen/vidframes/pool"
	"github.com/lepinkainen/vidframes/report"
	"github.com/lepinkainen/vidframes/sink"
	"github.com/lepinkainen/vidframes/types"
	"github.com/lepinkainen/vidframes/ui"
	"github.com/lepinkainen/vidframes/utils"
	"github.com/lepinkainen/vidframes/video"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// ExtractCmd samples frames from every video in a folder.
type ExtractCmd struct {
	Source string `short:"s" help:"Folder containing the source videos" type:"existingdir" required:""`
	Dest   string `short:"d" help:"Destination folder, one subfolder per video" type:"path" default:"./out"`

	FPS      int  `short:"f" name:"fps" help:"Frames per second to extract (capped at the video's own rate)" default:"10"`
	Width    int  `short:"W" help:"Resize frames to this width"`
	Height   int  `short:"H" help:"Resize frames to this height"`
	CropXMin *int `name:"crop-x-min" help:"Left crop bound, applied after resizing"`
	CropXMax *int `name:"crop-x-max" help:"Right crop bound, applied after resizing"`
	CropYMin *int `name:"crop-y-min" help:"Top crop bound, applied after resizing"`
	CropYMax *int `name:"crop-y-max" help:"Bottom crop bound, applied after resizing"`
	Gray     bool `short:"g" help:"Convert frames to grayscale"`

	Workers    int      `short:"t" aliases:"threads" help:"Number of videos processed in parallel" default:"4"`
	QueueSize  int      `help:"Decoded frames buffered per video" default:"128"`
	NoInput    bool     `aliases:"ni" help:"Do not ask for confirmation before starting"`
	Format     string   `help:"Output image format" enum:"png,jpg" default:"png"`
	Extensions []string `help:"Video file extensions to pick up" default:".mp4,.mov,.avi"`

	Manifest    bool   `help:"Write manifest.json with timestamps and hashes next to the frames"`
	Report      string `help:"Write a CSV summary of the batch to this file" type:"path"`
	MetricsFile string `help:"Write prometheus textfile metrics to this file" type:"path"`
	DecoderArgs string `help:"Extra ffmpeg input arguments, e.g. \"-hwaccel auto\""`
	TUI         bool   `help:"Show the interactive worker view (needs a terminal)"`
}

// Options converts the flags into the shared transform configuration.
func (cmd *ExtractCmd) Options() frames.Options {
	return frames.Options{
		FPS:       cmd.FPS,
		Width:     cmd.Width,
		Height:    cmd.Height,
		CropXMin:  cmd.CropXMin,
		CropXMax:  cmd.CropXMax,
		CropYMin:  cmd.CropYMin,
		CropYMax:  cmd.CropYMax,
		Grayscale: cmd.Gray,
	}
}

// Check collects every configuration problem.
func (cmd *ExtractCmd) Check() error {
	msgs := cmd.Options().Violations()
	if cmd.Workers <= 0 {
		msgs = append(msgs, fmt.Sprintf("workers must be greater than zero (got %d)", cmd.Workers))
	}
	if cmd.QueueSize <= 0 {
		msgs = append(msgs, fmt.Sprintf("queue size must be greater than zero (got %d)", cmd.QueueSize))
	}
	if len(msgs) > 0 {
		return &frames.ValidationError{Err: frames.ErrInvalidOptions, Violations: msgs}
	}
	return nil
}

func (cmd *ExtractCmd) Run(appCtx *types.AppContext) error {
	log := appCtx.Log()
	version := appCtx.AppVersion()

	if err := cmd.Check(); err != nil {
		var verr *frames.ValidationError
		if errors.As(err, &verr) {
			for _, msg := range verr.Violations {
				log.Error(msg)
			}
		}
		return err
	}

	descs, err := video.FindVideoFiles(cmd.Source, video.NormalizeExtensions(cmd.Extensions))
	if err != nil {
		return err
	}
	log.Infof("Found %d valid file(s).", len(descs))
	for _, d := range descs {
		log.Info("  " + d.Name)
	}
	if len(descs) == 0 {
		fmt.Println("🎯 No videos to extract.")
		return nil
	}

	if cmd.Workers > 1 && utils.IsNetworkDrive(cmd.Source) {
		log.Warnf("Source folder looks like a network drive, %d workers may compete for bandwidth", cmd.Workers)
	}

	if !cmd.NoInput && isatty.IsTerminal(os.Stdin.Fd()) {
		if err := confirm(os.Stdin, os.Stdout); err != nil {
			return err
		}
	}

	tools, err := utils.LookupFFmpeg()
	if err != nil {
		return err
	}
	decoderArgs, err := video.ParseDecoderArgs(cmd.DecoderArgs)
	if err != nil {
		return err
	}

	out, err := sink.NewFileSink(cmd.Dest, cmd.Format)
	if err != nil {
		return err
	}
	opener := extract.FFmpegOpener(video.DecoderOptions{
		FFmpegPath:  tools.FFmpeg,
		FFprobePath: tools.FFprobe,
		InputArgs:   decoderArgs,
	})
	extractor := extract.New(opener, out, extract.Config{
		Options:   cmd.Options(),
		QueueSize: cmd.QueueSize,
		Manifest:  cmd.Manifest,
	}, log)
	tasks := extract.NewTasks(descs)

	var observers []pool.Observer
	var recorder *metrics.Recorder
	if cmd.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		observers = append(observers, recorder)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("vidframes %s", version)))
	fmt.Println(ui.ProcessingStyle.Render(fmt.Sprintf("🎬 Extracting %d videos at %d fps with %d workers:", len(tasks), cmd.FPS, cmd.Workers)))

	var results []pool.Result
	if cmd.TUI && isatty.IsTerminal(os.Stdout.Fd()) {
		results, err = cmd.runWithTUI(ctx, log, version, tasks, extractor, observers)
	} else {
		results, err = cmd.runPlain(ctx, log, tasks, extractor, observers)
	}
	if err != nil {
		return err
	}

	if cmd.Report != "" {
		if err := report.WriteFile(cmd.Report, results); err != nil {
			log.WithError(err).Error("Failed to write report")
		}
	}
	if recorder != nil {
		if err := recorder.WriteTextfile(cmd.MetricsFile); err != nil {
			log.WithError(err).Error("Failed to write metrics")
		}
	}

	summary := pool.Summarize(results)
	printSummary(summary, out.Root())

	switch {
	case summary.Failed > 0:
		return fmt.Errorf("%d of %d videos failed", summary.Failed, len(results))
	case summary.Cancelled > 0:
		return fmt.Errorf("extraction cancelled, %d videos not finished", summary.Cancelled)
	}
	return nil
}

// runPlain logs per-video summaries. With info logging disabled a progress bar on
// stderr takes their place.
func (cmd *ExtractCmd) runPlain(ctx context.Context, log *logrus.Logger, tasks []pool.VideoTask, ex *extract.Extractor, observers []pool.Observer) ([]pool.Result, error) {
	observers = append(observers, pool.LogObserver{Log: log})
	if !log.IsLevelEnabled(logrus.InfoLevel) && isatty.IsTerminal(os.Stderr.Fd()) {
		observers = append(observers, ui.NewProgressObserver(len(tasks), os.Stderr))
	}

	d, err := pool.NewDispatcher(cmd.Workers, log, observers...)
	if err != nil {
		return nil, err
	}
	return d.Submit(ctx, tasks, ex.Run), nil
}

// runWithTUI runs the batch behind the bubbletea worker view. Log output is held
// back while the TUI owns the terminal and written out afterwards.
func (cmd *ExtractCmd) runWithTUI(ctx context.Context, log *logrus.Logger, version string, tasks []pool.VideoTask, ex *extract.Extractor, observers []pool.Observer) ([]pool.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var held bytes.Buffer
	prevOut := log.Out
	log.SetOutput(&held)
	defer func() {
		log.SetOutput(prevOut)
		_, _ = prevOut.Write(held.Bytes())
	}()

	workers := min(cmd.Workers, len(tasks))
	p := tea.NewProgram(ui.NewTUIModel(len(tasks), workers, version, cancel))

	observers = append(observers, pool.LogObserver{Log: log}, ui.NewTUIObserver(p.Send, len(tasks)))
	d, err := pool.NewDispatcher(cmd.Workers, log, observers...)
	if err != nil {
		return nil, err
	}

	var results []pool.Result
	done := make(chan struct{})
	go func() {
		defer close(done)
		results = d.Submit(ctx, tasks, ex.Run)
		p.Send(ui.BatchDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return results, fmt.Errorf("tui: %w", err)
	}
	<-done
	return results, nil
}

func confirm(in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "Press enter to confirm...")
	if _, err := bufio.NewReader(in).ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}
	return nil
}

// printSummary displays final statistics
func printSummary(s pool.Summary, dest string) {
	fmt.Printf("\n%s\n", ui.HeaderStyle.Render("📊 Extraction Summary"))
	fmt.Printf("   Completed: %d videos\n", s.Completed)
	fmt.Printf("   Failed: %d videos\n", s.Failed)
	if s.Cancelled > 0 {
		fmt.Printf("   Cancelled: %d videos\n", s.Cancelled)
	}
	fmt.Printf("   Frames written: %d\n", s.Frames)
	fmt.Printf("   Output: %s\n", dest)

	if s.OK() {
		fmt.Printf("\n%s\n", ui.SuccessStyle.Render("🎉 Extraction complete!"))
	} else {
		fmt.Printf("\n%s\n", ui.ErrorStyle.Render("⚠️  Extraction finished with problems, see the log above."))
	}
}
