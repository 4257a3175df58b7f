package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lepinkainen/vidframes/frames"
	"github.com/lepinkainen/vidframes/types"
	"github.com/lepinkainen/vidframes/ui"
	"github.com/lepinkainen/vidframes/utils"
	"github.com/lepinkainen/vidframes/video"
)

// ProbeCmd shows what an extraction would do without writing anything.
type ProbeCmd struct {
	Path       string   `arg:"" name:"path" help:"Video file or folder of videos" type:"existingpath"`
	FPS        int      `short:"f" name:"fps" help:"Sampling rate to plan for" default:"10"`
	Extensions []string `help:"Video file extensions to pick up" default:".mp4,.mov,.avi"`
	Integrity  bool     `help:"Decode the start of each video to detect corruption"`
}

// Run probes every video and prints its stream properties and the sampling plan.
func (cmd *ProbeCmd) Run(appCtx *types.AppContext) error {
	log := appCtx.Log()

	if cmd.FPS <= 0 {
		return fmt.Errorf("%w: fps must be greater than zero (got %d)", frames.ErrInvalidOptions, cmd.FPS)
	}
	tools, err := utils.LookupFFmpeg()
	if err != nil {
		return err
	}

	descs, err := cmd.descriptors()
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("Probing %d files...", len(descs))))

	ctx := context.Background()
	var failed int
	for _, d := range descs {
		meta, err := video.Probe(ctx, tools.FFprobe, d.Path)
		if err != nil {
			fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s: %v", d.Name, err)))
			failed++
			continue
		}

		fmt.Printf("📹 %s\n", d.Name)
		fmt.Printf("   🎥 Codec: %s, %s @ %.3f fps\n", meta.Codec, meta.Resolution(), meta.FPS)
		fmt.Println("   " + planLine(meta, cmd.FPS))

		if cmd.Integrity {
			if err := video.ValidateVideoIntegrity(ctx, tools.FFprobe, d.Path); err != nil {
				log.WithField("video", d.Name).WithError(err).Warn("Integrity check failed")
				fmt.Printf("   %s\n", ui.ErrorStyle.Render("❌ "+err.Error()))
				failed++
			} else {
				fmt.Printf("   %s\n", ui.SuccessStyle.Render("✅ Integrity OK"))
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be probed", failed, len(descs))
	}
	return nil
}

func (cmd *ProbeCmd) descriptors() ([]video.Descriptor, error) {
	fi, err := os.Stat(cmd.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", cmd.Path, err)
	}
	if fi.IsDir() {
		return video.FindVideoFiles(cmd.Path, video.NormalizeExtensions(cmd.Extensions))
	}

	abs, err := filepath.Abs(cmd.Path)
	if err != nil {
		return nil, err
	}
	return []video.Descriptor{{Name: filepath.Base(abs), Path: abs}}, nil
}

// planLine describes how a video would be sampled at fps.
func planLine(meta video.VideoMetadata, fps int) string {
	eff := frames.EffectiveFPS(fps, meta.FPS)
	interval := frames.SamplingInterval(fps, meta.FPS)

	line := fmt.Sprintf("⚙️  Sampling: every %d. frame (%.3g fps)", interval, eff)
	if meta.Frames > 0 {
		line += fmt.Sprintf(", %d of %d frames", frames.SampledCount(meta.Frames, interval), meta.Frames)
	}
	if meta.Duration > 0 {
		line += fmt.Sprintf(", %.1fs", meta.Duration)
	}
	return line
}
