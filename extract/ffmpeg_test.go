package extract

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/vidframes/frames"
	"github.com/lepinkainen/vidframes/sink"
	"github.com/lepinkainen/vidframes/video"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_FFmpegEndToEnd(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH")
	}

	srcDir := t.TempDir()
	clip := filepath.Join(srcDir, "pattern.mp4")
	out, err := exec.Command("ffmpeg", "-v", "error", "-f", "lavfi",
		"-i", "testsrc=duration=2:size=64x48:rate=30", "-pix_fmt", "yuv420p", "-y", clip).CombinedOutput()
	if err != nil {
		t.Skipf("cannot render test video: %v: %s", err, out)
	}

	descs, err := video.FindVideoFiles(srcDir, nil)
	require.NoError(t, err)
	tasks := NewTasks(descs)
	require.Len(t, tasks, 1)

	root := t.TempDir()
	s, err := sink.NewFileSink(root, sink.FormatPNG)
	require.NoError(t, err)

	opts := frames.Options{FPS: 10, Width: 32, CropYMin: intp(8), CropYMax: intp(40), Grayscale: true}
	e := New(FFmpegOpener(video.DecoderOptions{}), s, Config{Options: opts, Manifest: true}, nil)

	n, err := e.Run(context.Background(), tasks[0], nil)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	assert.Equal(t, expectedNames(20), listFrames(t, filepath.Join(root, "pattern_mp4")))

	m, err := sink.ReadManifest(filepath.Join(root, "pattern_mp4", sink.ManifestFileName))
	require.NoError(t, err)
	assert.NotEmpty(t, m.Codec)
	assert.Equal(t, 3, m.Interval)
}
