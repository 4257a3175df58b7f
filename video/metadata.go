package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

const (
	ffprobeCmd = "ffprobe"
	ffmpegCmd  = "ffmpeg"
)

// ErrProbe is returned when ffprobe cannot describe a video stream.
var ErrProbe = errors.New("probe failed")

// Probe extracts the first video stream's metadata using ffprobe. An empty ffprobe
// path means the binary is looked up in PATH.
func Probe(ctx context.Context, ffprobe, videoFile string) (VideoMetadata, error) {
	var meta VideoMetadata

	if _, err := os.Stat(videoFile); err != nil {
		return meta, fmt.Errorf("%w: %w", ErrProbe, err)
	}
	if ffprobe == "" {
		ffprobe = ffprobeCmd
	}

	cmd := exec.CommandContext(ctx, ffprobe, "-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,r_frame_rate,avg_frame_rate,nb_frames,duration",
		"-of", "json", "--", videoFile)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return meta, fmt.Errorf("%w: %v: %s", ErrProbe, err, extractFirstLine(string(exitErr.Stderr)))
		}
		return meta, fmt.Errorf("%w: %w", ErrProbe, err)
	}

	return parseProbeOutput(output)
}

func parseProbeOutput(output []byte) (VideoMetadata, error) {
	var meta VideoMetadata

	// A temporary structure to unmarshal JSON from ffprobe output.
	var probe struct {
		Streams []struct {
			CodecName    string `json:"codec_name"`
			Width        int    `json:"width"`
			Height       int    `json:"height"`
			RFrameRate   string `json:"r_frame_rate"`
			AvgFrameRate string `json:"avg_frame_rate"`
			NbFrames     string `json:"nb_frames"`
			Duration     string `json:"duration"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(output, &probe); err != nil {
		return meta, fmt.Errorf("%w: parse ffprobe output: %w", ErrProbe, err)
	}
	if len(probe.Streams) == 0 {
		return meta, fmt.Errorf("%w: no video stream found", ErrProbe)
	}

	s := probe.Streams[0]
	meta.Codec = s.CodecName
	meta.Width = s.Width
	meta.Height = s.Height

	fps, err := ParseFrameRate(s.RFrameRate)
	if err != nil || fps == 0 {
		fps, err = ParseFrameRate(s.AvgFrameRate)
	}
	if err != nil {
		return meta, fmt.Errorf("%w: %w", ErrProbe, err)
	}
	meta.FPS = fps

	// Not every container reports these, zero means unknown.
	if n, err := strconv.Atoi(s.NbFrames); err == nil {
		meta.Frames = n
	}
	if d, err := strconv.ParseFloat(s.Duration, 64); err == nil {
		meta.Duration = d
	}

	if meta.Width <= 0 || meta.Height <= 0 {
		return meta, fmt.Errorf("%w: invalid frame size %s", ErrProbe, meta.Resolution())
	}
	return meta, nil
}

// ParseFrameRate parses ffprobe rationals like "30000/1001" or plain numbers.
// "0/0" yields 0 without an error.
func ParseFrameRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty frame rate")
	}

	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q: %w", s, err)
	}
	if !found {
		return n, nil
	}

	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q: %w", s, err)
	}
	if d == 0 {
		return 0, nil
	}
	return n / d, nil
}

func formatResolution(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
