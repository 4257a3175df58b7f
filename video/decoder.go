package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"sync"

	"github.com/google/shlex"
	"github.com/lepinkainen/vidframes/frames"
)

// ErrDecode is returned when ffmpeg stops with an error in the middle of a stream.
var ErrDecode = errors.New("decode failed")

// DecoderOptions configures the ffmpeg subprocess used for decoding.
type DecoderOptions struct {
	FFmpegPath  string
	FFprobePath string
	// InputArgs are passed to ffmpeg before -i, e.g. hardware acceleration flags.
	InputArgs []string
}

// ParseDecoderArgs splits a shell-style argument string.
func ParseDecoderArgs(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("parse decoder args %q: %w", s, err)
	}
	return args, nil
}

// FFmpegDecoder streams raw RGBA frames from an ffmpeg subprocess. The process is
// started on the first DecodeNext call, so opening only probes the file.
type FFmpegDecoder struct {
	ctx  context.Context
	path string
	opts DecoderOptions
	meta VideoMetadata

	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer

	waitOnce sync.Once
	waitErr  error
}

// OpenFFmpeg probes path and returns a decoder for its first video stream. ctx bounds
// the lifetime of the ffmpeg process.
func OpenFFmpeg(ctx context.Context, path string, opts DecoderOptions) (*FFmpegDecoder, error) {
	meta, err := Probe(ctx, opts.FFprobePath, path)
	if err != nil {
		return nil, err
	}
	if !(meta.FPS > 0) {
		return nil, fmt.Errorf("%w: %v", frames.ErrInvalidSourceFPS, meta.FPS)
	}

	return &FFmpegDecoder{ctx: ctx, path: path, opts: opts, meta: meta}, nil
}

// Metadata implements frames.Decoder.
func (d *FFmpegDecoder) Metadata() frames.Metadata {
	return d.meta.FrameMetadata()
}

// VideoMetadata returns the full probe result.
func (d *FFmpegDecoder) VideoMetadata() VideoMetadata {
	return d.meta
}

func (d *FFmpegDecoder) args() []string {
	args := []string{"-v", "error", "-nostdin", "-noautorotate"}
	args = append(args, d.opts.InputArgs...)
	return append(args, "-i", d.path,
		"-map", "0:v:0",
		"-fps_mode", "passthrough",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	)
}

func (d *FFmpegDecoder) start() error {
	ffmpeg := d.opts.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = ffmpegCmd
	}

	d.cmd = exec.CommandContext(d.ctx, ffmpeg, d.args()...)
	d.cmd.Stderr = &d.stderr
	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdout: %w", err)
	}
	d.stdout = stdout

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	return nil
}

// DecodeNext implements frames.Decoder. It returns io.EOF after the last frame and
// an error wrapping ErrDecode when ffmpeg exits with a failure.
func (d *FFmpegDecoder) DecodeNext() (image.Image, error) {
	if d.cmd == nil {
		if err := d.start(); err != nil {
			return nil, err
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, d.meta.Width, d.meta.Height))
	if _, err := io.ReadFull(d.stdout, img.Pix); err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: read frame: %w", ErrDecode, err)
		}
		if werr := d.wait(); werr != nil {
			return nil, werr
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated frame", ErrDecode)
		}
		return nil, io.EOF
	}
	return img, nil
}

func (d *FFmpegDecoder) wait() error {
	d.waitOnce.Do(func() {
		if err := d.cmd.Wait(); err != nil {
			if ctxErr := d.ctx.Err(); ctxErr != nil {
				d.waitErr = ctxErr
				return
			}
			d.waitErr = fmt.Errorf("%w: ffmpeg: %v: %s", ErrDecode, err, extractFirstLine(d.stderr.String()))
		}
	})
	return d.waitErr
}

// Close stops ffmpeg if it is still running and releases the pipe.
func (d *FFmpegDecoder) Close() error {
	if d.cmd == nil || d.cmd.Process == nil {
		return nil
	}
	if d.cmd.ProcessState == nil {
		_ = d.cmd.Process.Kill()
	}
	_ = d.wait()
	return nil
}
