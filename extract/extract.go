// Package extract runs the per-video pipeline: open the decoder, validate the frame
// geometry, drain the sampled frames, transform them and hand them to the sink.
package extract

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/lepinkainen/vidframes/frames"
	"github.com/lepinkainen/vidframes/pool"
	"github.com/lepinkainen/vidframes/sink"
	"github.com/lepinkainen/vidframes/video"
	"github.com/sirupsen/logrus"
)

// OpenFunc opens the codec for one source file.
type OpenFunc func(ctx context.Context, path string) (frames.Decoder, error)

// FFmpegOpener opens sources through an ffmpeg subprocess.
func FFmpegOpener(opts video.DecoderOptions) OpenFunc {
	return func(ctx context.Context, path string) (frames.Decoder, error) {
		dec, err := video.OpenFFmpeg(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		return dec, nil
	}
}

// Sink receives the transformed frames.
type Sink interface {
	Claim(subfolder, source string) error
	Write(subfolder string, index int, img image.Image) (string, error)
	WriteManifest(subfolder string, m *sink.Manifest) error
}

// Config holds the settings shared by every task of a batch.
type Config struct {
	Options   frames.Options
	QueueSize int
	// Manifest enables the per-video manifest.json.
	Manifest bool
}

// Extractor turns one VideoTask into a folder of frames.
type Extractor struct {
	open OpenFunc
	sink Sink
	cfg  Config
	log  *logrus.Logger
}

// New returns an Extractor. A zero QueueSize means frames.DefaultQueueSize.
func New(open OpenFunc, s Sink, cfg Config, log *logrus.Logger) *Extractor {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = frames.DefaultQueueSize
	}
	if log == nil {
		log = logrus.New()
	}
	return &Extractor{open: open, sink: s, cfg: cfg, log: log}
}

// NewTasks creates one task per discovered video.
func NewTasks(descs []video.Descriptor) []pool.VideoTask {
	tasks := make([]pool.VideoTask, 0, len(descs))
	for _, d := range descs {
		tasks = append(tasks, pool.VideoTask{
			ID:            uuid.NewString(),
			SourcePath:    d.Path,
			DisplayName:   d.Name,
			DestSubfolder: sink.SubfolderName(d.Name),
		})
	}
	return tasks
}

// Run implements pool.TaskFunc. The geometry is validated once, before the first
// frame is decoded; an invalid geometry produces no output at all. Frames are written
// with a running index starting at 0.
func (e *Extractor) Run(ctx context.Context, task pool.VideoTask, progress func(frames int)) (int, error) {
	log := e.log.WithFields(logrus.Fields{
		"video":   task.DisplayName,
		"task_id": task.ID,
	})

	if err := e.sink.Claim(task.DestSubfolder, task.SourcePath); err != nil {
		return 0, err
	}

	dec, err := e.open(ctx, task.SourcePath)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", task.DisplayName, err)
	}
	defer func() { _ = dec.Close() }()

	meta := dec.Metadata()
	geom, err := frames.ResolveGeometry(meta.Width, meta.Height, e.cfg.Options)
	if err != nil {
		return 0, err
	}

	src, err := frames.NewSource(dec, e.cfg.Options.FPS, e.cfg.QueueSize)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", task.DisplayName, err)
	}
	log.WithFields(logrus.Fields{
		"source_fps":    meta.FPS,
		"effective_fps": src.EffectiveFPS(),
		"interval":      src.Interval(),
		"size":          fmt.Sprintf("%dx%d", meta.Width, meta.Height),
	}).Debug("Starting frame source")

	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		src.Wait()
	}()
	src.Start(ctx)

	var manifest *sink.Manifest
	if e.cfg.Manifest {
		manifest = e.newManifest(task, dec, src)
	}

	written := 0
	for src.HasMore() {
		f, ok := src.Read(ctx)
		if !ok {
			break
		}

		img := frames.Transform(f.Image, geom, e.cfg.Options)
		path, err := e.sink.Write(task.DestSubfolder, written, img)
		if err != nil {
			return written, err
		}

		if manifest != nil {
			entry, err := manifestFrame(written, f, path, img)
			if err != nil {
				return written, err
			}
			manifest.Frames = append(manifest.Frames, entry)
		}

		written++
		if progress != nil {
			progress(written)
		}
	}

	if err := ctx.Err(); err != nil {
		return written, err
	}

	src.Wait()
	if err := src.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			return written, err
		}
		log.WithError(err).WithField("frames", written).Warn("Decoding stopped early, keeping frames written so far")
	}

	if manifest != nil {
		if err := e.sink.WriteManifest(task.DestSubfolder, manifest); err != nil {
			return written, err
		}
	}
	return written, nil
}

func (e *Extractor) newManifest(task pool.VideoTask, dec frames.Decoder, src *frames.Source) *sink.Manifest {
	meta := src.Metadata()
	m := &sink.Manifest{
		Source:       task.SourcePath,
		SourceFPS:    meta.FPS,
		Width:        meta.Width,
		Height:       meta.Height,
		EffectiveFPS: src.EffectiveFPS(),
		Interval:     src.Interval(),
		Frames:       []sink.ManifestFrame{},
	}
	if vm, ok := dec.(interface{ VideoMetadata() video.VideoMetadata }); ok {
		m.Codec = vm.VideoMetadata().Codec
	}
	return m
}

func manifestFrame(index int, f frames.Frame, path string, img image.Image) (sink.ManifestFrame, error) {
	sum, err := sink.CalculateCRC32(path)
	if err != nil {
		return sink.ManifestFrame{}, fmt.Errorf("checksum %s: %w", path, err)
	}
	phash, err := sink.PerceptualHash(img)
	if err != nil {
		return sink.ManifestFrame{}, err
	}

	return sink.ManifestFrame{
		Index:       index,
		SourceFrame: f.Number,
		Timestamp:   f.Time,
		File:        filepath.Base(path),
		PHash:       phash,
		CRC32:       sink.FormatCRC32(sum),
	}, nil
}
