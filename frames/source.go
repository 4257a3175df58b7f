package frames

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync/atomic"
)

// DefaultQueueSize is the frame queue capacity used when none is configured.
const DefaultQueueSize = 128

// ErrInvalidSourceFPS is returned when a video reports no usable frame rate.
var ErrInvalidSourceFPS = errors.New("invalid source frame rate")

// Metadata describes a decoded video stream.
type Metadata struct {
	FPS    float64
	Width  int
	Height int
}

// Decoder is the codec boundary. Implementations yield decoded frames in source
// order and return io.EOF once the stream is exhausted.
type Decoder interface {
	Metadata() Metadata
	DecodeNext() (image.Image, error)
	Close() error
}

// Frame is one sampled frame.
type Frame struct {
	// Number is the position of the frame in the decoded stream.
	Number int
	// Time is the presentation time in seconds derived from the source rate.
	Time  float64
	Image image.Image
}

// Source decodes a video in its own goroutine and publishes the sampled frames into
// a bounded queue. The producer blocks while the queue is full, so frames are only
// ever skipped by the sampling interval.
type Source struct {
	dec          Decoder
	meta         Metadata
	effectiveFPS float64
	interval     int

	queue   chan Frame
	started atomic.Bool
	stopped atomic.Bool
	done    chan struct{}
	err     error
}

// NewSource prepares a Source over dec. Metadata is resolved here, before any frame
// is decoded.
func NewSource(dec Decoder, targetFPS, queueSize int) (*Source, error) {
	meta := dec.Metadata()
	if !(meta.FPS > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSourceFPS, meta.FPS)
	}
	if targetFPS <= 0 {
		return nil, fmt.Errorf("%w: fps must be greater than zero (got %d)", ErrInvalidOptions, targetFPS)
	}
	if queueSize <= 0 {
		return nil, fmt.Errorf("%w: queue size must be greater than zero (got %d)", ErrInvalidOptions, queueSize)
	}

	return &Source{
		dec:          dec,
		meta:         meta,
		effectiveFPS: EffectiveFPS(targetFPS, meta.FPS),
		interval:     SamplingInterval(targetFPS, meta.FPS),
		queue:        make(chan Frame, queueSize),
		done:         make(chan struct{}),
	}, nil
}

// Metadata returns the stream metadata resolved by NewSource.
func (s *Source) Metadata() Metadata {
	return s.meta
}

// EffectiveFPS is the clamped sampling rate.
func (s *Source) EffectiveFPS() float64 {
	return s.effectiveFPS
}

// Interval is the sampling interval in decoded frames.
func (s *Source) Interval() int {
	return s.interval
}

// Start launches the decode loop and returns immediately. Cancelling ctx stops the
// producer even when it is blocked on a full queue. Calls after the first are no-ops.
func (s *Source) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run(ctx)
}

func (s *Source) run(ctx context.Context) {
	defer close(s.done)
	defer func() {
		s.stopped.Store(true)
		close(s.queue)
	}()

	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			s.err = err
			return
		}

		img, err := s.dec.DecodeNext()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			return
		}
		if !Keep(n, s.interval) {
			continue
		}

		select {
		case s.queue <- Frame{Number: n, Time: float64(n) / s.meta.FPS, Image: img}:
		case <-ctx.Done():
			s.err = ctx.Err()
			return
		}
	}
}

// Read blocks until a frame is available, the source is drained or ctx is done.
// The boolean is false at end of stream.
func (s *Source) Read(ctx context.Context) (Frame, bool) {
	select {
	case f, ok := <-s.queue:
		return f, ok
	case <-ctx.Done():
		return Frame{}, false
	}
}

// HasMore reports, without blocking, whether Read may still return a frame.
func (s *Source) HasMore() bool {
	return !s.stopped.Load() || len(s.queue) > 0
}

// Wait blocks until the producer goroutine has exited. It returns immediately if
// Start was never called.
func (s *Source) Wait() {
	if !s.started.Load() {
		return
	}
	<-s.done
}

// Err returns the error that stopped decoding early, or nil after a clean end of
// stream. It is only meaningful once the producer has exited.
func (s *Source) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}
