// Package metrics records batch statistics in a private prometheus registry and
// exports them in the node_exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/lepinkainen/vidframes/pool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements pool.Observer.
type Recorder struct {
	registry *prometheus.Registry

	framesWritten prometheus.Counter
	videos        *prometheus.CounterVec
	activeWorkers prometheus.Gauge
	videoDuration prometheus.Histogram
}

// NewRecorder creates the collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Recorder{registry: reg}
	r.framesWritten = factory.NewCounter(prometheus.CounterOpts{
		Name: "vidframes_frames_written_total",
		Help: "Number of frames written to the output folder.",
	})
	r.videos = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "vidframes_videos_total",
		Help: "Number of processed videos by terminal status.",
	}, []string{"status"})
	r.activeWorkers = factory.NewGauge(prometheus.GaugeOpts{
		Name: "vidframes_active_workers",
		Help: "Number of workers currently processing a video.",
	})
	r.videoDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "vidframes_video_duration_seconds",
		Help:    "Time spent extracting one video.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	for _, s := range []pool.Status{pool.StatusCompleted, pool.StatusFailed, pool.StatusCancelled} {
		r.videos.WithLabelValues(string(s))
	}
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) TaskStarted(int, pool.VideoTask) {
	r.activeWorkers.Inc()
}

func (r *Recorder) TaskProgress(int, pool.VideoTask, int) {
	r.framesWritten.Inc()
}

func (r *Recorder) TaskFinished(res pool.Result) {
	r.activeWorkers.Dec()
	r.videos.WithLabelValues(string(res.Status)).Inc()
	r.videoDuration.Observe(res.Duration().Seconds())
}

// WriteTextfile writes the current values to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
