package frames

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidOptions marks configuration values rejected before any video is touched.
	ErrInvalidOptions = errors.New("invalid options")
	// ErrInvalidGeometry marks crop/resize parameters that do not fit a video's frames.
	ErrInvalidGeometry = errors.New("invalid frame geometry")
)

// Options is the process-wide transform configuration. It is built once at startup
// and shared read-only by every worker.
type Options struct {
	// FPS is the requested sampling rate.
	FPS int
	// Width and Height are resize targets, 0 keeps the source size on that axis.
	Width  int
	Height int
	// Crop bounds, nil when not given.
	CropXMin *int
	CropXMax *int
	CropYMin *int
	CropYMax *int
	// Grayscale converts frames before any other step.
	Grayscale bool
}

// Resize reports whether a resize was requested on any axis.
func (o Options) Resize() bool {
	return o.Width > 0 || o.Height > 0
}

// Crop reports whether any crop bound was given.
func (o Options) Crop() bool {
	return o.CropXMin != nil || o.CropXMax != nil || o.CropYMin != nil || o.CropYMax != nil
}

// Violations lists every problem with the options that can be detected without
// looking at a video. Crop axes are checked against Width/Height when those are set;
// otherwise the check is deferred until the frame size is known.
func (o Options) Violations() []string {
	var msgs []string
	if o.FPS <= 0 {
		msgs = append(msgs, fmt.Sprintf("fps must be greater than zero (got %d)", o.FPS))
	}
	if o.Width < 0 {
		msgs = append(msgs, fmt.Sprintf("width must be greater than zero (got %d)", o.Width))
	}
	if o.Height < 0 {
		msgs = append(msgs, fmt.Sprintf("height must be greater than zero (got %d)", o.Height))
	}
	negX := negative(&msgs, "crop-x-min", o.CropXMin)
	negX = negative(&msgs, "crop-x-max", o.CropXMax) || negX
	negY := negative(&msgs, "crop-y-min", o.CropYMin)
	negY = negative(&msgs, "crop-y-max", o.CropYMax) || negY

	// An axis with a negative bound or size already has its violation.
	if !negX && o.Width >= 0 {
		msgs = append(msgs, ValidateAxis(o.CropXMin, o.CropXMax, o.Width, "x")...)
	}
	if !negY && o.Height >= 0 {
		msgs = append(msgs, ValidateAxis(o.CropYMin, o.CropYMax, o.Height, "y")...)
	}
	return msgs
}

func negative(msgs *[]string, name string, v *int) bool {
	if v == nil || *v >= 0 {
		return false
	}
	*msgs = append(*msgs, fmt.Sprintf("%s must not be negative (got %d)", name, *v))
	return true
}

// Validate returns a *ValidationError wrapping ErrInvalidOptions when Violations is
// not empty.
func (o Options) Validate() error {
	if msgs := o.Violations(); len(msgs) > 0 {
		return &ValidationError{Err: ErrInvalidOptions, Violations: msgs}
	}
	return nil
}

// ValidationError carries all violations found in one validation pass.
type ValidationError struct {
	Err        error
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
