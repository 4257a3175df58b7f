package frames

import (
	"fmt"
	"image"
)

// CropBox is a crop rectangle resolved against the post-resize frame size.
type CropBox struct {
	XMin, XMax int
	YMin, YMax int
}

// Rect returns the crop as an image.Rectangle anchored at the origin.
func (c CropBox) Rect() image.Rectangle {
	return image.Rect(c.XMin, c.YMin, c.XMax, c.YMax)
}

// Geometry is the per-video result of validating Options against the frame size.
type Geometry struct {
	// Width and Height are the effective size after resize and before crop.
	Width  int
	Height int
	Resize bool
	Crop   *CropBox
}

// OutputSize is the size of the frames Transform produces.
func (g Geometry) OutputSize() (int, int) {
	if g.Crop != nil {
		return g.Crop.XMax - g.Crop.XMin, g.Crop.YMax - g.Crop.YMin
	}
	return g.Width, g.Height
}

// ValidateAxis checks one crop axis against the axis length and returns every
// violation found. A zero axis length means the size is not known yet and an axis
// without bounds has nothing to crop; both are valid.
func ValidateAxis(cmin, cmax *int, axisLength int, axis string) []string {
	if axisLength == 0 || (cmin == nil && cmax == nil) {
		return nil
	}
	lo, hi := 0, axisLength
	if cmin != nil {
		lo = *cmin
	}
	if cmax != nil {
		hi = *cmax
	}

	var msgs []string
	if lo == hi {
		msgs = append(msgs, fmt.Sprintf("crop %s: min and max must not be equal (%d)", axis, lo))
	}
	if lo >= axisLength {
		msgs = append(msgs, fmt.Sprintf("crop %s: min (%d) must be less than the axis size (%d)", axis, lo, axisLength))
	}
	if hi > axisLength {
		msgs = append(msgs, fmt.Sprintf("crop %s: max (%d) must not exceed the axis size (%d)", axis, hi, axisLength))
	}
	if hi-lo > axisLength {
		msgs = append(msgs, fmt.Sprintf("crop %s: crop span (%d) must not exceed the axis size (%d)", axis, hi-lo, axisLength))
	}
	if lo > hi {
		msgs = append(msgs, fmt.Sprintf("crop %s: min (%d) must be less than max (%d)", axis, lo, hi))
	}
	return msgs
}

// ResolveGeometry validates opts against a source frame of width x height. Both axes
// are checked and all violations are returned together in a *ValidationError
// wrapping ErrInvalidGeometry.
func ResolveGeometry(width, height int, opts Options) (Geometry, error) {
	if width <= 0 || height <= 0 {
		return Geometry{}, &ValidationError{
			Err:        ErrInvalidGeometry,
			Violations: []string{fmt.Sprintf("unknown frame size %dx%d", width, height)},
		}
	}

	g := Geometry{Width: width, Height: height, Resize: opts.Resize()}
	if opts.Width > 0 {
		g.Width = opts.Width
	}
	if opts.Height > 0 {
		g.Height = opts.Height
	}

	if !opts.Crop() {
		return g, nil
	}

	var msgs []string
	msgs = append(msgs, ValidateAxis(opts.CropXMin, opts.CropXMax, g.Width, "x")...)
	msgs = append(msgs, ValidateAxis(opts.CropYMin, opts.CropYMax, g.Height, "y")...)
	if len(msgs) > 0 {
		return Geometry{}, &ValidationError{Err: ErrInvalidGeometry, Violations: msgs}
	}

	g.Crop = &CropBox{
		XMin: valueOr(opts.CropXMin, 0),
		XMax: valueOr(opts.CropXMax, g.Width),
		YMin: valueOr(opts.CropYMin, 0),
		YMax: valueOr(opts.CropYMax, g.Height),
	}
	return g, nil
}

func valueOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
