package frames

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Transform applies grayscale, resize and crop, in that order, to img. Steps whose
// option is not set are skipped. The input image is never modified.
func Transform(img image.Image, g Geometry, opts Options) image.Image {
	out := img
	if opts.Grayscale {
		out = toGray(out)
	}
	if g.Resize {
		out = resize.Resize(uint(g.Width), uint(g.Height), out, resize.Bilinear)
	}
	if g.Crop != nil {
		out = crop(out, g.Crop.Rect())
	}
	return out
}

func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// crop copies r (relative to the image origin) into a new image so the result does
// not share pixels with the source.
func crop(img image.Image, r image.Rectangle) image.Image {
	src := r.Add(img.Bounds().Min)
	bounds := image.Rect(0, 0, r.Dx(), r.Dy())

	var dst draw.Image
	if _, ok := img.(*image.Gray); ok {
		dst = image.NewGray(bounds)
	} else {
		dst = image.NewRGBA(bounds)
	}
	draw.Copy(dst, image.Point{}, img, src, draw.Src, nil)
	return dst
}
