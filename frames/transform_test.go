package frames

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 5), B: 200, A: 255})
		}
	}
	return img
}

func TestTransform_NoOptionsIsIdentity(t *testing.T) {
	img := testImage(32, 24)
	g, err := ResolveGeometry(32, 24, Options{FPS: 10})
	require.NoError(t, err)

	out := Transform(img, g, Options{FPS: 10})
	assert.Same(t, img, out)
}

func TestTransform_Grayscale(t *testing.T) {
	opts := Options{FPS: 10, Grayscale: true}
	g, err := ResolveGeometry(16, 8, opts)
	require.NoError(t, err)

	out := Transform(testImage(16, 8), g, opts)
	_, ok := out.(*image.Gray)
	require.True(t, ok, "expected *image.Gray, got %T", out)

	r, gr, b, _ := out.At(3, 3).RGBA()
	assert.Equal(t, r, gr)
	assert.Equal(t, gr, b)
}

func TestTransform_ResizeSingleAxis(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		wantW int
		wantH int
	}{
		{"width only", Options{FPS: 10, Width: 10}, 10, 24},
		{"height only", Options{FPS: 10, Height: 10}, 32, 10},
		{"both", Options{FPS: 10, Width: 10, Height: 12}, 10, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ResolveGeometry(32, 24, tt.opts)
			require.NoError(t, err)

			out := Transform(testImage(32, 24), g, tt.opts)
			assert.Equal(t, tt.wantW, out.Bounds().Dx())
			assert.Equal(t, tt.wantH, out.Bounds().Dy())
		})
	}
}

func TestTransform_CropAfterResize(t *testing.T) {
	opts := Options{FPS: 10, Width: 20, Height: 20, CropXMin: intp(5), CropXMax: intp(15), CropYMax: intp(8)}
	g, err := ResolveGeometry(64, 48, opts)
	require.NoError(t, err)

	out := Transform(testImage(64, 48), g, opts)
	assert.Equal(t, image.Rect(0, 0, 10, 8), out.Bounds())
}

func TestTransform_CropKeepsPixels(t *testing.T) {
	img := testImage(32, 24)
	opts := Options{FPS: 10, CropXMin: intp(4), CropYMin: intp(2), CropXMax: intp(10), CropYMax: intp(9)}
	g, err := ResolveGeometry(32, 24, opts)
	require.NoError(t, err)

	out := Transform(img, g, opts)
	assert.Equal(t, image.Rect(0, 0, 6, 7), out.Bounds())
	assert.Equal(t, img.At(4, 2), out.At(0, 0))
	assert.Equal(t, img.At(9, 8), out.At(5, 6))
}

func TestTransform_GrayThenCrop(t *testing.T) {
	opts := Options{FPS: 10, Grayscale: true, CropXMax: intp(4)}
	g, err := ResolveGeometry(16, 8, opts)
	require.NoError(t, err)

	out := Transform(testImage(16, 8), g, opts)
	_, ok := out.(*image.Gray)
	assert.True(t, ok)
	assert.Equal(t, 4, out.Bounds().Dx())
}

func TestTransform_Idempotent(t *testing.T) {
	img := testImage(40, 30)
	opts := Options{FPS: 10, Grayscale: true, Width: 20, Height: 16, CropXMin: intp(2), CropYMax: intp(10)}
	g, err := ResolveGeometry(40, 30, opts)
	require.NoError(t, err)

	before := append([]uint8(nil), img.Pix...)
	first := Transform(img, g, opts)
	second := Transform(img, g, opts)

	assert.Equal(t, first, second)
	assert.Equal(t, before, img.Pix, "source image must not be modified")
}
