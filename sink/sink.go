package sink

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrSubfolderCollision is returned when two source videos map to the same output
// subfolder.
var ErrSubfolderCollision = errors.New("output subfolder already claimed")

// Supported output formats.
const (
	FormatPNG = "png"
	FormatJPG = "jpg"
)

const jpegQuality = 95

// SubfolderName derives the per-video output folder from a file name. Every dot
// becomes an underscore, so "clip.v2.mp4" is written to "clip_v2_mp4". Path
// separators are replaced too.
func SubfolderName(fileName string) string {
	r := strings.NewReplacer(".", "_", "/", "_", "\\", "_")
	return r.Replace(fileName)
}

// FrameFileName returns the file name of the index-th written frame.
func FrameFileName(index int, format string) string {
	return fmt.Sprintf("frame_%d.%s", index, format)
}

// FileSink writes frames as image files below a root folder, one subfolder per video.
// It is safe for concurrent use by several workers.
type FileSink struct {
	root   string
	format string

	mu     sync.Mutex
	claims map[string]string
}

// NewFileSink returns a sink writing into root using format (png or jpg).
func NewFileSink(root, format string) (*FileSink, error) {
	switch format {
	case "":
		format = FormatPNG
	case FormatPNG, FormatJPG:
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}

	return &FileSink{
		root:   root,
		format: format,
		claims: make(map[string]string),
	}, nil
}

// Root is the destination folder.
func (s *FileSink) Root() string {
	return s.root
}

// Format is the image format of written frames.
func (s *FileSink) Format() string {
	return s.format
}

// Dir returns the folder frames of subfolder are written to.
func (s *FileSink) Dir(subfolder string) string {
	return filepath.Join(s.root, subfolder)
}

// Claim reserves subfolder for source. Claiming the same pair twice is allowed; a
// different source claiming an already reserved subfolder gets ErrSubfolderCollision.
func (s *FileSink) Claim(subfolder, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.claims[subfolder]; ok && owner != source {
		return fmt.Errorf("%w: %s is used by %s", ErrSubfolderCollision, subfolder, owner)
	}
	s.claims[subfolder] = source
	return nil
}

// Write encodes img as the index-th frame of subfolder and returns the written path.
func (s *FileSink) Write(subfolder string, index int, img image.Image) (string, error) {
	dir := s.Dir(subfolder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output folder: %w", err)
	}

	path := filepath.Join(dir, FrameFileName(index, s.format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create frame file: %w", err)
	}

	if err := s.encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func (s *FileSink) encode(f *os.File, img image.Image) error {
	if s.format == FormatJPG {
		return jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	}
	return png.Encode(f, img)
}
