package video

import "github.com/lepinkainen/vidframes/frames"

// Descriptor identifies one candidate video found in the source folder.
type Descriptor struct {
	// Name is the file name including the extension.
	Name string
	// Path is the absolute path of the file.
	Path string
}

// VideoMetadata contains the stream properties reported by ffprobe
type VideoMetadata struct {
	Codec    string
	FPS      float64
	Width    int
	Height   int
	Frames   int
	Duration float64
}

// Resolution formats the frame size as WIDTHxHEIGHT.
func (m VideoMetadata) Resolution() string {
	return formatResolution(m.Width, m.Height)
}

// FrameMetadata converts the probe result into what a frame source needs.
func (m VideoMetadata) FrameMetadata() frames.Metadata {
	return frames.Metadata{FPS: m.FPS, Width: m.Width, Height: m.Height}
}
