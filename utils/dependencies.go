package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// FFmpegTools holds the resolved paths of the ffmpeg binaries.
type FFmpegTools struct {
	FFmpeg  string
	FFprobe string
}

// LookupFFmpeg finds ffmpeg and ffprobe in PATH. The error carries platform specific
// installation instructions.
func LookupFFmpeg() (FFmpegTools, error) {
	var tools FFmpegTools

	ffprobe, err := exec.LookPath("ffprobe")
	if err != nil {
		return tools, fmt.Errorf("ffprobe not found in PATH. %s", getInstallationInstructions())
	}
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return tools, fmt.Errorf("ffmpeg not found in PATH. %s", getInstallationInstructions())
	}

	tools.FFmpeg = ffmpeg
	tools.FFprobe = ffprobe
	return tools, nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install ffmpeg"
	case "linux":
		return "Install with: apt-get install ffmpeg (Ubuntu/Debian) or yum install ffmpeg (CentOS/RHEL)"
	case "windows":
		return "Download from https://ffmpeg.org/download.html and add to PATH"
	default:
		return "Download from https://ffmpeg.org/download.html"
	}
}
