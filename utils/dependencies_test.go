package utils

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLookupFFmpeg(t *testing.T) {
	_, ffmpegErr := exec.LookPath("ffmpeg")
	_, ffprobeErr := exec.LookPath("ffprobe")

	tools, err := LookupFFmpeg()
	if ffmpegErr == nil && ffprobeErr == nil {
		if err != nil {
			t.Fatalf("Expected lookup to pass when both ffmpeg and ffprobe are available, got error: %v", err)
		}
		if !filepath.IsAbs(tools.FFmpeg) && !strings.Contains(tools.FFmpeg, "ffmpeg") {
			t.Errorf("unexpected ffmpeg path %q", tools.FFmpeg)
		}
		if !strings.Contains(tools.FFprobe, "ffprobe") {
			t.Errorf("unexpected ffprobe path %q", tools.FFprobe)
		}
		return
	}

	if err == nil {
		t.Fatal("Expected lookup to fail when ffmpeg or ffprobe is missing")
	}
	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "ffmpeg") && !strings.Contains(errorMsg, "ffprobe") {
		t.Errorf("Error message should mention which FFmpeg tool is missing, got: %s", errorMsg)
	}
	if !strings.Contains(errorMsg, "Install with:") && !strings.Contains(errorMsg, "Download from") {
		t.Errorf("Expected error message to contain installation instructions, got: %v", err)
	}
}

func TestLookupFFmpeg_EmptyPath(t *testing.T) {
	t.Setenv("PATH", "")

	if _, err := LookupFFmpeg(); err == nil {
		t.Error("Expected lookup to fail with an empty PATH")
	}
}

func TestGetInstallationInstructions(t *testing.T) {
	instructions := getInstallationInstructions()

	if instructions == "" {
		t.Error("Installation instructions should not be empty")
	}

	switch runtime.GOOS {
	case "darwin":
		if !strings.Contains(instructions, "brew install ffmpeg") {
			t.Errorf("Expected macOS instructions to mention brew, got: %s", instructions)
		}
	case "linux":
		if !strings.Contains(instructions, "apt-get install ffmpeg") && !strings.Contains(instructions, "yum install ffmpeg") {
			t.Errorf("Expected Linux instructions to mention package managers, got: %s", instructions)
		}
	case "windows":
		if !strings.Contains(instructions, "ffmpeg.org") && !strings.Contains(instructions, "PATH") {
			t.Errorf("Expected Windows instructions to mention ffmpeg.org and PATH, got: %s", instructions)
		}
	default:
		if !strings.Contains(instructions, "ffmpeg.org") {
			t.Errorf("Expected default instructions to mention ffmpeg.org, got: %s", instructions)
		}
	}
}
