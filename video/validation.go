package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultExtensions is the allowlist used when none is configured.
var DefaultExtensions = []string{".mp4", ".mov", ".avi"}

// NormalizeExtensions lower-cases the extensions and makes sure each starts with a dot.
// Empty entries are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// IsVideoFile checks if the file extension is in the allowlist. The comparison is
// case-insensitive; a nil allowlist means DefaultExtensions.
func IsVideoFile(path string, extensions []string) bool {
	if extensions == nil {
		extensions = DefaultExtensions
	}

	ext := strings.ToLower(filepath.Ext(path)) // handle cases where extension is upper case
	if ext == "" {
		return false
	}
	for _, v := range extensions {
		if v == ext {
			return true
		}
	}
	return false
}

// ValidateVideoIntegrity checks if a video file is corrupted or invalid
// Returns an error if the file is corrupted or cannot be read
func ValidateVideoIntegrity(ctx context.Context, ffprobe, filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if ffprobe == "" {
		ffprobe = ffprobeCmd
	}

	// Decode the first second of the video stream and let ffprobe report problems.
	cmd := exec.CommandContext(ctx, ffprobe, "-v", "error", "-select_streams", "v:0",
		"-read_intervals", "%+1", "-count_frames", "-show_entries", "stream=nb_read_frames",
		"-of", "default=noprint_wrappers=1:nokey=1", "--", filePath)
	output, err := cmd.CombinedOutput()

	if err != nil {
		outputStr := string(output)
		if strings.Contains(outputStr, "moov atom not found") {
			return fmt.Errorf("video file is corrupted (missing metadata): %s", extractFirstLine(outputStr))
		}
		if strings.Contains(outputStr, "Invalid data found") ||
			strings.Contains(outputStr, "corrupt") ||
			strings.Contains(outputStr, "truncated") ||
			strings.Contains(outputStr, "Invalid argument") {
			return fmt.Errorf("video file is corrupted or invalid: %s", extractFirstLine(outputStr))
		}

		return fmt.Errorf("ffprobe error: %w\nOutput: %s", err, extractFirstLine(outputStr))
	}

	if strings.TrimSpace(string(output)) == "0" {
		return fmt.Errorf("video stream has no decodable frames")
	}
	return nil
}

// extractFirstLine extracts just the first line from a multi-line string
func extractFirstLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		return strings.TrimSpace(lines[0])
	}
	return "no additional information available"
}
