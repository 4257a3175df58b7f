package video

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindVideoFiles lists the video files directly inside directory whose extension is
// in the allowlist. Subdirectories are not scanned. Results are sorted by name.
func FindVideoFiles(directory string, extensions []string) ([]Descriptor, error) {
	abs, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("resolve source folder: %w", err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read source folder: %w", err)
	}

	var found []Descriptor
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !IsVideoFile(e.Name(), extensions) {
			continue
		}
		found = append(found, Descriptor{
			Name: e.Name(),
			Path: filepath.Join(abs, e.Name()),
		})
	}

	return found, nil
}
