package sink

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ManifestFileName is the name of the per-video manifest inside its subfolder.
const ManifestFileName = "manifest.json"

// Manifest describes the frames extracted from one video.
type Manifest struct {
	Source       string          `json:"source"`
	Codec        string          `json:"codec,omitempty"`
	SourceFPS    float64         `json:"source_fps"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	EffectiveFPS float64         `json:"effective_fps"`
	Interval     int             `json:"interval"`
	Frames       []ManifestFrame `json:"frames"`
}

// ManifestFrame is one written frame.
type ManifestFrame struct {
	Index       int     `json:"index"`
	SourceFrame int     `json:"source_frame"`
	Timestamp   float64 `json:"timestamp_seconds"`
	File        string  `json:"file"`
	PHash       string  `json:"phash,omitempty"`
	CRC32       string  `json:"crc32"`
}

// WriteManifest stores m as subfolder/manifest.json.
func (s *FileSink) WriteManifest(subfolder string, m *Manifest) error {
	dir := s.Dir(subfolder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}

// FindManifests returns every manifest.json below root, sorted by path.
func FindManifests(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == ManifestFileName {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

// VerifyIssue is a frame that no longer matches its manifest.
type VerifyIssue struct {
	File     string
	Expected string
	Actual   string
	Err      error
}

// VerifyManifest checks that every frame listed in the manifest at path exists next
// to it and still has the recorded checksum.
func VerifyManifest(path string) (checked int, issues []VerifyIssue, err error) {
	m, err := ReadManifest(path)
	if err != nil {
		return 0, nil, err
	}

	dir := filepath.Dir(path)
	for _, f := range m.Frames {
		checked++
		file := filepath.Join(dir, f.File)

		sum, err := CalculateCRC32(file)
		if err != nil {
			issues = append(issues, VerifyIssue{File: file, Expected: f.CRC32, Err: err})
			continue
		}
		if actual := FormatCRC32(sum); !strings.EqualFold(actual, f.CRC32) {
			issues = append(issues, VerifyIssue{File: file, Expected: f.CRC32, Actual: actual})
		}
	}
	return checked, issues, nil
}
