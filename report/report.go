// Package report writes the per-video batch summary as CSV.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/lepinkainen/vidframes/pool"
)

// Row is one video in the report.
type Row struct {
	ID        string  `csv:"id"`
	Name      string  `csv:"name"`
	Source    string  `csv:"source"`
	Subfolder string  `csv:"subfolder"`
	Status    string  `csv:"status"`
	Frames    int     `csv:"frames"`
	Seconds   float64 `csv:"duration_seconds"`
	Error     string  `csv:"error,omitempty"`
}

// Rows converts dispatcher results.
func Rows(results []pool.Result) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		row := Row{
			ID:        r.Task.ID,
			Name:      r.Task.DisplayName,
			Source:    r.Task.SourcePath,
			Subfolder: r.Task.DestSubfolder,
			Status:    string(r.Status),
			Frames:    r.Frames,
			Seconds:   r.Duration().Seconds(),
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes a header and one row per result.
func WriteCSV(w io.Writer, results []pool.Result) error {
	data, err := csvutil.Marshal(Rows(results))
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes the report to path.
func WriteFile(path string, results []pool.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteCSV(f, results); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
