package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
	"github.com/custodia-labs/reddit-collect/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.RecordWriter = (*Writer)(nil)

// Writer writes community CSV files into a directory.
type Writer struct {
	dir string
}

// New creates a writer for dir. The directory is created on first write.
func New(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// FileName returns the CSV file name for a community and window.
func FileName(community string, window domain.Window) string {
	return fmt.Sprintf("%s_data_%s_to_%s.csv", community, window.StartLabel, window.EndLabel)
}

// Write replaces the community's file with the header and records. Rows go
// to a temporary file in the same directory which is renamed into place
// only once fully flushed, so a failed write leaves any earlier file intact.
// An empty record slice produces a header-only file.
func (w *Writer) Write(community string, window domain.Window, records []domain.Record) (path string, err error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create output directory: %w", domain.ErrIO, err)
	}

	path = filepath.Join(w.dir, FileName(community, window))
	f, err := os.CreateTemp(w.dir, "."+FileName(community, window)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %w", domain.ErrIO, path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err := writeRecords(f, records); err != nil {
		return "", fmt.Errorf("%w: write %s: %w", domain.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %w", domain.ErrIO, path, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return "", fmt.Errorf("%w: chmod %s: %w", domain.ErrIO, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("%w: rename into %s: %w", domain.ErrIO, path, err)
	}
	return path, nil
}

func writeRecords(out io.Writer, records []domain.Record) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(domain.Columns); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("record for post %s: %w", r.PostID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
