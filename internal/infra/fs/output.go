package fs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FilesystemError wraps a failed directory or file operation on the output tree.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// PNGEncoder is anything that can serialize itself as PNG.
type PNGEncoder interface {
	EncodePNG(w io.Writer) error
}

// CleanFilename replaces every character outside [A-Za-z0-9] with '_'.
func CleanFilename(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// PlotName is the file stem for a zero-based query index: plot_query_<index+1>.
func PlotName(index int) string {
	return CleanFilename(fmt.Sprintf("plot_query_%d", index+1))
}

func PlotPath(dir string, index int) string {
	return filepath.Join(dir, PlotName(index)+".png")
}

// EnsureDir creates dir and its parents if missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &FilesystemError{Op: "create directory", Path: dir, Err: err}
	}
	return nil
}

// WritePNG saves img as dir/plot_query_<index+1>.png, replacing any previous file, and
// returns the path.
func WritePNG(dir string, index int, img PNGEncoder) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}

	path := PlotPath(dir, index)
	if err := writeFile(path, img); err != nil {
		os.Remove(path)
		return "", &FilesystemError{Op: "write", Path: path, Err: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", &FilesystemError{Op: "stat", Path: path, Err: err}
	}
	if info.Size() == 0 {
		os.Remove(path)
		return "", &FilesystemError{Op: "write", Path: path, Err: fmt.Errorf("file is empty after rendering")}
	}
	return path, nil
}

func writeFile(path string, img PNGEncoder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := img.EncodePNG(w); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
