// Package platform abstracts the durable state mirror kept beside the local
// blob store. The document store writes every save through an Adapter and
// consults it once at startup for an override, without caring whether the
// backing is a real file or nothing at all.
package platform

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// StateFileName is the fixed name of the mirrored state file inside the
// application data directory.
const StateFileName = "state.json"

// Adapter is the external persistence contract consumed by the document
// store. Load returns the mirrored state text, or "" when nothing is
// stored. Save is best-effort from the caller's point of view.
type Adapter interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, text string) error
}

// Noop is the browser-mode adapter: it stores nothing and always reports
// nothing stored.
type Noop struct{}

func (Noop) Load(context.Context) (string, error) { return "", nil }

func (Noop) Save(context.Context, string) error { return nil }

// File mirrors state to a single UTF-8 file.
type File struct {
	path string
}

// NewFile returns a file adapter writing StateFileName inside dir.
func NewFile(dir string) *File {
	return &File{path: filepath.Join(dir, StateFileName)}
}

// Path returns the full path of the state file.
func (f *File) Path() string { return f.path }

// Load reads the state file. A missing file is not an error; it reads as
// "nothing stored".
func (f *File) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Save writes text atomically: temp file in the same directory, then rename.
// Some platforms can hold the destination open and fail the rename; in that
// case a direct write is attempted before giving up.
func (f *File) Save(_ context.Context, text string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return os.WriteFile(f.path, []byte(text), 0644)
	}
	return nil
}
