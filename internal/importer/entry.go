package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Entry is one node of an externally supplied file hierarchy, the
// abstraction the reducer consumes. Where the hierarchy comes from is a
// collaborator concern: a real directory, a drag-and-drop payload, or a
// test fixture all look the same through this interface.
type Entry interface {
	// Name returns the entry's display name (the file or folder name).
	Name() string

	// IsDir reports whether the entry is a directory.
	IsDir() bool

	// Open returns the file's bytes. Only meaningful for files.
	Open(ctx context.Context) ([]byte, error)

	// Children lists the directory's entries in the order the host
	// yields them. Only meaningful for directories.
	Children(ctx context.Context) ([]Entry, error)
}

// Sourced is implemented by entries whose bytes can be referenced in
// place. When no asset store is configured, the reducer uses the source
// reference as the image URL instead of copying the bytes.
type Sourced interface {
	SourceURL() string
}

// dirEntry adapts a path on the local filesystem to the Entry interface.
type dirEntry struct {
	path string
	dir  bool
}

// NewDirEntry wraps an existing file or directory as an Entry. The path
// is resolved to an absolute form so source references outlive a working
// directory change.
func NewDirEntry(path string) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("importer: resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}
	return &dirEntry{path: abs, dir: info.IsDir()}, nil
}

func (e *dirEntry) Name() string {
	return filepath.Base(e.path)
}

func (e *dirEntry) IsDir() bool {
	return e.dir
}

func (e *dirEntry) Open(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(e.path)
}

func (e *dirEntry) Children(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(e.path)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(entries))
	for i, entry := range entries {
		out[i] = &dirEntry{
			path: filepath.Join(e.path, entry.Name()),
			dir:  entry.IsDir(),
		}
	}
	return out, nil
}

func (e *dirEntry) SourceURL() string {
	return "file://" + filepath.ToSlash(e.path)
}
