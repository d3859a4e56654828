// Package source resolves, reads and writes the document being rewritten.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrPathNotFound   = errors.New("file does not exist")
	ErrNotRegularFile = errors.New("not a regular file")
)

// DefaultExtensions is the TypeScript file family.
var DefaultExtensions = []string{".ts", ".tsx"}

// File is a resolved document on disk.
type File struct {
	Path string
	mode fs.FileMode
}

// Resolve checks that path names an existing regular file and returns its
// absolute form. A path outside the extension family is only logged.
func Resolve(path string, extensions []string, logger *slog.Logger) (*File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", absPath, ErrPathNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", absPath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", absPath, ErrNotRegularFile)
	}

	if !HasExtension(absPath, extensions) {
		logger.Warn("file may not be a TypeScript file", "path", absPath, "extensions", extensions)
	}

	logger.Info("resolved input", "input", path, "path", absPath)
	return &File{Path: absPath, mode: info.Mode().Perm()}, nil
}

// HasExtension reports whether path ends in one of extensions. An empty
// list accepts every path.
func HasExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// Read returns the file contents.
func (f *File) Read() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return string(data), nil
}

// Write replaces the file contents, keeping its permission bits.
func (f *File) Write(content string) error {
	if err := os.WriteFile(f.Path, []byte(content), f.mode); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	return nil
}
