// Package fileutil provides filesystem helpers for mirror output.
package fileutil

import (
	"fmt"
	"os"
)

// ReadableByAll is the file permission mode for mirrored schema files and
// manifests, which downstream build tools need to read.
const ReadableByAll os.FileMode = 0o644

// WriteFile writes data to path with ReadableByAll permissions.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, ReadableByAll); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// EnsureDir verifies that path names an existing directory.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("destination directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("destination %s is not a directory", path)
	}
	return nil
}
