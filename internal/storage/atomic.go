// Package storage persists the per-folder plugin index and the user link
// store as whole JSON documents.
//
// Writes go to a temporary file that is renamed over the target, so an
// interrupted process leaves the last fully written document behind. There
// is no locking: two invocations writing the same file race and the last
// writer wins.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// writeJSON atomically replaces path with the indented JSON encoding of v
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary file for %s: %w", path, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary file to %s: %w", path, err)
	}
	return nil
}

// readJSON decodes path into v. A missing file is reported through
// os.ErrNotExist.
func readJSON(path string, v any) error {
	// #nosec G304 -- path is the configured index or link store location
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
