package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/plugmanager/plugmanager/internal/plugin"
)

// IndexFileName is the index file kept inside every plugins folder
const IndexFileName = ".index.json"

// ErrIndexNotFound is returned when a plugins folder has not been indexed yet
var ErrIndexNotFound = errors.New("plugin index not found, run the index command first")

// IndexStore loads and saves the index of a plugins folder
type IndexStore interface {
	// Load reads the index of folder. It returns ErrIndexNotFound when the
	// folder has never been indexed.
	Load(ctx context.Context, folder string) (*plugin.Index, error)

	// Save replaces the index of folder with idx
	Save(ctx context.Context, folder string, idx *plugin.Index) error
}

// FileIndexStore keeps each index in <folder>/.index.json
type FileIndexStore struct{}

// NewFileIndexStore creates a FileIndexStore
func NewFileIndexStore() *FileIndexStore {
	return &FileIndexStore{}
}

// IndexPath returns the location of the index file for folder
func IndexPath(folder string) string {
	return filepath.Join(folder, IndexFileName)
}

// Load implements IndexStore
func (*FileIndexStore) Load(_ context.Context, folder string) (*plugin.Index, error) {
	var idx plugin.Index
	if err := readJSON(IndexPath(folder), &idx); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrIndexNotFound, folder)
		}
		return nil, err
	}
	if idx.Plugins == nil {
		idx.Plugins = []plugin.Record{}
	}
	return &idx, nil
}

// Save implements IndexStore
func (*FileIndexStore) Save(_ context.Context, folder string, idx *plugin.Index) error {
	if idx == nil {
		idx = &plugin.Index{}
	}
	out := *idx
	if out.Plugins == nil {
		out.Plugins = []plugin.Record{}
	}
	if err := writeJSON(IndexPath(folder), &out); err != nil {
		return fmt.Errorf("failed to save plugin index: %w", err)
	}
	return nil
}
