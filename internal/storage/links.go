package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/plugmanager/plugmanager/internal/plugin"
)

// LinksFileName is the default name of the user link store
const LinksFileName = "UserPlugins.json"

// LinkStore remembers plugins a user linked by hand
type LinkStore interface {
	// Get returns the link stored under the exact plugin name
	Get(ctx context.Context, name string) (plugin.Link, bool, error)

	// Put inserts link, replacing any entry with the same name
	Put(ctx context.Context, link plugin.Link) error

	// List returns every stored link
	List(ctx context.Context) ([]plugin.Link, error)
}

type linkDocument struct {
	Plugins []plugin.Link `json:"plugins"`
}

// FileLinkStore is a LinkStore backed by a single JSON document
type FileLinkStore struct {
	path string
}

// NewFileLinkStore creates a link store at path. The file is created on
// the first Put.
func NewFileLinkStore(path string) *FileLinkStore {
	return &FileLinkStore{path: path}
}

// Path returns the location of the store
func (s *FileLinkStore) Path() string {
	return s.path
}

// Get implements LinkStore
func (s *FileLinkStore) Get(_ context.Context, name string) (plugin.Link, bool, error) {
	doc, err := s.load()
	if err != nil {
		return plugin.Link{}, false, err
	}
	for _, l := range doc.Plugins {
		if l.Name == name {
			return l, true, nil
		}
	}
	return plugin.Link{}, false, nil
}

// Put implements LinkStore
func (s *FileLinkStore) Put(_ context.Context, link plugin.Link) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range doc.Plugins {
		if doc.Plugins[i].Name == link.Name {
			doc.Plugins[i] = link
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Plugins = append(doc.Plugins, link)
	}

	if err := writeJSON(s.path, doc); err != nil {
		return fmt.Errorf("failed to save user links: %w", err)
	}
	return nil
}

// List implements LinkStore. Links come back in insertion order.
func (s *FileLinkStore) List(_ context.Context) ([]plugin.Link, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Plugins, nil
}

func (s *FileLinkStore) load() (*linkDocument, error) {
	doc := &linkDocument{Plugins: []plugin.Link{}}
	if err := readJSON(s.path, doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return nil, fmt.Errorf("failed to load user links: %w", err)
	}
	if doc.Plugins == nil {
		doc.Plugins = []plugin.Link{}
	}
	return doc, nil
}
