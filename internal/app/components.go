package app

import (
	"github.com/plugmanager/plugmanager/internal/download"
	"github.com/plugmanager/plugmanager/internal/registry"
	"github.com/plugmanager/plugmanager/internal/storage"
	"github.com/plugmanager/plugmanager/internal/sync"
)

// AppComponents groups all application components
//
//nolint:revive // This name is fine
type AppComponents struct {
	// Registries are the marketplace and package registry clients, in priority order
	Registries registry.Set

	// Links stores manually linked plugins
	Links storage.LinkStore

	// Index persists the per-folder plugin index
	Index storage.IndexStore

	// Manager reindexes folders, checks for updates and adds plugins
	Manager sync.Manager

	// Downloader fetches plugin artifacts
	Downloader *download.Downloader
}
