package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plugmanager/plugmanager/internal/config"
	"github.com/plugmanager/plugmanager/internal/download"
	"github.com/plugmanager/plugmanager/internal/httpclient"
	"github.com/plugmanager/plugmanager/internal/matcher"
	"github.com/plugmanager/plugmanager/internal/prompt"
	"github.com/plugmanager/plugmanager/internal/registry"
	"github.com/plugmanager/plugmanager/internal/storage"
	"github.com/plugmanager/plugmanager/internal/sync"
)

// PluginAppOptions is a function that configures the plugin app builder
type PluginAppOptions func(*pluginAppConfig) error

// pluginAppConfig collects the builder inputs.
// It supports dependency injection for testing while providing sensible defaults for production
type pluginAppConfig struct {
	config *config.Config

	// Optional component overrides (primarily for testing)
	httpClient   httpclient.Client
	registries   registry.Set
	indexStore   storage.IndexStore
	linkStore    storage.LinkStore
	syncManager  sync.Manager
	prompter     prompt.Prompter
	downloadOpts []download.Option
}

func baseConfig(opts ...PluginAppOptions) (*pluginAppConfig, error) {
	cfg := &pluginAppConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return cfg, nil
}

// NewPluginApp creates the application from the given options
func NewPluginApp(ctx context.Context, opts ...PluginAppOptions) (*PluginApp, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	if cfg.registries == nil {
		cfg.registries = buildRegistries(cfg)
	}
	if cfg.indexStore == nil {
		cfg.indexStore = storage.NewFileIndexStore()
	}
	if cfg.linkStore == nil {
		cfg.linkStore = storage.NewFileLinkStore(cfg.config.GetLinkStorePath())
	}

	if cfg.syncManager == nil {
		var matcherOpts []matcher.Option
		if cfg.prompter != nil {
			matcherOpts = append(matcherOpts, matcher.WithPrompter(cfg.prompter))
		}
		resolver := matcher.New(cfg.registries, cfg.linkStore, matcherOpts...)

		filter, err := cfg.config.Index.FileFilter()
		if err != nil {
			return nil, fmt.Errorf("failed to build file filter: %w", err)
		}
		cfg.syncManager = sync.NewDefaultManager(resolver, cfg.registries, cfg.indexStore, sync.WithFileFilter(filter))
	}

	downloader := download.NewDownloader(cfg.client(), cfg.registries, cfg.indexStore, cfg.downloadOpts...)

	slog.DebugContext(ctx, "Application components built",
		"config", cfg.config.Path(),
		"registries", len(cfg.registries),
		"link_store", cfg.config.GetLinkStorePath())

	return &PluginApp{
		config: cfg.config,
		components: &AppComponents{
			Registries: cfg.registries,
			Links:      cfg.linkStore,
			Index:      cfg.indexStore,
			Manager:    cfg.syncManager,
			Downloader: downloader,
		},
		prompter: cfg.prompter,
	}, nil
}

// client returns the shared HTTP client, creating the paced default on first use
func (cfg *pluginAppConfig) client() httpclient.Client {
	if cfg.httpClient == nil {
		cfg.httpClient = httpclient.NewDefaultClient(
			cfg.config.GetTimeout(),
			httpclient.WithRateLimit(cfg.config.Registries.RequestsPerSecond),
		)
	}
	return cfg.httpClient
}

// buildRegistries creates the registry clients. The marketplace comes first
// so its hits take priority over the package registry.
func buildRegistries(cfg *pluginAppConfig) registry.Set {
	client := cfg.client()
	return registry.Set{
		registry.NewSpiget(client, cfg.config.Registries.MarketplaceURL),
		registry.NewModrinth(client, cfg.config.Registries.PackageRegistryURL),
	}
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) PluginAppOptions {
	return func(cfg *pluginAppConfig) error {
		cfg.config = c
		return nil
	}
}

// WithHTTPClient overrides the HTTP client shared by registries and downloads
func WithHTTPClient(c httpclient.Client) PluginAppOptions {
	return func(cfg *pluginAppConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithRegistries overrides the registry clients
func WithRegistries(r registry.Set) PluginAppOptions {
	return func(cfg *pluginAppConfig) error {
		if len(r) == 0 {
			return fmt.Errorf("at least one registry is required")
		}
		cfg.registries = r
		return nil
	}
}

// WithIndexStore overrides the index store
func WithIndexStore(s storage.IndexStore) PluginAppOptions {
	return func(cfg *pluginAppConfig) error {
		cfg.indexStore = s
		return nil
	}
}

// WithLinkStore overrides the manual link store
func WithLinkStore(s storage.LinkStore) PluginAppOptions {
	return func(cfg *pluginAppConfig) error {
		cfg.linkStore = s
		return nil
	}
}

// WithSyncManager overrides the sync manager
func WithSyncManager(sm sync.Manager) PluginAppOptions {
	return func(cfg *pluginAppConfig) error {
		cfg.syncManager = sm
		return nil
	}
}

// WithPrompter enables interactive linking and confirmations through p
func WithPrompter(p prompt.Prompter) PluginAppOptions {
	return func(cfg *pluginAppConfig) error {
		cfg.prompter = p
		return nil
	}
}

// WithDownloadOptions passes options to the downloader
func WithDownloadOptions(opts ...download.Option) PluginAppOptions {
	return func(cfg *pluginAppConfig) error {
		cfg.downloadOpts = append(cfg.downloadOpts, opts...)
		return nil
	}
}
