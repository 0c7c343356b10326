// Package config provides configuration loading and management for plugmanager.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plugmanager/plugmanager/internal/filtering"
)

const (
	// DefaultFileName is the config file name inside the user config directory
	DefaultFileName = "config.yaml"

	// DefaultMarketplaceURL is the Spiget API base URL
	DefaultMarketplaceURL = "https://api.spiget.org/v2"

	// DefaultPackageRegistryURL is the Modrinth API base URL
	DefaultPackageRegistryURL = "https://api.modrinth.com/v2"

	// DefaultTimeout bounds every registry lookup
	DefaultTimeout = "10s"

	// DefaultRequestsPerSecond paces outbound registry requests
	DefaultRequestsPerSecond = 4

	// PluginsFolderName is the plugins folder inside a server directory
	PluginsFolderName = "plugins"

	appDirName        = "plugmanager"
	linkStoreFileName = "UserPlugins.json"
)

const (
	// ServerTypePaper is a server running a Paper jar
	ServerTypePaper = "paper"

	// ServerTypeUnknown is a server whose jar could not be identified
	ServerTypeUnknown = "unknown"
)

var (
	// ErrServerNotFound is returned when a named server is not configured
	ErrServerNotFound = errors.New("server not found in config")

	// ErrNoServerSelected is returned when a command needs a plugins folder
	// and neither a selected server nor an explicit folder is available
	ErrNoServerSelected = errors.New("no server selected: use 'server use <name>' or --plugins-dir")
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		cleaned := filepath.Clean(path)
		if !filepath.IsAbs(cleaned) && !filepath.IsLocal(cleaned) {
			return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
		}

		// The file may not exist yet; symlinks are only resolved when it does.
		if realPath, err := filepath.EvalSymlinks(cleaned); err == nil {
			cleaned = realPath
		}

		cfg.path = cleaned
		return nil
	}
}

// DefaultPath returns the config file location inside the user config directory
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, appDirName, DefaultFileName), nil
}

// Config represents the root configuration structure
type Config struct {
	// SelectedServer names the server whose plugins folder commands act on
	SelectedServer string `yaml:"selectedServer,omitempty"`

	// Servers are the known Minecraft server directories
	Servers []ServerConfig `yaml:"servers,omitempty"`

	// LinkStorePath is where manual plugin links are kept.
	// Defaults to UserPlugins.json next to the config file.
	LinkStorePath string `yaml:"linkStorePath,omitempty"`

	// Registries configures the marketplace and package registry clients
	Registries RegistriesConfig `yaml:"registries"`

	// Index limits which jar files a reindex looks at
	Index IndexConfig `yaml:"index,omitempty"`

	path string
}

// IndexConfig holds glob patterns matched against jar file names
type IndexConfig struct {
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

// FileFilter compiles the index patterns. It returns nil when none are set.
func (i *IndexConfig) FileFilter() (*filtering.FileFilter, error) {
	return filtering.NewFileFilter(i.Include, i.Exclude)
}

// ServerConfig describes one Minecraft server directory
type ServerConfig struct {
	// Name identifies the server in commands
	Name string `yaml:"name"`

	// Path is the server directory containing the server jar and plugins folder
	Path string `yaml:"path"`

	// Type is the server platform, e.g. paper
	Type string `yaml:"type,omitempty"`

	// Version is the Minecraft version the server runs
	Version string `yaml:"version,omitempty"`
}

// PluginsDir returns the plugins folder of the server
func (s *ServerConfig) PluginsDir() string {
	return filepath.Join(s.Path, PluginsFolderName)
}

// RegistriesConfig defines registry endpoints and request pacing
type RegistriesConfig struct {
	MarketplaceURL     string `yaml:"marketplaceUrl,omitempty"`
	PackageRegistryURL string `yaml:"packageRegistryUrl,omitempty"`

	// Timeout is a duration string such as "10s"
	Timeout string `yaml:"timeout,omitempty"`

	// RequestsPerSecond limits outbound registry requests.
	// A negative value disables pacing.
	RequestsPerSecond float64 `yaml:"requestsPerSecond,omitempty"`
}

// LoadConfig loads and parses configuration from a YAML file. A missing file
// yields the default configuration bound to that path.
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		loaderCfg.path = path
	}

	config := Config{path: loaderCfg.path}

	data, err := os.ReadFile(loaderCfg.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Registries.MarketplaceURL == "" {
		c.Registries.MarketplaceURL = DefaultMarketplaceURL
	}
	if c.Registries.PackageRegistryURL == "" {
		c.Registries.PackageRegistryURL = DefaultPackageRegistryURL
	}
	if c.Registries.Timeout == "" {
		c.Registries.Timeout = DefaultTimeout
	}
	if c.Registries.RequestsPerSecond == 0 {
		c.Registries.RequestsPerSecond = DefaultRequestsPerSecond
	}
}

// Validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	names := make(map[string]bool)
	for i, s := range c.Servers {
		if s.Name == "" {
			return fmt.Errorf("servers[%d]: name is required", i)
		}
		if names[s.Name] {
			return fmt.Errorf("servers[%d]: duplicate server name '%s'", i, s.Name)
		}
		names[s.Name] = true

		if s.Path == "" {
			return fmt.Errorf("servers[%d] (%s): path is required", i, s.Name)
		}
	}

	if c.SelectedServer != "" && !names[c.SelectedServer] {
		return fmt.Errorf("selectedServer '%s' is not a configured server", c.SelectedServer)
	}

	if _, err := c.Index.FileFilter(); err != nil {
		return fmt.Errorf("index: %w", err)
	}

	return c.Registries.validate()
}

func (r *RegistriesConfig) validate() error {
	if err := validateBaseURL("registries.marketplaceUrl", r.MarketplaceURL); err != nil {
		return err
	}
	if err := validateBaseURL("registries.packageRegistryUrl", r.PackageRegistryURL); err != nil {
		return err
	}

	timeout, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return fmt.Errorf("registries.timeout must be a valid duration (e.g., '10s'): %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("registries.timeout must be positive")
	}
	return nil
}

func validateBaseURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", field, raw)
	}
	return nil
}

// Path returns the file the configuration was loaded from
func (c *Config) Path() string {
	return c.path
}

// GetTimeout returns the registry request timeout
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Registries.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// GetLinkStorePath returns the location of the manual link store
func (c *Config) GetLinkStorePath() string {
	if c.LinkStorePath != "" {
		return c.LinkStorePath
	}
	return filepath.Join(filepath.Dir(c.path), linkStoreFileName)
}

// Server returns the server with the given name
func (c *Config) Server(name string) (*ServerConfig, bool) {
	for i := range c.Servers {
		if c.Servers[i].Name == name {
			return &c.Servers[i], true
		}
	}
	return nil, false
}

// Selected returns the currently selected server
func (c *Config) Selected() (*ServerConfig, error) {
	if c.SelectedServer == "" {
		return nil, ErrNoServerSelected
	}
	s, ok := c.Server(c.SelectedServer)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServerNotFound, c.SelectedServer)
	}
	return s, nil
}

// PluginsDir returns the plugins folder commands act on. An explicit
// override wins over the selected server.
func (c *Config) PluginsDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	s, err := c.Selected()
	if err != nil {
		return "", err
	}
	return s.PluginsDir(), nil
}

// AddServer registers the server directory at path. The server type and
// version are detected from a paper-<mc>-<build>.jar when present. When name
// is empty the directory name is used. The first server added is selected.
func (c *Config) AddServer(name, path string) (*ServerConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve server path: %w", err)
	}
	if name == "" {
		name = filepath.Base(abs)
	}
	if _, exists := c.Server(name); exists {
		return nil, fmt.Errorf("server '%s' already exists in config", name)
	}

	serverType, version, err := DetectServer(abs)
	if err != nil {
		return nil, err
	}

	c.Servers = append(c.Servers, ServerConfig{
		Name:    name,
		Path:    abs,
		Type:    serverType,
		Version: version,
	})
	if c.SelectedServer == "" {
		c.SelectedServer = name
	}
	added, _ := c.Server(name)
	return added, nil
}

// DetectServer inspects a server directory. It requires a plugins folder and
// reads the platform and Minecraft version from a Paper jar if there is one.
func DetectServer(dir string) (serverType, version string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", fmt.Errorf("failed to read server directory: %w", err)
	}

	hasPlugins := false
	serverType = ServerTypeUnknown
	for _, e := range entries {
		name := e.Name()
		switch {
		case e.IsDir() && name == PluginsFolderName:
			hasPlugins = true
		case !e.IsDir() && strings.Contains(strings.ToLower(name), ServerTypePaper) && strings.HasSuffix(name, ".jar"):
			serverType = ServerTypePaper
			// paper-1.21.3-82.jar
			if parts := strings.Split(strings.TrimSuffix(name, ".jar"), "-"); len(parts) > 1 {
				version = parts[1]
			}
		}
	}

	if !hasPlugins {
		return "", "", fmt.Errorf("no %q folder found in %s", PluginsFolderName, dir)
	}
	return serverType, version, nil
}

// UseServer selects the named server
func (c *Config) UseServer(name string) error {
	if _, ok := c.Server(name); !ok {
		return fmt.Errorf("%w: %s", ErrServerNotFound, name)
	}
	c.SelectedServer = name
	return nil
}

// RemoveServer forgets the named server, clearing the selection if it pointed there
func (c *Config) RemoveServer(name string) error {
	for i := range c.Servers {
		if c.Servers[i].Name != name {
			continue
		}
		c.Servers = append(c.Servers[:i], c.Servers[i+1:]...)
		if c.SelectedServer == name {
			c.SelectedServer = ""
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrServerNotFound, name)
}

// Save writes the configuration back to the file it was loaded from,
// replacing it in one rename.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no file path")
	}
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}
