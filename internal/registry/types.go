package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plugmanager/plugmanager/internal/httpclient"
	"github.com/plugmanager/plugmanager/internal/plugin"
)

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks -source=types.go Client

// Kind identifies a registry implementation
type Kind string

const (
	// KindSpiget is the SpigotMC resource marketplace
	KindSpiget Kind = "spigot"
	// KindModrinth is the Modrinth project registry
	KindModrinth Kind = "modrinth"
)

// ErrUnknownRegistry is returned for a registry name that is neither SpigotMC nor Modrinth
var ErrUnknownRegistry = errors.New("unknown registry")

// ParseKind reads a registry name as typed by a user. "s" and "m" are
// accepted as short forms.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spigot", "spigotmc", "spiget", "s":
		return KindSpiget, nil
	case "modrinth", "m":
		return KindModrinth, nil
	}
	return "", fmt.Errorf("%w: %q (use spigot or modrinth)", ErrUnknownRegistry, s)
}

// acceptedLoaders are the server platforms a plugin must support
var acceptedLoaders = []string{"bukkit", "spigot", "paper"}

// Hit is a search result that passed the registry's own acceptance filter
type Hit struct {
	ID    string
	Title string
}

// Artifact is a concrete downloadable plugin file
type Artifact struct {
	URL      string
	FileName string
}

// Client looks plugins up in one registry.
// Implementations fail soft: every lookup problem yields an empty result.
type Client interface {
	// Kind returns the registry this client talks to
	Kind() Kind

	// Search returns hits for name in registry ranking order
	Search(ctx context.Context, name string) []Hit

	// LatestVersion returns the newest release of the plugin, or ""
	LatestVersion(ctx context.Context, id string) string

	// SupportedVersion returns the newest game version the plugin declares, or ""
	SupportedVersion(ctx context.Context, id string) string

	// ProjectURL returns the public page of the plugin
	ProjectURL(id string) string

	// Owns reports whether a repository URL points into this registry
	Owns(repositoryURL string) bool

	// LinkID derives the canonical id from a user supplied project URL and
	// checks that it exists. The id is returned even when the check fails.
	LinkID(ctx context.Context, link string) (id string, verified bool)

	// Artifact resolves the file to download for a record
	Artifact(ctx context.Context, rec plugin.Record) (Artifact, bool)
}

// Set is the ordered collection of configured registries
type Set []Client

// ForURL returns the client owning repositoryURL
func (s Set) ForURL(repositoryURL string) (Client, bool) {
	if repositoryURL == "" {
		return nil, false
	}
	for _, c := range s {
		if c.Owns(repositoryURL) {
			return c, true
		}
	}
	return nil, false
}

// Get returns the client of the given kind
func (s Set) Get(kind Kind) (Client, bool) {
	for _, c := range s {
		if c.Kind() == kind {
			return c, true
		}
	}
	return nil, false
}

func logLookupFailure(ctx context.Context, kind Kind, url string, err error) {
	if httpclient.IsNotFound(err) {
		slog.DebugContext(ctx, "Registry entry not found", "registry", string(kind), "url", url)
		return
	}
	slog.DebugContext(ctx, "Registry lookup failed",
		"registry", string(kind),
		"url", url,
		"error", err)
}

func hasAcceptedLoader(tags []string) bool {
	for _, t := range tags {
		for _, l := range acceptedLoaders {
			if t == l {
				return true
			}
		}
	}
	return false
}
