package sync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/plugmanager/plugmanager/internal/filtering"
	"github.com/plugmanager/plugmanager/internal/plugin"
	"github.com/plugmanager/plugmanager/internal/registry"
	"github.com/plugmanager/plugmanager/internal/storage"
)

//go:generate mockgen -destination=mocks/mock_manager.go -package=mocks -source=manager.go Manager,Resolver

const jarSuffix = ".jar"

// Resolver resolves plugin identities
type Resolver interface {
	// Resolve resolves the identity of one installed jar
	Resolve(ctx context.Context, ref plugin.FileRef, allowLinking bool) (plugin.Record, error)

	// ResolveOne resolves a plugin that is not installed, by name. A non-empty
	// kind restricts the search to that registry.
	ResolveOne(ctx context.Context, name string, kind registry.Kind, allowLinking bool) (plugin.Record, error)
}

// ProgressFunc is invoked once per jar processed during a reindex
type ProgressFunc func(current, total int, fileName string)

// ReindexOptions controls a reindex run
type ReindexOptions struct {
	// SkipUnresolved disables interactive linking for plugins no registry knows
	SkipUnresolved bool
	// Progress receives per-file progress; may be nil
	Progress ProgressFunc
}

// FileFailure records a jar that could not be indexed
type FileFailure struct {
	FileName string
	Err      error
}

// ReindexResult is the outcome of a reindex run
type ReindexResult struct {
	Index    *plugin.Index
	Total    int
	Skipped  []string
	Ignored  []string
	Failures []FileFailure
}

// UpdateResult is the outcome of an update check
type UpdateResult struct {
	UpdatedCount int
	Updated      []plugin.Record
	Index        *plugin.Index
}

// AddOptions controls adding plugins by name
type AddOptions struct {
	// AllowLinking asks for a link when no registry knows a name
	AllowLinking bool
	// Registry limits the search to one registry; empty searches all
	Registry registry.Kind
}

// AddResult is the outcome of adding plugins by name
type AddResult struct {
	Added      []plugin.Record
	Refreshed  []plugin.Record
	Unresolved []string
	Index      *plugin.Index
}

// Manager reconciles plugins folders with their indexes
type Manager interface {
	// Reindex rebuilds the index of folder from the jars it contains
	Reindex(ctx context.Context, folder string, opts ReindexOptions) (*ReindexResult, error)

	// CheckUpdates refreshes the latest release of every linked record in the
	// index of folder
	CheckUpdates(ctx context.Context, folder string) (*UpdateResult, error)

	// Add resolves plugins that are not installed and merges them into the
	// index of folder
	Add(ctx context.Context, folder string, names []string, opts AddOptions) (*AddResult, error)
}

// DefaultManager is the default implementation of Manager
type DefaultManager struct {
	resolver   Resolver
	registries registry.Set
	store      storage.IndexStore
	filter     *filtering.FileFilter
}

// ManagerOption configures a DefaultManager
type ManagerOption func(*DefaultManager)

// WithFileFilter limits reindexing to the jars the filter includes
func WithFileFilter(f *filtering.FileFilter) ManagerOption {
	return func(m *DefaultManager) {
		m.filter = f
	}
}

// NewDefaultManager creates a new DefaultManager
func NewDefaultManager(
	resolver Resolver, registries registry.Set, store storage.IndexStore, opts ...ManagerOption,
) *DefaultManager {
	m := &DefaultManager{
		resolver:   resolver,
		registries: registries,
		store:      store,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Reindex implements Manager
func (m *DefaultManager) Reindex(ctx context.Context, folder string, opts ReindexOptions) (*ReindexResult, error) {
	logger := slog.Default().With("run_id", uuid.NewString(), "folder", folder)

	all, err := listJars(folder)
	if err != nil {
		return nil, err
	}

	result := &ReindexResult{Index: &plugin.Index{Plugins: []plugin.Record{}}}
	jars := make([]string, 0, len(all))
	for _, fileName := range all {
		if ok, reason := m.filter.ShouldInclude(fileName); !ok {
			logger.DebugContext(ctx, "Ignoring plugin file", "file", fileName, "reason", reason)
			result.Ignored = append(result.Ignored, fileName)
			continue
		}
		jars = append(jars, fileName)
	}
	result.Total = len(jars)
	logger.InfoContext(ctx, "Starting reindex", "jars", len(jars), "ignored", len(result.Ignored),
		"skip_unresolved", opts.SkipUnresolved)
	seen := make(map[string]struct{}, len(jars))

	for i, fileName := range jars {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, ref, err := m.resolveFile(ctx, fileName, seen, !opts.SkipUnresolved)
		switch {
		case err != nil:
			logger.ErrorContext(ctx, "Failed to index plugin", "file", fileName, "error", err)
			result.Failures = append(result.Failures, FileFailure{FileName: fileName, Err: err})
		case rec == nil:
			logger.DebugContext(ctx, "Skipping duplicate plugin", "file", fileName, "candidate", ref.CandidateName)
			result.Skipped = append(result.Skipped, fileName)
		default:
			seen[ref.CandidateName] = struct{}{}
			result.Index.Plugins = append(result.Index.Plugins, *rec)
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(jars), fileName)
		}
	}

	if err := m.store.Save(ctx, folder, result.Index); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Reindex completed",
		"indexed", len(result.Index.Plugins),
		"skipped", len(result.Skipped),
		"failed", len(result.Failures))
	return result, nil
}

// resolveFile is the per-file failure boundary of a reindex. A nil record
// without error means the file duplicates an already indexed name.
func (m *DefaultManager) resolveFile(
	ctx context.Context, fileName string, seen map[string]struct{}, allowLinking bool,
) (rec *plugin.Record, ref plugin.FileRef, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("panic while resolving %s: %v", fileName, r)
		}
	}()

	ref = plugin.Extract(fileName)
	if _, dup := seen[ref.CandidateName]; dup {
		return nil, ref, nil
	}

	resolved, err := m.resolver.Resolve(ctx, ref, allowLinking)
	if err != nil {
		return nil, ref, err
	}
	return &resolved, ref, nil
}

// CheckUpdates implements Manager
func (m *DefaultManager) CheckUpdates(ctx context.Context, folder string) (*UpdateResult, error) {
	idx, err := m.store.Load(ctx, folder)
	if err != nil {
		return nil, err
	}

	result := &UpdateResult{Index: idx}
	for i := range idx.Plugins {
		rec := &idx.Plugins[i]
		if !rec.Resolved() || rec.RegistryID == nil {
			continue
		}
		client, ok := m.registries.ForURL(*rec.RepositoryURL)
		if !ok {
			continue
		}

		if rec.Refresh(client.LatestVersion(ctx, *rec.RegistryID)) {
			result.UpdatedCount++
			result.Updated = append(result.Updated, *rec)
		}
	}

	if result.UpdatedCount > 0 {
		if err := m.store.Save(ctx, folder, idx); err != nil {
			return nil, err
		}
	}

	slog.InfoContext(ctx, "Update check completed", "folder", folder, "updated", result.UpdatedCount)
	return result, nil
}

func listJars(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugins folder %s: %w", folder, err)
	}

	var jars []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), jarSuffix) {
			continue
		}
		jars = append(jars, e.Name())
	}
	return jars, nil
}
