package sync

import (
	"context"
	"fmt"
	"log/slog"
)

// Add resolves plugins by name and merges them into the index of folder.
// A name whose registry id, or repository URL for links without an id, is
// already indexed refreshes that record in place;
// otherwise the record is appended. Names that resolve to nothing are
// reported and left out.
func (m *DefaultManager) Add(ctx context.Context, folder string, names []string, opts AddOptions) (*AddResult, error) {
	idx, err := m.store.Load(ctx, folder)
	if err != nil {
		return nil, err
	}

	result := &AddResult{Index: idx}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := m.resolver.ResolveOne(ctx, name, opts.Registry, opts.AllowLinking)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", name, err)
		}
		if !rec.Resolved() {
			slog.InfoContext(ctx, "Plugin not found in any registry", "plugin", name)
			result.Unresolved = append(result.Unresolved, name)
			continue
		}

		stored, appended := idx.Upsert(rec)
		if appended {
			result.Added = append(result.Added, *stored)
		} else {
			result.Refreshed = append(result.Refreshed, *stored)
		}
	}

	if len(result.Added)+len(result.Refreshed) > 0 {
		if err := m.store.Save(ctx, folder, idx); err != nil {
			return nil, err
		}
	}
	return result, nil
}
