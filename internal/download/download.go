// Package download fetches plugin artifacts selected from a plugins folder index.
package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/plugmanager/plugmanager/internal/httpclient"
	"github.com/plugmanager/plugmanager/internal/plugin"
	"github.com/plugmanager/plugmanager/internal/registry"
	"github.com/plugmanager/plugmanager/internal/storage"
)

// ErrPluginNotFound is returned when a name selector matches no index record
var ErrPluginNotFound = errors.New("plugin not found in index")

// ErrArtifactGone is returned when the registry no longer serves a plugin's file
var ErrArtifactGone = errors.New("plugin file is no longer available")

// Outcome is the result of downloading one record
type Outcome struct {
	Record   plugin.Record
	FileName string
	Skipped  bool
	Err      error
}

// Summary aggregates the outcomes of a download run
type Summary struct {
	Attempted int
	Succeeded int
	Outcomes  []Outcome
}

// Failed returns the outcomes that did not succeed
func (s *Summary) Failed() []Outcome {
	var out []Outcome
	for _, o := range s.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// ProgressFunc is invoked before each plugin download starts
type ProgressFunc func(current, total int, rec plugin.Record)

// Downloader resolves artifacts through the owning registry and writes them
// into the plugins folder, one plugin at a time.
type Downloader struct {
	http       httpclient.Client
	registries registry.Set
	store      storage.IndexStore
	progress   ProgressFunc
}

// Option configures a Downloader
type Option func(*Downloader)

// WithProgress reports each download before it starts
func WithProgress(fn ProgressFunc) Option {
	return func(d *Downloader) {
		d.progress = fn
	}
}

// NewDownloader creates a Downloader
func NewDownloader(client httpclient.Client, registries registry.Set, store storage.IndexStore, opts ...Option) *Downloader {
	d := &Downloader{http: client, registries: registries, store: store}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Plan loads the index of folder and returns the records selected by sel.
// A literal name that matches nothing yields ErrPluginNotFound.
func (d *Downloader) Plan(ctx context.Context, folder string, sel plugin.Selector) ([]plugin.Record, error) {
	idx, err := d.store.Load(ctx, folder)
	if err != nil {
		return nil, err
	}
	selected := idx.Select(sel)
	if len(selected) == 0 && !sel.Bulk() {
		return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, string(sel))
	}
	return selected, nil
}

// Download fetches every record in order and never stops early: each failure
// is recorded in the summary.
func (d *Downloader) Download(ctx context.Context, folder string, records []plugin.Record) *Summary {
	summary := &Summary{}
	for i, rec := range records {
		if d.progress != nil {
			d.progress(i+1, len(records), rec)
		}
		outcome := d.downloadOne(ctx, folder, rec)
		summary.Attempted++
		if outcome.Err == nil {
			summary.Succeeded++
		} else {
			slog.ErrorContext(ctx, "Plugin download failed", "plugin", rec.Name, "error", outcome.Err)
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}
	return summary
}

// DownloadDue plans and downloads in one step
func (d *Downloader) DownloadDue(ctx context.Context, folder string, sel plugin.Selector) (*Summary, error) {
	records, err := d.Plan(ctx, folder, sel)
	if err != nil {
		return nil, err
	}
	return d.Download(ctx, folder, records), nil
}

func (d *Downloader) downloadOne(ctx context.Context, folder string, rec plugin.Record) Outcome {
	out := Outcome{Record: rec}

	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}
	if !rec.Resolved() {
		out.Err = fmt.Errorf("no repository link for %q", rec.Name)
		return out
	}
	client, ok := d.registries.ForURL(*rec.RepositoryURL)
	if !ok {
		out.Err = fmt.Errorf("downloads from %s are not supported", *rec.RepositoryURL)
		return out
	}
	artifact, ok := client.Artifact(ctx, rec)
	if !ok {
		out.Err = fmt.Errorf("no downloadable file found for %q", rec.Name)
		return out
	}

	fileName := filepath.Base(artifact.FileName)
	out.FileName = fileName
	target := filepath.Join(folder, fileName)

	if _, err := os.Stat(target); err == nil {
		slog.InfoContext(ctx, "File already exists, skipping", "file", fileName)
		out.Skipped = true
		return out
	} else if !errors.Is(err, os.ErrNotExist) {
		out.Err = fmt.Errorf("failed to check %s: %w", target, err)
		return out
	}

	out.Err = d.fetch(ctx, artifact.URL, target)
	return out
}

// fetch streams url into a temporary file next to target and renames it
// into place once complete.
func (d *Downloader) fetch(ctx context.Context, url, target string) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	n, err := d.http.Download(ctx, url, tmp)
	closeErr := tmp.Close()
	if err != nil {
		cleanup()
		if httpclient.IsNotFound(err) {
			return fmt.Errorf("%w at %s: %w", ErrArtifactGone, url, err)
		}
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	if closeErr != nil {
		cleanup()
		return fmt.Errorf("failed to write %s: %w", tmpPath, closeErr)
	}
	if n == 0 {
		cleanup()
		return fmt.Errorf("empty response from %s", url)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		cleanup()
		return fmt.Errorf("failed to move download into place: %w", err)
	}
	slog.DebugContext(context.WithoutCancel(ctx), "Downloaded plugin", "file", filepath.Base(target), "bytes", n)
	return nil
}
