// Package matcher resolves a plugin name guessed from a jar file to a single
// trusted registry entry.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/plugmanager/plugmanager/internal/plugin"
	"github.com/plugmanager/plugmanager/internal/prompt"
	"github.com/plugmanager/plugmanager/internal/registry"
	"github.com/plugmanager/plugmanager/internal/storage"
)

const (
	// AddedFileName is recorded for plugins added by name rather than found on disk
	AddedFileName = "N/A"

	skipAnswer   = "skip"
	githubMarker = "github.com/"
)

var linkPattern = regexp.MustCompile(`^(http|https)://[^ "]+$`)

// Matcher resolves plugin identities against the configured registries.
//
// Registries are consulted in order and the first accepted hit wins. When no
// registry accepts the name, the user link store is consulted, and finally the
// user may be asked for a project URL.
type Matcher struct {
	registries registry.Set
	links      storage.LinkStore
	prompter   prompt.Prompter
}

// Option configures a Matcher
type Option func(*Matcher)

// WithPrompter enables interactive linking through p
func WithPrompter(p prompt.Prompter) Option {
	return func(m *Matcher) {
		m.prompter = p
	}
}

// New creates a Matcher. registries must be ordered by priority.
func New(registries registry.Set, links storage.LinkStore, opts ...Option) *Matcher {
	m := &Matcher{registries: registries, links: links}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolve builds the index record for an installed jar. An unresolvable
// plugin yields a record without identity, not an error; errors are reserved
// for local failures such as an unreadable link store.
func (m *Matcher) Resolve(ctx context.Context, ref plugin.FileRef, allowLinking bool) (plugin.Record, error) {
	return m.resolve(ctx, ref, m.registries, allowLinking)
}

func (m *Matcher) resolve(
	ctx context.Context, ref plugin.FileRef, searchIn registry.Set, allowLinking bool,
) (plugin.Record, error) {
	if rec, ok := m.searchRegistries(ctx, ref, searchIn); ok {
		return rec, nil
	}

	if m.links != nil {
		link, found, err := m.links.Get(ctx, ref.CandidateName)
		if err != nil {
			return plugin.Record{}, fmt.Errorf("failed to read user links: %w", err)
		}
		if found {
			return m.fromLink(ctx, ref, link), nil
		}
	}

	if allowLinking && m.prompter != nil {
		return m.promptForLink(ctx, ref)
	}

	return plugin.Unresolved(ref), nil
}

// ResolveOne resolves a plugin that is not installed yet, by name. A non-empty
// kind limits the registry search to that registry.
func (m *Matcher) ResolveOne(
	ctx context.Context, name string, kind registry.Kind, allowLinking bool,
) (plugin.Record, error) {
	searchIn := m.registries
	if kind != "" {
		client, ok := m.registries.Get(kind)
		if !ok {
			return plugin.Record{}, fmt.Errorf("%w: %s is not configured", registry.ErrUnknownRegistry, kind)
		}
		searchIn = registry.Set{client}
	}
	return m.resolve(ctx, plugin.FileRef{
		FileName:      AddedFileName,
		CandidateName: strings.TrimSpace(name),
	}, searchIn, allowLinking)
}

// Accepts reports whether a registry hit title is trusted for a candidate
// name: their first alphanumeric tokens must be equal and non-empty.
func Accepts(candidateName, title string) bool {
	want := plugin.FirstToken(candidateName)
	return want != "" && want == plugin.FirstToken(title)
}

func (m *Matcher) searchRegistries(ctx context.Context, ref plugin.FileRef, searchIn registry.Set) (plugin.Record, bool) {
	for _, client := range searchIn {
		for _, hit := range client.Search(ctx, ref.CandidateName) {
			if !Accepts(ref.CandidateName, hit.Title) {
				continue
			}
			slog.DebugContext(ctx, "Matched plugin",
				"candidate", ref.CandidateName,
				"registry", string(client.Kind()),
				"id", hit.ID,
				"title", hit.Title)
			return m.fromRegistry(ctx, ref, client, hit.ID, hit.Title), true
		}
	}
	return plugin.Record{}, false
}

func (*Matcher) fromRegistry(ctx context.Context, ref plugin.FileRef, client registry.Client, id, title string) plugin.Record {
	return plugin.NewBuilder(ref.CandidateName, ref.FileName, ref.VersionToken).
		Name(title).
		Identity(id, client.ProjectURL(id)).
		Freshness(client.LatestVersion(ctx, id), client.SupportedVersion(ctx, id)).
		Build()
}

func (m *Matcher) fromLink(ctx context.Context, ref plugin.FileRef, link plugin.Link) plugin.Record {
	id := ""
	if link.RegistryID != nil {
		id = *link.RegistryID
	}
	b := plugin.NewBuilder(ref.CandidateName, ref.FileName, ref.VersionToken).
		Identity(id, link.RepositoryURL)

	if client, ok := m.registries.ForURL(link.RepositoryURL); ok && id != "" {
		b.Freshness(client.LatestVersion(ctx, id), client.SupportedVersion(ctx, id))
	}
	return b.Build()
}

func (m *Matcher) promptForLink(ctx context.Context, ref plugin.FileRef) (plugin.Record, error) {
	question := fmt.Sprintf("Could not find %q on any registry. Enter a link for it (or 'skip'): ", ref.CandidateName)

	for {
		answer, err := m.prompter.Prompt(ctx, question)
		if err != nil {
			if errors.Is(err, prompt.ErrNoInput) {
				return plugin.Unresolved(ref), nil
			}
			return plugin.Record{}, fmt.Errorf("failed to read link: %w", err)
		}
		if answer == "" || strings.EqualFold(answer, skipAnswer) {
			return plugin.Unresolved(ref), nil
		}
		if !linkPattern.MatchString(answer) {
			question = fmt.Sprintf("Invalid link. Enter an http(s) link for %q (or 'skip'): ", ref.CandidateName)
			continue
		}
		return m.link(ctx, ref, answer)
	}
}

func (m *Matcher) link(ctx context.Context, ref plugin.FileRef, link string) (plugin.Record, error) {
	for _, client := range m.registries {
		id, verified := client.LinkID(ctx, link)
		if id == "" {
			continue
		}
		if !verified {
			slog.WarnContext(ctx, "Linked project could not be verified",
				"plugin", ref.CandidateName,
				"registry", string(client.Kind()),
				"link", link)
			return plugin.NewBuilder(ref.CandidateName, ref.FileName, ref.VersionToken).
				Identity(id, link).
				Build(), nil
		}

		rec := m.fromRegistry(ctx, ref, client, id, "")
		m.remember(ctx, rec)
		return rec, nil
	}

	if strings.Contains(link, githubMarker) {
		id := strings.TrimRight(link, "/")
		id = id[strings.LastIndex(id, "/")+1:]
		return plugin.NewBuilder(ref.CandidateName, ref.FileName, ref.VersionToken).
			Identity(id, link).
			Build(), nil
	}

	rec := plugin.NewBuilder(ref.CandidateName, ref.FileName, ref.VersionToken).
		Identity("", link).
		Build()
	m.remember(ctx, rec)
	return rec, nil
}

// remember stores a successful manual link. Write failures are logged only.
func (m *Matcher) remember(ctx context.Context, rec plugin.Record) {
	if m.links == nil || rec.RepositoryURL == nil {
		return
	}
	err := m.links.Put(ctx, plugin.Link{
		Name:          rec.Name,
		RegistryID:    rec.RegistryID,
		RepositoryURL: *rec.RepositoryURL,
	})
	if err != nil {
		slog.WarnContext(ctx, "Failed to save user link", "plugin", rec.Name, "error", err)
	}
}
