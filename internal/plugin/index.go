package plugin

import (
	"strings"
)

// Index is the ordered set of records describing one plugins folder.
type Index struct {
	Plugins []Record `json:"plugins"`
}

// Find returns the record whose name equals name exactly.
func (idx *Index) Find(name string) (*Record, bool) {
	for i := range idx.Plugins {
		if idx.Plugins[i].Name == name {
			return &idx.Plugins[i], true
		}
	}
	return nil, false
}

// FindByID returns the record linked to the given registry id.
func (idx *Index) FindByID(registryID string) (*Record, bool) {
	if registryID == "" {
		return nil, false
	}
	for i := range idx.Plugins {
		if id := idx.Plugins[i].RegistryID; id != nil && *id == registryID {
			return &idx.Plugins[i], true
		}
	}
	return nil, false
}

// FindByURL returns the record linked to the given repository URL.
func (idx *Index) FindByURL(repositoryURL string) (*Record, bool) {
	if repositoryURL == "" {
		return nil, false
	}
	for i := range idx.Plugins {
		if u := idx.Plugins[i].RepositoryURL; u != nil && *u == repositoryURL {
			return &idx.Plugins[i], true
		}
	}
	return nil, false
}

// Upsert refreshes the record sharing rec's registry id, or its repository
// URL when rec has no id, and appends rec when there is none. It returns the
// stored record and whether rec was appended.
func (idx *Index) Upsert(rec Record) (*Record, bool) {
	existing, found := idx.match(rec)
	if !found {
		idx.Plugins = append(idx.Plugins, rec)
		return &idx.Plugins[len(idx.Plugins)-1], true
	}

	existing.RepositoryURL = rec.RepositoryURL
	existing.LatestVersion = rec.LatestVersion
	existing.SupportedVersion = rec.SupportedVersion
	existing.IsOutdated = nil
	if rec.LatestVersion != nil {
		existing.IsOutdated = outdated(existing.InstalledVersion, *rec.LatestVersion)
	}
	return existing, false
}

func (idx *Index) match(rec Record) (*Record, bool) {
	if rec.RegistryID != nil {
		return idx.FindByID(*rec.RegistryID)
	}
	if rec.RepositoryURL != nil {
		return idx.FindByURL(*rec.RepositoryURL)
	}
	return nil, false
}

// Selector names which records a bulk operation applies to.
type Selector string

const (
	// SelectAll selects every record linked to a repository.
	SelectAll Selector = "all"
	// SelectOutdated selects every record known to be outdated.
	SelectOutdated Selector = "update"
)

// ParseSelector turns command input into a Selector. Anything other than the
// two keywords is taken as a literal plugin name.
func ParseSelector(s string) Selector {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SelectAll):
		return SelectAll
	case string(SelectOutdated):
		return SelectOutdated
	}
	return Selector(strings.TrimSpace(s))
}

// Bulk reports whether the selector may match more than one record.
func (s Selector) Bulk() bool {
	return s == SelectAll || s == SelectOutdated
}

// Select returns copies of the records matched by sel, in index order.
func (idx *Index) Select(sel Selector) []Record {
	var out []Record
	for _, rec := range idx.Plugins {
		switch sel {
		case SelectAll:
			if rec.Resolved() {
				out = append(out, rec)
			}
		case SelectOutdated:
			if rec.Outdated() {
				out = append(out, rec)
			}
		default:
			if rec.Name == string(sel) {
				return []Record{rec}
			}
		}
	}
	return out
}

// Link is a plugin a user manually tied to a repository URL.
type Link struct {
	Name          string  `json:"plugin_name"`
	RegistryID    *string `json:"plugin_id"`
	RepositoryURL string  `json:"plugin_repository"`
}
