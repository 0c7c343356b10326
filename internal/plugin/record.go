// Package plugin defines the persisted plugin record, the per-folder index and
// the helpers used to derive a plugin identity from a jar file name.
package plugin

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aws/smithy-go/ptr"

	"github.com/plugmanager/plugmanager/internal/versions"
)

// UnknownVersion is recorded when a jar file name carries no usable version.
const UnknownVersion = "0.0.0"

// Record is one entry of a plugins folder index.
//
// Nullable fields are pointers so that "unknown" survives a round trip through
// the index file as JSON null. Records must be created through Builder, which
// keeps identity and freshness consistent.
type Record struct {
	Name             string  `json:"plugin_name"`
	RegistryID       *string `json:"plugin_id"`
	FileName         string  `json:"plugin_file_name"`
	InstalledVersion string  `json:"plugin_file_version"`
	LatestVersion    *string `json:"plugin_latest_version"`
	SupportedVersion *string `json:"plugin_supported_versions"`
	IsOutdated       *bool   `json:"plugin_is_outdated"`
	RepositoryURL    *string `json:"plugin_repository"`
}

// Resolved reports whether the record is linked to a repository.
func (r *Record) Resolved() bool {
	return r.RepositoryURL != nil
}

// Outdated reports whether the record is known to be behind its latest release.
func (r *Record) Outdated() bool {
	return r.IsOutdated != nil && *r.IsOutdated
}

// Refresh stores a freshly fetched latest version and recomputes the outdated
// verdict. It reports whether the stored latest version changed. Empty input
// and unresolved records are left untouched.
func (r *Record) Refresh(latest string) bool {
	if latest == "" || !r.Resolved() {
		return false
	}
	if r.LatestVersion != nil && *r.LatestVersion == latest {
		return false
	}
	r.LatestVersion = ptr.String(latest)
	r.IsOutdated = outdated(r.InstalledVersion, latest)
	return true
}

// UnmarshalJSON accepts indexes written by older releases, which stored
// marketplace ids as JSON numbers.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	aux := struct {
		*plain
		RegistryID json.RawMessage `json:"plugin_id"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.RegistryID = nil
	raw := bytes.TrimSpace(aux.RegistryID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		r.RegistryID = &id
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return fmt.Errorf("plugin_id must be a string or number: %w", err)
	}
	r.RegistryID = ptr.String(num.String())
	return nil
}

// outdated compares the installed version with a registry's latest release.
// The stored latest version keeps its raw form; only the comparison is normalized.
func outdated(installed, latest string) *bool {
	newer, ok := versions.Compare(installed, NormalizeVersion(latest))
	if !ok {
		return nil
	}
	return ptr.Bool(newer)
}
