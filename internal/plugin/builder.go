package plugin

import (
	"github.com/aws/smithy-go/ptr"
)

// Builder assembles a Record.
//
// Build enforces the record invariant: without a repository URL the record
// carries no registry id and no freshness data at all.
type Builder struct {
	rec Record
}

// NewBuilder starts a record for an installed file. An empty installed
// version is recorded as UnknownVersion.
func NewBuilder(name, fileName, installedVersion string) *Builder {
	if installedVersion == "" {
		installedVersion = UnknownVersion
	}
	return &Builder{rec: Record{
		Name:             name,
		FileName:         fileName,
		InstalledVersion: installedVersion,
	}}
}

// Name overrides the display name, typically with the registry's title.
func (b *Builder) Name(name string) *Builder {
	if name != "" {
		b.rec.Name = name
	}
	return b
}

// Identity links the record to a registry entry. An empty id is stored as
// null; an empty repository URL leaves the record unresolved.
func (b *Builder) Identity(registryID, repositoryURL string) *Builder {
	b.rec.RegistryID = optional(registryID)
	b.rec.RepositoryURL = optional(repositoryURL)
	return b
}

// Freshness sets the latest known release and the newest supported game
// version. Empty values are stored as null.
func (b *Builder) Freshness(latest, supported string) *Builder {
	b.rec.LatestVersion = optional(latest)
	b.rec.SupportedVersion = optional(supported)
	return b
}

// Build returns the finished record.
func (b *Builder) Build() Record {
	rec := b.rec
	if rec.RepositoryURL == nil {
		rec.RegistryID = nil
		rec.LatestVersion = nil
		rec.SupportedVersion = nil
		rec.IsOutdated = nil
		return rec
	}

	rec.IsOutdated = nil
	if rec.LatestVersion != nil {
		rec.IsOutdated = outdated(rec.InstalledVersion, *rec.LatestVersion)
	}
	return rec
}

// Unresolved returns a record with no identity for the given file.
func Unresolved(ref FileRef) Record {
	return NewBuilder(ref.CandidateName, ref.FileName, ref.VersionToken).Build()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return ptr.String(s)
}
