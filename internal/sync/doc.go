// Package sync reconciles a plugins folder with its persisted index.
//
// # Core Interfaces
//
//   - Manager: rebuilds an index from the jars on disk (Reindex) and refreshes
//     the latest known release of every linked record (CheckUpdates)
//   - Resolver: turns a FileRef into a Record; implemented by matcher.Matcher
//
// # Reindexing
//
// Files are processed one at a time in directory listing order. Only the
// first file of each distinct candidate name is resolved; later files with
// the same name are skipped. Each file is resolved behind its own failure
// boundary: an error or panic while resolving one jar is logged and the file
// is left out of the index, while the rest of the folder is still indexed.
// The finished index replaces the previous one in a single write.
//
// WithFileFilter restricts a reindex to the jars a filtering.FileFilter
// includes. Ignored files are reported but never resolved.
//
// # Update Checks
//
// CheckUpdates asks the registry owning each record's repository URL for the
// latest release. Records without a repository URL, or whose URL belongs to
// no configured registry, are outside freshness tracking and are skipped.
// The index is rewritten only when at least one record changed.
//
// # Adding
//
// Add resolves plugins by name before they are installed, optionally in a
// single registry (AddOptions.Registry). A result whose registry id is already
// indexed refreshes that record; links without an id are matched by repository
// URL instead. Anything else is appended with the placeholder file name used
// by the matcher.
package sync
