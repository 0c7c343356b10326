package filtering

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

type pattern struct {
	raw      string
	compiled glob.Glob
}

// FileFilter decides which jar files of a plugins folder take part in a reindex.
// A nil *FileFilter includes everything.
type FileFilter struct {
	include []pattern
	exclude []pattern
}

// NewFileFilter compiles include and exclude glob patterns
func NewFileFilter(include, exclude []string) (*FileFilter, error) {
	inc, err := compile(include)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	exc, err := compile(exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}
	if len(inc) == 0 && len(exc) == 0 {
		return nil, nil
	}
	return &FileFilter{include: inc, exclude: exc}, nil
}

func compile(patterns []string) ([]pattern, error) {
	out := make([]pattern, 0, len(patterns))
	for _, p := range patterns {
		// filepath.Match rejects malformed patterns before compiling
		if _, err := filepath.Match(p, "test"); err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		compiled, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		out = append(out, pattern{raw: p, compiled: compiled})
	}
	return out, nil
}

// ShouldInclude determines if a jar file should be indexed and returns the reason
//
// Logic:
// 1. A name matching any exclude pattern is excluded (exclude takes precedence)
// 2. With include patterns, the name must match one of them
// 3. Without patterns, everything is included
func (f *FileFilter) ShouldInclude(fileName string) (bool, string) {
	if f == nil {
		return true, "no file filters specified"
	}

	for _, p := range f.exclude {
		if p.compiled.Match(fileName) {
			return false, fmt.Sprintf("excluded by pattern '%s'", p.raw)
		}
	}

	if len(f.include) == 0 {
		return true, "no match in exclude patterns"
	}
	for _, p := range f.include {
		if p.compiled.Match(fileName) {
			return true, fmt.Sprintf("included by pattern '%s'", p.raw)
		}
	}
	return false, "no match found in include patterns"
}
