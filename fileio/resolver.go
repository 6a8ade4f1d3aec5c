// Package fileio is the sole door the preprocessor has to the filesystem.
// It maps a logical include path (as written after #include) to physical
// file contents, honouring the two include forms SQF's preprocessor
// supports: quoted includes ("path") search relative to the including file
// first, angle includes (<path>) search a fixed list of include roots only.
//
// Grounded on the teacher's module loader (modules.go: resolveFS /
// resolveAndFetch) — same "probe a list of base directories, first match
// wins" shape, adapted from MindScript's single-search-list import model to
// SQF's two distinct search-path sets.
package fileio

import (
	"fmt"
	"os"
	"path/filepath"
)

// IncludeKind distinguishes the two #include spellings.
type IncludeKind int

const (
	Quoted  IncludeKind = iota // #include "path"
	Angled                     // #include <path>
)

// Resolver maps a logical include path to physical file contents. It is the
// file I/O collaborator contract from spec.md §6.
type Resolver interface {
	// Resolve returns the physical path for a logical include, searching
	// relative to fromFile (the file containing the #include) for Quoted
	// includes, and the resolver's root list for both kinds.
	Resolve(logicalPath string, kind IncludeKind, fromFile string) (physicalPath string, err error)
	// Read returns the full contents of a physical path as resolved above.
	Read(physicalPath string) ([]byte, error)
}

// OSResolver resolves against the real filesystem. Roots is the angle-include
// search path (checked in order); quoted includes additionally try the
// including file's own directory first.
type OSResolver struct {
	Roots []string
}

func NewOSResolver(roots ...string) *OSResolver {
	return &OSResolver{Roots: roots}
}

func (r *OSResolver) Resolve(logicalPath string, kind IncludeKind, fromFile string) (string, error) {
	var candidates []string

	if kind == Quoted && fromFile != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(fromFile), logicalPath))
	}
	for _, root := range r.Roots {
		candidates = append(candidates, filepath.Join(root, logicalPath))
	}
	if filepath.IsAbs(logicalPath) {
		candidates = append(candidates, logicalPath)
	}

	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			abs, err := filepath.Abs(c)
			if err != nil {
				return filepath.Clean(c), nil
			}
			return filepath.Clean(abs), nil
		}
	}
	return "", fmt.Errorf("include not found: %s", logicalPath)
}

func (r *OSResolver) Read(physicalPath string) ([]byte, error) {
	b, err := os.ReadFile(physicalPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", physicalPath, err)
	}
	return b, nil
}

// MemResolver resolves against an in-memory file set. Useful for tests and
// for embedding scripts without a real filesystem. Keys are logical paths as
// they would be written in an #include directive; lookups for quoted
// includes also try joining fromFile's directory with the logical path.
type MemResolver struct {
	Files map[string]string
}

func NewMemResolver(files map[string]string) *MemResolver {
	return &MemResolver{Files: files}
}

func (r *MemResolver) Resolve(logicalPath string, kind IncludeKind, fromFile string) (string, error) {
	if _, ok := r.Files[logicalPath]; ok {
		return logicalPath, nil
	}
	if kind == Quoted && fromFile != "" {
		joined := filepath.Join(filepath.Dir(fromFile), logicalPath)
		if _, ok := r.Files[joined]; ok {
			return joined, nil
		}
	}
	return "", fmt.Errorf("include not found: %s", logicalPath)
}

func (r *MemResolver) Read(physicalPath string) ([]byte, error) {
	s, ok := r.Files[physicalPath]
	if !ok {
		return nil, fmt.Errorf("cannot read %s: no such file", physicalPath)
	}
	return []byte(s), nil
}
