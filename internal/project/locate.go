// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"stackhand/pkg/cabal"
)

// Root marker files: presence of any one marks a directory as a project
// root during the upward walk.
var rootMarkers = []string{"stack.yaml", "package.yaml", "cabal.sandbox.config"}

// CompoundMarker signals a multi-package project at the root. It also
// counts as a root signal so a pure multi-package root is locatable.
const CompoundMarker = "cabal.project"

// ErrNoProject is the sentinel error wrapped by NoProjectError.
var ErrNoProject = errors.New("no project found")

// ErrNoManifest is the sentinel error wrapped by NoManifestError.
var ErrNoManifest = errors.New("no manifest found")

type (
	// NoProjectError is returned when no marker file exists anywhere up
	// the directory chain from the starting directory.
	NoProjectError struct {
		Start string
	}

	// NoManifestError is returned when a simple project root does not
	// contain exactly one manifest.
	NoManifestError struct {
		Root  string
		Found int
	}
)

// Error implements the error interface.
func (e *NoProjectError) Error() string {
	return fmt.Sprintf("no project marker found from %s upward", e.Start)
}

// Unwrap returns ErrNoProject for errors.Is() compatibility.
func (e *NoProjectError) Unwrap() error { return ErrNoProject }

// Error implements the error interface.
func (e *NoManifestError) Error() string {
	return fmt.Sprintf("expected exactly one %s manifest in %s, found %d",
		cabal.ManifestExt, e.Root, e.Found)
}

// Unwrap returns ErrNoManifest for errors.Is() compatibility.
func (e *NoManifestError) Unwrap() error { return ErrNoManifest }

// isProjectRoot reports whether dir carries any root or compound marker.
func isProjectRoot(dir string) bool {
	for _, marker := range rootMarkers {
		if fileExists(filepath.Join(dir, marker)) {
			return true
		}
	}
	return fileExists(filepath.Join(dir, CompoundMarker))
}

// IsMarkerName reports whether a bare file name is a root or compound
// marker.
func IsMarkerName(name string) bool {
	for _, marker := range rootMarkers {
		if name == marker {
			return true
		}
	}
	return name == CompoundMarker
}

// IsCompoundRoot reports whether dir carries the compound-project marker.
func IsCompoundRoot(dir string) bool {
	return fileExists(filepath.Join(dir, CompoundMarker))
}

// LocateRoot walks from start upward through parent directories (start
// inclusive) and returns the first directory containing a project marker
// file. Reaching the filesystem root without a match yields a
// NoProjectError.
func LocateRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving start directory %s: %w", start, err)
	}

	for {
		if isProjectRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &NoProjectError{Start: start}
		}
		dir = parent
	}
}

// FindManifests returns all manifest paths under root, depth-first,
// pruning any subtree whose own directory carries a project marker
// (nested or unrelated projects are excluded). The root directory itself
// is never pruned. Results are sorted for deterministic ordering.
func FindManifests(root string) ([]string, error) {
	var manifests []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if path != root && isProjectRoot(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if cabal.IsManifest(d.Name()) {
			manifests = append(manifests, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(manifests)
	return manifests, nil
}

// rootManifests returns the manifests directly in root (no descent).
func rootManifests(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var manifests []string
	for _, entry := range entries {
		if !entry.IsDir() && cabal.IsManifest(entry.Name()) {
			manifests = append(manifests, filepath.Join(root, entry.Name()))
		}
	}
	sort.Strings(manifests)
	return manifests, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
