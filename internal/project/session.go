// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"stackhand/pkg/cabal"
)

type (
	// Project is the cached state of the active project.
	Project struct {
		// Root is the absolute project root directory.
		Root string
		// Name is the project name: the root directory base name for
		// compound projects, the manifest base name otherwise.
		Name string
		// Compound reports whether the project holds more than one
		// package.
		Compound bool
		// Packages are the parsed package records, ordered by
		// manifest path, keys unique by name.
		Packages []*cabal.Package
		// Current is the active package scope for build operations.
		Current *cabal.Package
		// MarkerModTime is the compound marker's modification time at
		// the last full load; zero for simple projects.
		MarkerModTime time.Time
	}

	// Session owns the process-wide project cache. It is an explicit
	// context object: callers create one, hold it, and serialize calls
	// to Prepare themselves (there is no internal locking).
	Session struct {
		logger   *log.Logger
		current  *Project
		reparses int
	}
)

// NewSession returns an empty session. A nil logger defaults to the
// package-level default logger.
func NewSession(logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{logger: logger}
}

// Project returns the currently cached project, or nil before the first
// successful Prepare.
func (s *Session) Project() *Project { return s.current }

// Reset discards the cached project state.
func (s *Session) Reset() { s.current = nil }

// Reparses returns the number of manifest parses performed so far. Used
// as a probe by tests verifying cache correctness.
func (s *Session) Reparses() int { return s.reparses }

// Prepare refreshes the session against the filesystem, starting the
// root search from start. It replaces the project wholesale when the
// resolved root differs from the cached one (or the compound marker
// changed), and otherwise reparses only manifests whose files changed
// since they were last read.
func (s *Session) Prepare(start string) (*Project, error) {
	root, err := LocateRoot(start)
	if err != nil {
		return nil, err
	}

	compound := IsCompoundRoot(root)

	var markerMod time.Time
	if compound {
		info, err := os.Stat(filepath.Join(root, CompoundMarker))
		if err != nil {
			return nil, fmt.Errorf("reading compound marker in %s: %w", root, err)
		}
		markerMod = info.ModTime()
	}

	name, single, err := projectName(root, compound)
	if err != nil {
		return nil, err
	}

	differentProject := s.current == nil || s.current.Root != root
	needFullReload := differentProject ||
		(compound && s.current.MarkerModTime.Before(markerMod))

	var packages []*cabal.Package
	if needFullReload {
		manifests := []string{single}
		if compound {
			manifests, err = FindManifests(root)
			if err != nil {
				return nil, err
			}
		}
		packages = make([]*cabal.Package, 0, len(manifests))
		for _, m := range manifests {
			packages = append(packages, s.parseOrDegrade(m))
		}
		s.logger.Debug("full project reload", "root", root, "packages", len(packages))
	} else {
		packages = make([]*cabal.Package, 0, len(s.current.Packages))
		for _, pkg := range s.current.Packages {
			packages = append(packages, s.refreshOne(pkg))
		}
	}

	proj := &Project{
		Root:          root,
		Name:          name,
		Compound:      len(packages) > 1,
		Packages:      packages,
		MarkerModTime: markerMod,
	}

	// Keep the active package scope across refreshes of the same
	// project; a project switch resets it to the first package.
	if !differentProject && s.current.Current != nil {
		proj.Current = findPackage(packages, s.current.Current.Name)
	}
	if proj.Current == nil && len(packages) > 0 {
		proj.Current = packages[0]
	}

	s.current = proj
	return proj, nil
}

// SetCurrent switches the active package scope by name.
func (s *Session) SetCurrent(name string) error {
	if s.current == nil {
		return fmt.Errorf("no project prepared")
	}
	pkg := findPackage(s.current.Packages, name)
	if pkg == nil {
		return fmt.Errorf("no package named %q in project %s", name, s.current.Name)
	}
	s.current.Current = pkg
	return nil
}

// refreshOne returns the cached record untouched when its manifest is
// unchanged on disk, and a fresh parse otherwise. This is the central
// cache rule: never reparse an unchanged manifest, never skip a changed
// one.
func (s *Session) refreshOne(pkg *cabal.Package) *cabal.Package {
	info, err := os.Stat(pkg.ManifestPath)
	if err != nil {
		s.logger.Warn("manifest vanished, keeping cached record",
			"path", pkg.ManifestPath, "err", err)
		return pkg
	}
	if !info.ModTime().After(pkg.ManifestModTime) {
		return pkg
	}
	return s.parseOrDegrade(pkg.ManifestPath)
}

// parseOrDegrade parses one manifest, degrading to an empty-field record
// on failure so a single malformed manifest does not block the rest of
// the project.
func (s *Session) parseOrDegrade(path string) *cabal.Package {
	s.reparses++
	pkg, err := cabal.Parse(path)
	if err != nil {
		s.logger.Warn("manifest unreadable, using empty record", "path", path, "err", err)
		return &cabal.Package{
			Dir:          filepath.Dir(path),
			ManifestPath: path,
		}
	}
	return pkg
}

// projectName resolves the project name and, for simple projects, the
// single root manifest path.
func projectName(root string, compound bool) (name, single string, err error) {
	if compound {
		return filepath.Base(root), "", nil
	}
	manifests, err := rootManifests(root)
	if err != nil {
		return "", "", err
	}
	if len(manifests) != 1 {
		return "", "", &NoManifestError{Root: root, Found: len(manifests)}
	}
	base := filepath.Base(manifests[0])
	return strings.TrimSuffix(base, cabal.ManifestExt), manifests[0], nil
}

func findPackage(packages []*cabal.Package, name string) *cabal.Package {
	for _, pkg := range packages {
		if pkg.Name == name {
			return pkg
		}
	}
	return nil
}
