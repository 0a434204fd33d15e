// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

type (
	// ArtifactKind classifies a location found in build tool output.
	ArtifactKind string

	// Artifact is one artifact location surfaced from finished output.
	Artifact struct {
		Kind ArtifactKind
		// Path is the location as printed by the tool; possibly
		// relative to the package directory.
		Path string
	}

	// Opener receives resolved artifact locations (the external
	// "open in browser/editor" collaborator).
	Opener interface {
		Open(location string) error
	}

	// AutoOpen gates which artifact classes are handed to the opener.
	AutoOpen struct {
		Coverage bool
		Haddock  bool
	}
)

const (
	// ArtifactCoverage is an hpc coverage report index.
	ArtifactCoverage ArtifactKind = "coverage"
	// ArtifactHaddock is a generated haddock documentation index.
	ArtifactHaddock ArtifactKind = "haddock"
)

// Output phrasings the build tool uses for artifact locations. Haddock
// locations come in two phrasings, tried in this fixed fallback order.
var (
	coverageRe = regexp.MustCompile(`(?m)^The coverage report for .* is available at\s+(\S+)`)
	haddockRes = []*regexp.Regexp{
		regexp.MustCompile(`Updating Haddock index for local packages in\s+(\S+)`),
		regexp.MustCompile(`(?m)Documentation created:\s+(\S+)`),
	}
)

// Scan inspects finished process output top to bottom and returns the
// artifact locations found: at most one coverage report and at most one
// haddock index (first match wins per class).
func Scan(output string) []Artifact {
	var found []Artifact

	if m := coverageRe.FindStringSubmatch(output); m != nil {
		found = append(found, Artifact{Kind: ArtifactCoverage, Path: trimArtifactPath(m[1])})
	}
	for _, re := range haddockRes {
		if m := re.FindStringSubmatch(output); m != nil {
			found = append(found, Artifact{Kind: ArtifactHaddock, Path: trimArtifactPath(m[1])})
			break
		}
	}
	return found
}

// Scanner wires Scan to an Opener for runs that completed after a
// successful start.
type Scanner struct {
	auto   AutoOpen
	opener Opener
	logger *log.Logger
}

// NewScanner returns a scanner dispatching enabled artifact classes to
// opener. A nil logger defaults to the package default.
func NewScanner(auto AutoOpen, opener Opener, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{auto: auto, opener: opener, logger: logger}
}

// Process scans the output of one finished run and opens enabled
// artifacts, resolving relative paths against pkgDir. Runs that failed
// to start are the caller's concern; Process assumes the output is real
// tool output.
func (s *Scanner) Process(output, pkgDir string) []Artifact {
	artifacts := Scan(output)
	for _, a := range artifacts {
		if !s.enabled(a.Kind) || s.opener == nil {
			continue
		}
		location := a.Path
		if !filepath.IsAbs(location) && !strings.Contains(location, "://") {
			location = filepath.Join(pkgDir, location)
		}
		if err := s.opener.Open(location); err != nil {
			s.logger.Warn("opening artifact failed", "kind", a.Kind, "location", location, "err", err)
		}
	}
	return artifacts
}

func (s *Scanner) enabled(kind ArtifactKind) bool {
	switch kind {
	case ArtifactCoverage:
		return s.auto.Coverage
	case ArtifactHaddock:
		return s.auto.Haddock
	default:
		return false
	}
}

// trimArtifactPath strips the trailing punctuation the tool prints after
// a location in list context.
func trimArtifactPath(p string) string {
	return strings.TrimRight(p, ",.")
}
