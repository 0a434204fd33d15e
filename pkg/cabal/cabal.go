// SPDX-License-Identifier: MPL-2.0

package cabal

import (
	"errors"
	"fmt"
	"time"
)

// ManifestExt is the file extension of package manifests.
const ManifestExt = ".cabal"

// ErrManifestNotFound is the sentinel error wrapped by ManifestError when
// a manifest file cannot be read.
var ErrManifestNotFound = errors.New("manifest not found")

type (
	// TargetKind classifies a buildable unit within a package.
	TargetKind string

	// Target is an addressable buildable unit, rendered as
	// name:lib, name:exe:<id>, name:test:<id> or name:bench:<id>.
	// The rendered form is also a valid argument to the build tool.
	Target struct {
		// Package is the owning package name.
		Package string
		// Kind is the target class.
		Kind TargetKind
		// Sub is the stanza identifier; empty for library targets.
		Sub string
	}

	// Package is the parsed record of one manifest file.
	Package struct {
		// Name is the package name; empty when the manifest has no
		// name field (callers must tolerate this).
		Name string
		// Version is the dotted-numeric package version; may be empty.
		Version string
		// Homepage is the package homepage URL, when declared.
		Homepage string
		// Location is the source-repository location, when declared.
		Location string
		// Targets is the ordered target list: library first, then
		// executables, test-suites and benchmarks, each group in the
		// order the stanzas appear in the file.
		Targets []Target
		// Dir is the absolute directory containing the manifest.
		Dir string
		// ManifestPath is the absolute path to the manifest file.
		ManifestPath string
		// ManifestModTime is the file modification time captured at
		// parse; it always reflects the file state the record was
		// derived from.
		ManifestModTime time.Time
	}

	// ManifestError is returned when a manifest file cannot be read.
	// It wraps ErrManifestNotFound for errors.Is() compatibility.
	ManifestError struct {
		Path string
		Err  error
	}
)

const (
	// KindLib is a library target (at most one per package, no Sub).
	KindLib TargetKind = "lib"
	// KindExe is an executable target.
	KindExe TargetKind = "exe"
	// KindTest is a test-suite target.
	KindTest TargetKind = "test"
	// KindBench is a benchmark target.
	KindBench TargetKind = "bench"
)

// String renders the target in the build tool's target syntax.
func (t Target) String() string {
	if t.Kind == KindLib {
		return t.Package + ":" + string(t.Kind)
	}
	return t.Package + ":" + string(t.Kind) + ":" + t.Sub
}

// TargetStrings returns the rendered form of every target, in order.
func (p *Package) TargetStrings() []string {
	out := make([]string, len(p.Targets))
	for i, t := range p.Targets {
		out[i] = t.String()
	}
	return out
}

// Error implements the error interface.
func (e *ManifestError) Error() string {
	return fmt.Sprintf("cannot read manifest %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrManifestNotFound for errors.Is() compatibility.
func (e *ManifestError) Unwrap() error { return ErrManifestNotFound }
