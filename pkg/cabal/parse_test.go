// SPDX-License-Identifier: MPL-2.0

package cabal

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeManifest writes content to a .cabal file in a fresh temp dir and
// returns its path.
func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func TestParse_FullManifest(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "my-app.cabal", `
cabal-version: 2.4
name:          my-app
version:       0.1.0.0
homepage:      https://example.com/my-app

library
  hs-source-dirs: src

executable my-app-cli
  main-is: Main.hs

executable my-app-daemon
  main-is: Daemon.hs

test-suite spec
  type: exitcode-stdio-1.0

benchmark perf
  type: exitcode-stdio-1.0
`)

	pkg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if pkg.Name != "my-app" {
		t.Errorf("Name = %q, want %q", pkg.Name, "my-app")
	}
	if pkg.Version != "0.1.0.0" {
		t.Errorf("Version = %q, want %q", pkg.Version, "0.1.0.0")
	}
	if pkg.Homepage != "https://example.com/my-app" {
		t.Errorf("Homepage = %q, want %q", pkg.Homepage, "https://example.com/my-app")
	}

	want := []string{
		"my-app:lib",
		"my-app:exe:my-app-cli",
		"my-app:exe:my-app-daemon",
		"my-app:test:spec",
		"my-app:bench:perf",
	}
	if got := pkg.TargetStrings(); !reflect.DeepEqual(got, want) {
		t.Errorf("TargetStrings() = %v, want %v", got, want)
	}

	if pkg.ManifestPath != path {
		t.Errorf("ManifestPath = %q, want %q", pkg.ManifestPath, path)
	}
	if pkg.Dir != filepath.Dir(path) {
		t.Errorf("Dir = %q, want %q", pkg.Dir, filepath.Dir(path))
	}
	if pkg.ManifestModTime.IsZero() {
		t.Error("ManifestModTime should be set")
	}
}

func TestParse_TargetOrderIndependentOfStanzaOrder(t *testing.T) {
	t.Parallel()

	// Stanzas deliberately out of the synthesis order.
	path := writeManifest(t, "scrambled.cabal", `
benchmark bench1
  type: exitcode-stdio-1.0

test-suite tests
  type: exitcode-stdio-1.0

executable e1
  main-is: One.hs

name: scrambled
version: 1.0

library
  hs-source-dirs: src

executable e2
  main-is: Two.hs
`)

	pkg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []string{
		"scrambled:lib",
		"scrambled:exe:e1",
		"scrambled:exe:e2",
		"scrambled:test:tests",
		"scrambled:bench:bench1",
	}
	if got := pkg.TargetStrings(); !reflect.DeepEqual(got, want) {
		t.Errorf("TargetStrings() = %v, want %v", got, want)
	}
}

func TestParse_CaseInsensitiveKeys(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "shouty.cabal", `
Name: shouty
VERSION: 2.0
Library
Executable loud
`)

	pkg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if pkg.Name != "shouty" {
		t.Errorf("Name = %q, want %q", pkg.Name, "shouty")
	}
	if pkg.Version != "2.0" {
		t.Errorf("Version = %q, want %q", pkg.Version, "2.0")
	}
	want := []string{"shouty:lib", "shouty:exe:loud"}
	if got := pkg.TargetStrings(); !reflect.DeepEqual(got, want) {
		t.Errorf("TargetStrings() = %v, want %v", got, want)
	}
}

func TestParse_MissingNameAndVersion(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "anon.cabal", `
library
  hs-source-dirs: src
`)

	pkg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil (empty fields are a defined fallback)", err)
	}

	if pkg.Name != "" {
		t.Errorf("Name = %q, want empty", pkg.Name)
	}
	if pkg.Version != "" {
		t.Errorf("Version = %q, want empty", pkg.Version)
	}
	if got := pkg.TargetStrings(); !reflect.DeepEqual(got, []string{":lib"}) {
		t.Errorf("TargetStrings() = %v, want [:lib]", got)
	}
}

func TestParse_LeadingBlanksAndIndentedFieldsIgnored(t *testing.T) {
	t.Parallel()

	// An indented "name:" inside a stanza would shadow the real one if the
	// first match did not win; the top-level field appears first here.
	path := writeManifest(t, "indent.cabal", `
  name: indent
	version: 3.1

library

test-suite unit
  name: not-the-package
`)

	pkg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if pkg.Name != "indent" {
		t.Errorf("Name = %q, want %q", pkg.Name, "indent")
	}
	if pkg.Version != "3.1" {
		t.Errorf("Version = %q, want %q", pkg.Version, "3.1")
	}
}

func TestParse_Unreadable(t *testing.T) {
	t.Parallel()

	_, err := Parse(filepath.Join(t.TempDir(), "missing.cabal"))
	if err == nil {
		t.Fatal("Parse() error = nil, want ManifestError")
	}
	if !errors.Is(err, ErrManifestNotFound) {
		t.Errorf("errors.Is(err, ErrManifestNotFound) = false, err = %v", err)
	}

	var merr *ManifestError
	if !errors.As(err, &merr) {
		t.Fatalf("error %T is not *ManifestError", err)
	}
	if merr.Path == "" {
		t.Error("ManifestError.Path should carry the manifest path")
	}
}

func TestTarget_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target Target
		want   string
	}{
		{Target{Package: "p", Kind: KindLib}, "p:lib"},
		{Target{Package: "p", Kind: KindExe, Sub: "cli"}, "p:exe:cli"},
		{Target{Package: "p", Kind: KindTest, Sub: "spec"}, "p:test:spec"},
		{Target{Package: "p", Kind: KindBench, Sub: "perf"}, "p:bench:perf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.target.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsManifest(t *testing.T) {
	t.Parallel()

	if !IsManifest("foo.cabal") {
		t.Error("IsManifest(foo.cabal) = false, want true")
	}
	if IsManifest("stack.yaml") {
		t.Error("IsManifest(stack.yaml) = true, want false")
	}
}
